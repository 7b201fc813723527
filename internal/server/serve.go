package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/notion-mcp/internal/config"
)

// shutdownTimeout bounds how long the HTTP transport waits for in-flight
// requests on shutdown.
const shutdownTimeout = 10 * time.Second

// Serve runs s on the given transport until ctx is cancelled or the
// transport stops.
func Serve(ctx context.Context, s *server.MCPServer, transport, addr string, logger *zap.Logger) error {
	switch transport {
	case config.TransportStdio:
		logger.Info("serving MCP over stdio")
		stdio := server.NewStdioServer(s)
		stdio.SetErrorLogger(zap.NewStdLog(logger.Named("stdio")))
		if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio transport: %w", err)
		}
		return nil

	case config.TransportHTTP:
		return serveHTTP(ctx, server.NewStreamableHTTPServer(s), addr, logger)

	default:
		return config.ValidateTransport(transport)
	}
}

func serveHTTP(ctx context.Context, httpSrv *server.StreamableHTTPServer, addr string, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving MCP over HTTP", zap.String("addr", addr))
		errCh <- httpSrv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http transport: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP transport")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http transport: %w", err)
	}
	return nil
}
