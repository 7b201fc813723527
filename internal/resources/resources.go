// Package resources implements MCP resource handlers.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (notion://...) following MCP conventions.
package resources

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// SchemaURI addresses the task database schema.
const SchemaURI = "notion://database/schema"

// SchemaSource reads the database's property types.
type SchemaSource interface {
	DatabaseSchema(ctx context.Context) (map[string]string, error)
}

// Handler manages the Notion resource endpoints.
type Handler struct {
	source SchemaSource
	logger *zap.Logger
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(source SchemaSource, logger *zap.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

// SchemaResource returns the MCP resource definition for the database schema.
func (h *Handler) SchemaResource() mcp.Resource {
	return mcp.NewResource(
		SchemaURI,
		"Notion Database Schema",
		mcp.WithResourceDescription("Property names and types of the configured Notion task database"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSchema returns the schema as JSON. Remote failures are rendered
// as a text/plain error content rather than a protocol error.
func (h *Handler) HandleSchema(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	schema, err := h.source.DatabaseSchema(ctx)
	if err != nil {
		h.logger.Error("failed to fetch database schema", zap.Error(err))
		return errorResource(req.Params.URI, fmt.Sprintf("Error fetching database schema: %v", err)), nil
	}

	contents, err := jsonResource(req.Params.URI, schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return contents, nil
}
