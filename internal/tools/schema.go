package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// DatabaseSchemaTool handles the get_database_schema MCP tool. The same
// data is also served as the notion://database/schema resource for hosts
// that read resources.
type DatabaseSchemaTool struct {
	store  TaskStore
	logger *zap.Logger
}

// NewDatabaseSchemaTool creates a DatabaseSchemaTool.
func NewDatabaseSchemaTool(store TaskStore, logger *zap.Logger) *DatabaseSchemaTool {
	return &DatabaseSchemaTool{store: store, logger: logger}
}

// Definition returns the MCP tool definition for get_database_schema.
func (t *DatabaseSchemaTool) Definition() mcp.Tool {
	return mcp.NewTool("get_database_schema",
		mcp.WithDescription("Get the schema of the Notion task database as a property name to property type map."),
	)
}

// Handle processes the get_database_schema tool call.
func (t *DatabaseSchemaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schema, err := t.store.DatabaseSchema(ctx)
	if err != nil {
		t.logger.Error("failed to fetch database schema", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error fetching database schema: %v", err)), nil
	}
	return jsonResult(schema)
}
