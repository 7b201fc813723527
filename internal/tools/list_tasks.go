package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/HendryAvila/notion-mcp/internal/tasks"
)

// ListAllTasksTool handles the list_all_tasks MCP tool.
type ListAllTasksTool struct {
	store  TaskStore
	names  tasks.PropertyNames
	logger *zap.Logger
}

// NewListAllTasksTool creates a ListAllTasksTool.
func NewListAllTasksTool(store TaskStore, names tasks.PropertyNames, logger *zap.Logger) *ListAllTasksTool {
	return &ListAllTasksTool{store: store, names: names, logger: logger}
}

// Definition returns the MCP tool definition for list_all_tasks.
func (t *ListAllTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("list_all_tasks",
		mcp.WithDescription("List all task items from the Notion database, newest first."),
	)
}

// Handle processes the list_all_tasks tool call.
func (t *ListAllTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := t.store.QueryDatabase(ctx)
	if err != nil {
		t.logger.Error("notion API error", zap.String("tool", "list_all_tasks"), zap.Error(err))
		return tasksError(err), nil
	}

	all := tasks.FormatAll(resp.Results, t.names)
	if len(all) == 0 {
		return mcp.NewToolResultText(NoTasks), nil
	}
	return jsonResult(all)
}
