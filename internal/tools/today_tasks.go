package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/HendryAvila/notion-mcp/internal/tasks"
)

// ShowTodayTasksTool handles the show_today_tasks MCP tool.
type ShowTodayTasksTool struct {
	store  TaskStore
	names  tasks.PropertyNames
	logger *zap.Logger
}

// NewShowTodayTasksTool creates a ShowTodayTasksTool.
func NewShowTodayTasksTool(store TaskStore, names tasks.PropertyNames, logger *zap.Logger) *ShowTodayTasksTool {
	return &ShowTodayTasksTool{store: store, names: names, logger: logger}
}

// Definition returns the MCP tool definition for show_today_tasks.
func (t *ShowTodayTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("show_today_tasks",
		mcp.WithDescription(
			"Show today's task items from the Notion database: tasks whose deadline falls on the server's local date.",
		),
	)
}

// Handle processes the show_today_tasks tool call.
func (t *ShowTodayTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := t.store.QueryDatabase(ctx)
	if err != nil {
		t.logger.Error("notion API error", zap.String("tool", "show_today_tasks"), zap.Error(err))
		return tasksError(err), nil
	}

	today := timeNow().Format("2006-01-02")
	due := tasks.DueOn(tasks.FormatAll(resp.Results, t.names), today)
	if len(due) == 0 {
		return mcp.NewToolResultText(NoTasksToday), nil
	}
	return jsonResult(due)
}
