package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// AddTaskTool handles the add_task_to_notion MCP tool.
type AddTaskTool struct {
	store  TaskStore
	logger *zap.Logger
}

// NewAddTaskTool creates an AddTaskTool.
func NewAddTaskTool(store TaskStore, logger *zap.Logger) *AddTaskTool {
	return &AddTaskTool{store: store, logger: logger}
}

// Definition returns the MCP tool definition for add_task_to_notion.
func (t *AddTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("add_task_to_notion",
		mcp.WithDescription("Add a single task to the Notion database with a title and a link."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title (e.g. 'Read: Go 1.26 release notes')"),
		),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("URL stored in the task's URL property"),
		),
	)
}

// Handle processes the add_task_to_notion tool call.
func (t *AddTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := strings.TrimSpace(req.GetString("title", ""))
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}
	url := strings.TrimSpace(req.GetString("url", ""))
	if url == "" {
		return mcp.NewToolResultError("'url' is required"), nil
	}

	page, err := t.store.CreatePage(ctx, title, url)
	if err != nil {
		t.logger.Error("failed to add task", zap.String("title", title), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error adding task to Notion: %v\n%s", err, integrationHint)), nil
	}

	t.logger.Info("task added", zap.String("page_id", page.ID), zap.String("title", title))
	return jsonResult(page)
}
