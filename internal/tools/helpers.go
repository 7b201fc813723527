// Package tools implements the MCP tool handlers.
//
// Each tool is a struct holding its dependencies, with Definition()
// returning the mcp.Tool schema and Handle() serving the call. Handlers
// never return a Go error: every failure is logged and rendered as an
// error result so the host always receives text.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/notion-mcp/internal/feeds"
	"github.com/HendryAvila/notion-mcp/internal/notion"
)

// Fixed replies for empty results.
const (
	NoTasksToday = "No tasks scheduled for today."
	NoTasks      = "No tasks found in the database."
	NoArticles   = "No articles found."
)

const integrationHint = "Please make sure your Notion integration is properly set up and has access to the database."

// timeNow is a package-level variable so tests can pin "today".
var timeNow = time.Now

// TaskStore is the subset of the Notion client the tools depend on.
type TaskStore interface {
	QueryDatabase(ctx context.Context) (*notion.QueryResponse, error)
	DatabaseSchema(ctx context.Context) (map[string]string, error)
	CreatePage(ctx context.Context, title, url string) (*notion.Page, error)
}

// ArticleFetcher fetches feed entries.
type ArticleFetcher interface {
	FetchArticles(ctx context.Context, urls []string) []feeds.Result
}

// jsonResult renders v as 2-space indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tasksError is the reply when the task database cannot be read.
func tasksError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error fetching tasks: %v\n%s", err, integrationHint))
}
