package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/HendryAvila/notion-mcp/internal/notion"
)

// Bulk-add outcome statuses.
const (
	StatusAdded  = "added"
	statusFailed = "failed"
)

// ReadingTaskOutcome reports what happened to one article of a bulk add.
type ReadingTaskOutcome struct {
	Title  string `json:"title"`
	Status string `json:"status"`
	PageID string `json:"page_id,omitempty"`
}

// addResult is the per-item result of a bulk add: a page or an error.
type addResult struct {
	title string
	page  *notion.Page
	err   error
}

func (r addResult) outcome() ReadingTaskOutcome {
	if r.err != nil {
		return ReadingTaskOutcome{Title: r.title, Status: fmt.Sprintf("%s: %v", statusFailed, r.err)}
	}
	return ReadingTaskOutcome{Title: r.title, Status: StatusAdded, PageID: r.page.ID}
}

// readingArticle is one element of the "articles" argument.
type readingArticle struct {
	Title string
	URL   string
}

var errMissingField = errors.New("article needs a non-empty 'title' and 'url'")

// AddReadingTasksTool handles the add_articles_as_reading_tasks MCP tool.
type AddReadingTasksTool struct {
	store  TaskStore
	logger *zap.Logger
}

// NewAddReadingTasksTool creates an AddReadingTasksTool.
func NewAddReadingTasksTool(store TaskStore, logger *zap.Logger) *AddReadingTasksTool {
	return &AddReadingTasksTool{store: store, logger: logger}
}

// Definition returns the MCP tool definition for add_articles_as_reading_tasks.
func (t *AddReadingTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("add_articles_as_reading_tasks",
		mcp.WithDescription(
			"Save several articles as reading tasks in Notion, one task per article. "+
				"Each article is added independently; failures are reported per article and do not stop the batch.",
		),
		mcp.WithArray("articles",
			mcp.Required(),
			mcp.Description("Articles to save, e.g. entries returned by fetch_latest_articles. 'link' is accepted in place of 'url'."),
			mcp.Items(map[string]any{
				"type":        "object",
				"description": "An article with a title and either 'url' or 'link'.",
				"properties": map[string]any{
					"title": map[string]any{"type": "string", "description": "Article title"},
					"url":   map[string]any{"type": "string", "description": "Article URL. Required unless 'link' is given."},
					"link":  map[string]any{"type": "string", "description": "Alias of 'url', as returned by fetch_latest_articles."},
				},
				"required": []string{"title"},
				"anyOf": []any{
					map[string]any{"required": []string{"url"}},
					map[string]any{"required": []string{"link"}},
				},
			}),
		),
	)
}

// Handle processes the add_articles_as_reading_tasks tool call.
func (t *AddReadingTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["articles"].([]any)
	if !ok {
		return mcp.NewToolResultError("'articles' is required: pass a list of {title, url} objects"), nil
	}

	results := make([]addResult, 0, len(raw))
	for _, item := range raw {
		article, err := parseReadingArticle(item)
		if err != nil {
			results = append(results, addResult{title: article.Title, err: err})
			continue
		}

		page, err := t.store.CreatePage(ctx, article.Title, article.URL)
		if err != nil {
			t.logger.Warn("failed to add reading task", zap.String("title", article.Title), zap.Error(err))
		}
		results = append(results, addResult{title: article.Title, page: page, err: err})
	}

	outcomes := make([]ReadingTaskOutcome, 0, len(results))
	added := 0
	for _, r := range results {
		if r.err == nil {
			added++
		}
		outcomes = append(outcomes, r.outcome())
	}
	t.logger.Info("reading tasks added", zap.Int("requested", len(raw)), zap.Int("added", added))

	return jsonResult(outcomes)
}

// parseReadingArticle reads {title, url|link} from a decoded JSON value.
func parseReadingArticle(v any) (readingArticle, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return readingArticle{}, fmt.Errorf("article must be an object, got %T", v)
	}

	a := readingArticle{Title: stringField(m, "title")}
	a.URL = stringField(m, "url")
	if a.URL == "" {
		a.URL = stringField(m, "link")
	}
	if a.Title == "" || a.URL == "" {
		return a, errMissingField
	}
	return a, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
