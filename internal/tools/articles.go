package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/HendryAvila/notion-mcp/internal/feeds"
)

// FetchLatestArticlesTool handles the fetch_latest_articles MCP tool.
type FetchLatestArticlesTool struct {
	fetcher  ArticleFetcher
	listPath string
	logger   *zap.Logger
}

// NewFetchLatestArticlesTool creates a FetchLatestArticlesTool reading its
// feed list from listPath on every call.
func NewFetchLatestArticlesTool(fetcher ArticleFetcher, listPath string, logger *zap.Logger) *FetchLatestArticlesTool {
	return &FetchLatestArticlesTool{fetcher: fetcher, listPath: listPath, logger: logger}
}

// Definition returns the MCP tool definition for fetch_latest_articles.
func (t *FetchLatestArticlesTool) Definition() mcp.Tool {
	return mcp.NewTool("fetch_latest_articles",
		mcp.WithDescription(
			fmt.Sprintf("Fetch the latest articles (up to %d per feed) from the configured RSS/Atom feeds. ", feeds.MaxEntriesPerFeed)+
				"Feeds that fail are reported inline as {\"error\": ...} entries. "+
				"Pass chosen articles to add_articles_as_reading_tasks to save them in Notion.",
		),
	)
}

// Handle processes the fetch_latest_articles tool call.
func (t *FetchLatestArticlesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	urls, err := feeds.LoadList(t.listPath)
	if err != nil {
		t.logger.Error("failed to load feed list", zap.String("path", t.listPath), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error fetching articles: %v", err)), nil
	}
	if len(urls) == 0 {
		return mcp.NewToolResultText(NoArticles), nil
	}

	results := t.fetcher.FetchArticles(ctx, urls)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	t.logger.Info("fetched feeds", zap.Int("feeds", len(urls)), zap.Int("failed", failed))

	items := feeds.Flatten(results)
	if len(items) == 0 {
		return mcp.NewToolResultText(NoArticles), nil
	}
	return jsonResult(items)
}
