// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the concrete clients from the
// loaded configuration and injects them into the tools, resources and
// prompts that depend on abstractions. No business logic lives here.
package server

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/notion-mcp/internal/config"
	"github.com/HendryAvila/notion-mcp/internal/feeds"
	"github.com/HendryAvila/notion-mcp/internal/notion"
	"github.com/HendryAvila/notion-mcp/internal/prompts"
	"github.com/HendryAvila/notion-mcp/internal/resources"
	"github.com/HendryAvila/notion-mcp/internal/tasks"
	"github.com/HendryAvila/notion-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Name is the MCP server name reported to hosts.
const Name = "notion-mcp"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
func New(cfg *config.Config, logger *zap.Logger) *server.MCPServer {
	// --- Create shared dependencies ---

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	userAgent := Name + "/" + Version

	notionClient := notion.New(notion.Options{
		BaseURL:       cfg.BaseURL,
		DatabaseID:    cfg.DatabaseID,
		APIKey:        cfg.APIKey,
		Version:       cfg.Version,
		TitleProperty: cfg.TitleProperty,
		URLProperty:   cfg.URLProperty,
		UserAgent:     userAgent,
		HTTPClient:    httpClient,
		Logger:        logger.Named("notion"),
	})

	fetcher := feeds.NewFetcher(feeds.Options{
		HTTPClient:  httpClient,
		UserAgent:   userAgent,
		Concurrency: cfg.FeedConcurrency,
		Logger:      logger.Named("feeds"),
	})

	names := tasks.PropertyNames{
		Title:    cfg.TitleProperty,
		Checkbox: cfg.CheckboxProperty,
		Deadline: cfg.DeadlineProperty,
	}

	toolLogger := logger.Named("tools")

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register task tools ---

	todayTool := tools.NewShowTodayTasksTool(notionClient, names, toolLogger)
	s.AddTool(todayTool.Definition(), todayTool.Handle)

	listTool := tools.NewListAllTasksTool(notionClient, names, toolLogger)
	s.AddTool(listTool.Definition(), listTool.Handle)

	schemaTool := tools.NewDatabaseSchemaTool(notionClient, toolLogger)
	s.AddTool(schemaTool.Definition(), schemaTool.Handle)

	addTool := tools.NewAddTaskTool(notionClient, toolLogger)
	s.AddTool(addTool.Definition(), addTool.Handle)

	// --- Register feed tools ---

	articlesTool := tools.NewFetchLatestArticlesTool(fetcher, cfg.FeedsFile, toolLogger)
	s.AddTool(articlesTool.Definition(), articlesTool.Handle)

	readingTool := tools.NewAddReadingTasksTool(notionClient, toolLogger)
	s.AddTool(readingTool.Definition(), readingTool.Handle)

	// --- Register prompts ---

	briefing := prompts.NewBriefingPrompt()
	s.AddPrompt(briefing.Definition(), briefing.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(notionClient, logger.Named("resources"))
	s.AddResource(resourceHandler.SchemaResource(), resourceHandler.HandleSchema)

	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use the server effectively.
func serverInstructions() string {
	return `You have access to a Notion task database and a set of RSS/Atom feeds.

## Tasks
- show_today_tasks: tasks whose deadline is today (server local date)
- list_all_tasks: every task, newest first
- get_database_schema: property names and types (also the notion://database/schema resource)
- add_task_to_notion: create one task from a title and a URL

## Reading list
- fetch_latest_articles: up to 5 recent entries per configured feed.
  Failed feeds appear as {"error": "..."} entries; the rest are still returned.
- add_articles_as_reading_tasks: save chosen articles as tasks. Pass the
  title and link of each article. Each article reports "added" or "failed: ...".

Results are JSON or a short sentence when there is nothing to show.
Tool errors are plain text that start with "Error"; relay them to the user
instead of retrying in a loop.`
}
