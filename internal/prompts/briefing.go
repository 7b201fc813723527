// Package prompts implements MCP prompt handlers.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// BriefingPrompt handles the daily-briefing MCP prompt.
// It has the AI combine today's tasks with fresh reading material.
type BriefingPrompt struct{}

// NewBriefingPrompt creates a BriefingPrompt.
func NewBriefingPrompt() *BriefingPrompt {
	return &BriefingPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *BriefingPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("daily-briefing",
		mcp.WithPromptDescription(
			"Summarise today's Notion tasks and the latest feed articles, "+
				"then offer to save interesting articles as reading tasks.",
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Optional topic to prioritise when picking articles (e.g. 'Go', 'databases')"),
		),
	)
}

// Handle processes the daily-briefing prompt request.
func (p *BriefingPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := ""
	if args := req.Params.Arguments; args != nil {
		focus = strings.TrimSpace(args["focus"])
	}

	pick := "Pick the 3 articles most worth reading."
	description := "Daily briefing"
	if focus != "" {
		pick = fmt.Sprintf("Pick the 3 articles most relevant to %q.", focus)
		description = fmt.Sprintf("Daily briefing (focus: %s)", focus)
	}

	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Give me my daily briefing.\n\n" +
						"Please:\n" +
						"1. Run `show_today_tasks` and list what is due today, marking completed items\n" +
						"2. Run `fetch_latest_articles`. Mention any feeds that failed, but keep going\n" +
						"3. " + pick + " Give one line on each\n" +
						"4. Ask me which of them to keep, then save my choices with `add_articles_as_reading_tasks`",
				),
			},
		},
	}, nil
}
