package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, r *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, r.Messages, 1)
	tc, ok := r.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok, "want TextContent, got %T", r.Messages[0].Content)
	return tc.Text
}

func TestBriefingPrompt_Definition(t *testing.T) {
	def := NewBriefingPrompt().Definition()
	assert.Equal(t, "daily-briefing", def.Name)
	require.Len(t, def.Arguments, 1)
	assert.Equal(t, "focus", def.Arguments[0].Name)
	assert.False(t, def.Arguments[0].Required)
}

func TestBriefingPrompt_Default(t *testing.T) {
	result, err := NewBriefingPrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)

	assert.Equal(t, "Daily briefing", result.Description)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)

	text := promptText(t, result)
	assert.Contains(t, text, "show_today_tasks")
	assert.Contains(t, text, "fetch_latest_articles")
	assert.Contains(t, text, "add_articles_as_reading_tasks")
	assert.Contains(t, text, "most worth reading")
}

func TestBriefingPrompt_Focus(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"focus": " Go "}

	result, err := NewBriefingPrompt().Handle(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Daily briefing (focus: Go)", result.Description)
	assert.Contains(t, promptText(t, result), `most relevant to "Go"`)
}
