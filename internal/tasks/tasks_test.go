package tasks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/notion-mcp/internal/notion"
)

func decodePage(t *testing.T, raw string) notion.Page {
	t.Helper()
	var p notion.Page
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func strPtr(s string) *string { return &s }

func TestDefaultPropertyNames_MatchClientColumns(t *testing.T) {
	assert.Equal(t, PropertyNames{
		Title:    notion.DefaultTitleProperty,
		Checkbox: notion.DefaultCheckboxProperty,
		Deadline: notion.DefaultDeadlineProperty,
	}, DefaultPropertyNames)
}

func TestFormat_FullPage(t *testing.T) {
	page := decodePage(t, `{
		"id": "page-1",
		"created_time": "2026-10-16T10:00:00.000Z",
		"properties": {
			"Task":     {"type": "title", "title": [{"type": "text", "text": {"content": "Ship release"}, "plain_text": "Ship release"}]},
			"Checkbox": {"type": "checkbox", "checkbox": true},
			"Deadline": {"type": "date", "date": {"start": "2026-10-17"}}
		}
	}`)

	got := Format(page, DefaultPropertyNames)
	assert.Equal(t, Task{
		ID:        "page-1",
		Task:      "Ship release",
		Completed: true,
		Deadline:  strPtr("2026-10-17"),
		Created:   "2026-10-16T10:00:00.000Z",
	}, got)
}

func TestFormat_MissingOptionalProperties(t *testing.T) {
	page := decodePage(t, `{
		"id": "page-2",
		"created_time": "2026-10-16T10:00:00.000Z",
		"properties": {}
	}`)

	got := Format(page, DefaultPropertyNames)
	assert.Equal(t, "page-2", got.ID)
	assert.Equal(t, "", got.Task)
	assert.False(t, got.Completed)
	assert.Nil(t, got.Deadline)
	assert.Equal(t, "2026-10-16T10:00:00.000Z", got.Created)
}

func TestFormat_NilPropertyBag(t *testing.T) {
	got := Format(notion.Page{ID: "x"}, DefaultPropertyNames)
	assert.Equal(t, Task{ID: "x"}, got)
}

func TestFormat_EmptyValues(t *testing.T) {
	page := decodePage(t, `{
		"id": "page-3",
		"created_time": "2026-10-16T10:00:00.000Z",
		"properties": {
			"Task":     {"type": "title", "title": []},
			"Checkbox": {"type": "checkbox", "checkbox": false},
			"Deadline": {"type": "date", "date": null}
		}
	}`)

	got := Format(page, DefaultPropertyNames)
	assert.Equal(t, "", got.Task)
	assert.False(t, got.Completed)
	assert.Nil(t, got.Deadline)
}

func TestFormat_FallsBackToPropertyType(t *testing.T) {
	page := decodePage(t, `{
		"id": "page-4",
		"created_time": "2026-10-16T10:00:00.000Z",
		"properties": {
			"Name":  {"type": "title", "title": [{"plain_text": "Renamed title"}]},
			"Done":  {"type": "checkbox", "checkbox": true},
			"Due":   {"type": "date", "date": {"start": "2026-10-20T09:00:00.000+02:00"}},
			"Begin": {"type": "date", "date": {"start": "2026-10-01"}}
		}
	}`)

	got := Format(page, DefaultPropertyNames)
	assert.Equal(t, "Renamed title", got.Task)
	assert.True(t, got.Completed)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, "2026-10-01", *got.Deadline, "first date column by name order")
}

func TestFormat_NamedPropertyWithWrongTypeIsSkipped(t *testing.T) {
	page := decodePage(t, `{
		"id": "page-5",
		"created_time": "2026-10-16T10:00:00.000Z",
		"properties": {
			"Deadline": {"type": "rich_text"},
			"When":     {"type": "date", "date": {"start": "2026-11-01"}}
		}
	}`)

	got := Format(page, DefaultPropertyNames)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, "2026-11-01", *got.Deadline)
}

func TestFormat_ConfiguredNamesWin(t *testing.T) {
	page := decodePage(t, `{
		"id": "page-6",
		"created_time": "2026-10-16T10:00:00.000Z",
		"properties": {
			"A due": {"type": "date", "date": {"start": "2026-01-01"}},
			"Z due": {"type": "date", "date": {"start": "2026-12-31"}}
		}
	}`)

	got := Format(page, PropertyNames{Deadline: "Z due"})
	require.NotNil(t, got.Deadline)
	assert.Equal(t, "2026-12-31", *got.Deadline)
}

func TestFormatAll_PreservesOrder(t *testing.T) {
	pages := []notion.Page{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := FormatAll(pages, DefaultPropertyNames)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[2].ID)

	assert.Empty(t, FormatAll(nil, DefaultPropertyNames))
}

func TestDueOn(t *testing.T) {
	all := []Task{
		{ID: "today-date", Deadline: strPtr("2026-10-17")},
		{ID: "today-datetime", Deadline: strPtr("2026-10-17T15:00:00.000+02:00")},
		{ID: "tomorrow", Deadline: strPtr("2026-10-18")},
		{ID: "yesterday", Deadline: strPtr("2026-10-16")},
		{ID: "none"},
	}

	got := DueOn(all, "2026-10-17")
	require.Len(t, got, 2)
	assert.Equal(t, "today-date", got[0].ID)
	assert.Equal(t, "today-datetime", got[1].ID)

	assert.Empty(t, DueOn(all, "2030-01-01"))
}

func TestTask_JSONShape(t *testing.T) {
	data, err := json.Marshal(Task{ID: "1", Task: "t", Created: "c"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","task":"t","completed":false,"deadline":null,"created":"c"}`, string(data))
}
