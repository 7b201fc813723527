// Package tasks turns Notion database rows into flat task records.
//
// Formatting is pure: a missing or mistyped property yields the zero
// value for that field and never an error.
package tasks

import (
	"sort"
	"strings"

	"github.com/HendryAvila/notion-mcp/internal/notion"
)

// Task is the normalised view of one row.
type Task struct {
	ID        string  `json:"id"`
	Task      string  `json:"task"`
	Completed bool    `json:"completed"`
	Deadline  *string `json:"deadline"`
	Created   string  `json:"created"`
}

// PropertyNames are the preferred column names for each field. When the
// named column is missing or has another type, the first column of the
// right type (in name order) is used instead.
type PropertyNames struct {
	Title    string
	Checkbox string
	Deadline string
}

// DefaultPropertyNames match the Notion "To-do" template.
var DefaultPropertyNames = PropertyNames{
	Title:    notion.DefaultTitleProperty,
	Checkbox: notion.DefaultCheckboxProperty,
	Deadline: notion.DefaultDeadlineProperty,
}

// Format maps one page to a Task.
func Format(page notion.Page, names PropertyNames) Task {
	t := Task{
		ID:      page.ID,
		Created: page.CreatedTime,
	}

	if p, ok := lookup(page.Properties, names.Title, notion.TypeTitle); ok {
		t.Task = p.PlainText()
	}
	if p, ok := lookup(page.Properties, names.Checkbox, notion.TypeCheckbox); ok {
		t.Completed = p.Checked()
	}
	if p, ok := lookup(page.Properties, names.Deadline, notion.TypeDate); ok {
		if start, ok := p.DateStart(); ok {
			t.Deadline = &start
		}
	}
	return t
}

// FormatAll maps every page, preserving order.
func FormatAll(pages []notion.Page, names PropertyNames) []Task {
	out := make([]Task, 0, len(pages))
	for _, p := range pages {
		out = append(out, Format(p, names))
	}
	return out
}

// DueOn keeps tasks whose deadline starts with day (YYYY-MM-DD). Tasks
// without a deadline are dropped.
func DueOn(all []Task, day string) []Task {
	out := make([]Task, 0, len(all))
	for _, t := range all {
		if t.Deadline != nil && strings.HasPrefix(*t.Deadline, day) {
			out = append(out, t)
		}
	}
	return out
}

// lookup returns the property called name if it has type typ, else the
// first property of type typ by sorted name.
func lookup(props map[string]notion.Property, name, typ string) (notion.Property, bool) {
	if p, ok := props[name]; ok && p.Type == typ {
		return p, true
	}

	keys := make([]string, 0, len(props))
	for k, p := range props {
		if p.Type == typ {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return notion.Property{}, false
	}
	sort.Strings(keys)
	return props[keys[0]], true
}
