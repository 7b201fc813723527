package notion

import (
	"fmt"
	"strings"
)

// Property types this server reads or writes.
const (
	TypeTitle    = "title"
	TypeCheckbox = "checkbox"
	TypeDate     = "date"
	TypeURL      = "url"
)

// Page is a database row as returned by the query and create endpoints.
// Only the fields this server uses are decoded.
type Page struct {
	Object      string              `json:"object,omitempty"`
	ID          string              `json:"id"`
	CreatedTime string              `json:"created_time"`
	URL         string              `json:"url,omitempty"`
	Properties  map[string]Property `json:"properties"`
}

// Property is one entry of a page's property bag. Exactly one of the
// value fields is populated, selected by Type.
type Property struct {
	ID       string     `json:"id,omitempty"`
	Type     string     `json:"type"`
	Title    []RichText `json:"title,omitempty"`
	Checkbox *bool      `json:"checkbox,omitempty"`
	Date     *DateValue `json:"date,omitempty"`
	URL      *string    `json:"url,omitempty"`
}

// PlainText concatenates the fragments of a title property.
func (p Property) PlainText() string {
	var b strings.Builder
	for _, rt := range p.Title {
		b.WriteString(rt.String())
	}
	return b.String()
}

// Checked reports the checkbox value; false when unset.
func (p Property) Checked() bool {
	return p.Checkbox != nil && *p.Checkbox
}

// DateStart returns the start of a date property, if any.
func (p Property) DateStart() (string, bool) {
	if p.Date == nil || p.Date.Start == "" {
		return "", false
	}
	return p.Date.Start, true
}

// RichText is a single rich-text fragment.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// String prefers plain_text, which Notion fills for every fragment type,
// and falls back to the raw text content.
func (rt RichText) String() string {
	if rt.PlainText != "" {
		return rt.PlainText
	}
	if rt.Text != nil {
		return rt.Text.Content
	}
	return ""
}

// TextContent is the payload of a "text" fragment.
type TextContent struct {
	Content string `json:"content"`
}

// DateValue is the payload of a date property.
type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty"`
}

// QueryResponse is the body of POST /databases/{id}/query.
type QueryResponse struct {
	Object     string  `json:"object,omitempty"`
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor,omitempty"`
}

// Database is the body of GET /databases/{id}. Property values in a
// database descriptor are schema definitions, not page values, so only
// their declared type is kept.
type Database struct {
	ID         string                      `json:"id"`
	Title      []RichText                  `json:"title,omitempty"`
	Properties map[string]DatabaseProperty `json:"properties"`
}

// DatabaseProperty is a column declaration.
type DatabaseProperty struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("notion API error %d: %s", e.StatusCode, e.Message)
}

// Request bodies.

type querySort struct {
	Timestamp string `json:"timestamp"`
	Direction string `json:"direction"`
}

type queryRequest struct {
	Sorts []querySort `json:"sorts"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type createPageRequest struct {
	Parent     pageParent          `json:"parent"`
	Properties map[string]Property `json:"properties"`
}
