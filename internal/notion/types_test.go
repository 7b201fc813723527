package notion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_Accessors(t *testing.T) {
	raw := `{
		"Task":     {"id": "title", "type": "title", "title": [
			{"type": "text", "text": {"content": "Write "}, "plain_text": "Write "},
			{"type": "text", "text": {"content": "report"}}
		]},
		"Empty":    {"id": "e", "type": "title", "title": []},
		"Checkbox": {"id": "c", "type": "checkbox", "checkbox": true},
		"Deadline": {"id": "d", "type": "date", "date": {"start": "2026-10-17", "end": null, "time_zone": null}},
		"NoDate":   {"id": "n", "type": "date", "date": null}
	}`

	var props map[string]Property
	require.NoError(t, json.Unmarshal([]byte(raw), &props))

	assert.Equal(t, "Write report", props["Task"].PlainText())
	assert.Equal(t, "", props["Empty"].PlainText())
	assert.True(t, props["Checkbox"].Checked())
	assert.False(t, props["Missing"].Checked())

	start, ok := props["Deadline"].DateStart()
	assert.True(t, ok)
	assert.Equal(t, "2026-10-17", start)

	_, ok = props["NoDate"].DateStart()
	assert.False(t, ok)
	_, ok = props["Missing"].DateStart()
	assert.False(t, ok)
}

func TestAPIError_Message(t *testing.T) {
	withCode := &APIError{StatusCode: 400, Code: "validation_error", Message: "bad"}
	assert.Equal(t, "notion API error 400 (validation_error): bad", withCode.Error())

	noCode := &APIError{StatusCode: 503, Message: "down"}
	assert.Equal(t, "notion API error 503: down", noCode.Error())
}

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultVersion, c.version)
	assert.Equal(t, "Task", c.titleProperty)
	assert.Equal(t, "URL", c.urlProperty)
	assert.NotNil(t, c.httpClient)
	assert.NotNil(t, c.logger)
}
