package resources

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HendryAvila/notion-mcp/internal/notion/notiontest"
)

type failingSource struct{}

func (failingSource) DatabaseSchema(context.Context) (map[string]string, error) {
	return nil, errors.New("connection refused")
}

func readReq() mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = SchemaURI
	return req
}

func textContent(t *testing.T, contents []mcp.ResourceContents) mcp.TextResourceContents {
	t.Helper()
	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "want TextResourceContents, got %T", contents[0])
	return tc
}

func TestSchemaResource_Definition(t *testing.T) {
	h := NewHandler(failingSource{}, zap.NewNop())
	res := h.SchemaResource()

	assert.Equal(t, "notion://database/schema", res.URI)
	assert.Equal(t, "application/json", res.MIMEType)
	assert.NotEmpty(t, res.Name)
}

func TestHandleSchema(t *testing.T) {
	h := NewHandler(notiontest.New(t).NotionClient(), zap.NewNop())

	contents, err := h.HandleSchema(context.Background(), readReq())
	require.NoError(t, err)

	tc := textContent(t, contents)
	assert.Equal(t, SchemaURI, tc.URI)
	assert.Equal(t, "application/json", tc.MIMEType)
	assert.True(t, strings.HasPrefix(tc.Text, "{\n  \""), "want indented JSON, got %s", tc.Text)

	var schema map[string]string
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &schema))
	assert.Equal(t, "title", schema["Task"])
	assert.Equal(t, "date", schema["Deadline"])
}

func TestHandleSchema_Error(t *testing.T) {
	h := NewHandler(failingSource{}, zap.NewNop())

	contents, err := h.HandleSchema(context.Background(), readReq())
	require.NoError(t, err)

	tc := textContent(t, contents)
	assert.Equal(t, "text/plain", tc.MIMEType)
	assert.Equal(t, "Error fetching database schema: connection refused", tc.Text)
}
