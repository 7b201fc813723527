// Package notion is a minimal client for the Notion REST API covering the
// three calls this server makes: query a database, read its schema, and
// create a page in it.
//
// Every failure (transport, non-2xx status, undecodable body) is returned
// as an error. Nothing is retried.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public Notion API root.
	DefaultBaseURL = "https://api.notion.com/v1"

	// DefaultVersion is sent as Notion-Version when none is configured.
	DefaultVersion = "2022-06-28"

	// Default column names of the task database.
	DefaultTitleProperty    = "Task"
	DefaultCheckboxProperty = "Checkbox"
	DefaultDeadlineProperty = "Deadline"
	DefaultURLProperty      = "URL"

	// maxErrorBody bounds how much of a non-JSON error body is kept.
	maxErrorBody = 200
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	DatabaseID string
	APIKey     string
	Version    string

	// TitleProperty and URLProperty name the columns CreatePage writes.
	TitleProperty string
	URLProperty   string

	UserAgent  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to one Notion database.
type Client struct {
	baseURL       string
	databaseID    string
	apiKey        string
	version       string
	titleProperty string
	urlProperty   string
	userAgent     string
	httpClient    *http.Client
	logger        *zap.Logger
}

// New creates a Client. Empty options fall back to Notion defaults.
func New(opts Options) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		databaseID:    opts.DatabaseID,
		apiKey:        opts.APIKey,
		version:       opts.Version,
		titleProperty: opts.TitleProperty,
		urlProperty:   opts.URLProperty,
		userAgent:     opts.UserAgent,
		httpClient:    opts.HTTPClient,
		logger:        opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.version == "" {
		c.version = DefaultVersion
	}
	if c.titleProperty == "" {
		c.titleProperty = DefaultTitleProperty
	}
	if c.urlProperty == "" {
		c.urlProperty = DefaultURLProperty
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// QueryDatabase returns the first page of rows, newest first.
func (c *Client) QueryDatabase(ctx context.Context) (*QueryResponse, error) {
	body := queryRequest{
		Sorts: []querySort{{Timestamp: "created_time", Direction: "descending"}},
	}

	var resp QueryResponse
	if err := c.do(ctx, http.MethodPost, "/databases/"+c.databaseID+"/query", body, &resp); err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	return &resp, nil
}

// DatabaseSchema returns a property name -> property type mapping.
func (c *Client) DatabaseSchema(ctx context.Context) (map[string]string, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+c.databaseID, nil, &db); err != nil {
		return nil, fmt.Errorf("fetching database: %w", err)
	}

	schema := make(map[string]string, len(db.Properties))
	for name, prop := range db.Properties {
		schema[name] = prop.Type
	}
	return schema, nil
}

// CreatePage adds a row with the given title and URL.
func (c *Client) CreatePage(ctx context.Context, title, pageURL string) (*Page, error) {
	body := createPageRequest{
		Parent: pageParent{DatabaseID: c.databaseID},
		Properties: map[string]Property{
			c.titleProperty: {
				Type: TypeTitle,
				Title: []RichText{{
					Type: "text",
					Text: &TextContent{Content: title},
				}},
			},
			c.urlProperty: {
				Type: TypeURL,
				URL:  &pageURL,
			},
		},
	}

	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", body, &page); err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	return &page, nil
}

// do sends one request and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("notion request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeAPIError reads Notion's error envelope, falling back to the raw
// body when it is not JSON.
func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		apiErr = &APIError{Message: msg}
	}
	apiErr.StatusCode = resp.StatusCode
	return apiErr
}

// IsNotFound reports whether err is a 404 from Notion, which is what the
// API returns when the integration has not been shared with the database.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
