// Package notiontest provides an in-memory Notion API backend for tests.
package notiontest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/HendryAvila/notion-mcp/internal/notion"
)

// APIKey is the bearer token the stub accepts.
const APIKey = "secret_test"

// Server is a fake Notion backend for a single database.
type Server struct {
	*httptest.Server

	DatabaseID string

	mu       sync.Mutex
	pages    []notion.Page
	schema   map[string]notion.DatabaseProperty
	failures map[string]int
	requests []*http.Request
}

// New starts a stub serving one database with a Task/Checkbox/Deadline/URL
// schema. The server is closed when the test ends.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		DatabaseID: uuid.NewString(),
		schema: map[string]notion.DatabaseProperty{
			notion.DefaultTitleProperty:    {ID: "title", Name: notion.DefaultTitleProperty, Type: notion.TypeTitle},
			notion.DefaultCheckboxProperty: {ID: "chk", Name: notion.DefaultCheckboxProperty, Type: notion.TypeCheckbox},
			notion.DefaultDeadlineProperty: {ID: "ddl", Name: notion.DefaultDeadlineProperty, Type: notion.TypeDate},
			notion.DefaultURLProperty:      {ID: "url", Name: notion.DefaultURLProperty, Type: notion.TypeURL},
		},
		failures: map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// NotionClient returns a notion.Client pointed at the stub.
func (s *Server) NotionClient() *notion.Client {
	return notion.New(notion.Options{
		BaseURL:    s.URL + "/v1",
		DatabaseID: s.DatabaseID,
		APIKey:     APIKey,
		HTTPClient: s.Server.Client(),
	})
}

// AddPage seeds a page. Missing ID and CreatedTime are filled in.
func (s *Server) AddPage(p notion.Page) notion.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedTime == "" {
		p.CreatedTime = time.Now().UTC().Format(time.RFC3339)
	}
	p.Object = "page"
	s.pages = append(s.pages, p)
	return p
}

// FailNext makes the next n requests whose path ends with suffix answer
// with a 502 error envelope.
func (s *Server) FailNext(suffix string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[suffix] = n
}

// Requests returns the requests received so far.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r)
	for suffix, n := range s.failures {
		if n > 0 && strings.HasSuffix(r.URL.Path, suffix) {
			s.failures[suffix] = n - 1
			s.mu.Unlock()
			writeError(w, http.StatusBadGateway, "internal_server_error", "stub failure")
			return
		}
	}
	s.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+APIKey {
		writeError(w, http.StatusUnauthorized, "unauthorized", "API token is invalid.")
		return
	}

	dbPath := "/v1/databases/" + s.DatabaseID
	switch {
	case r.Method == http.MethodPost && r.URL.Path == dbPath+"/query":
		s.handleQuery(w)
	case r.Method == http.MethodGet && r.URL.Path == dbPath:
		s.handleDatabase(w)
	case r.Method == http.MethodPost && r.URL.Path == "/v1/pages":
		s.handleCreate(w, r)
	default:
		writeError(w, http.StatusNotFound, "object_not_found", "Could not find database with ID: "+r.URL.Path)
	}
}

func (s *Server) handleQuery(w http.ResponseWriter) {
	s.mu.Lock()
	results := make([]notion.Page, len(s.pages))
	// Newest first, like the real query with a descending created_time sort.
	for i, p := range s.pages {
		results[len(s.pages)-1-i] = p
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, notion.QueryResponse{Object: "list", Results: results})
}

func (s *Server) handleDatabase(w http.ResponseWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, notion.Database{ID: s.DatabaseID, Properties: s.schema})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Parent struct {
			DatabaseID string `json:"database_id"`
		} `json:"parent"`
		Properties map[string]notion.Property `json:"properties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "body failed validation: "+err.Error())
		return
	}
	if body.Parent.DatabaseID != s.DatabaseID {
		writeError(w, http.StatusNotFound, "object_not_found", "Could not find database with ID: "+body.Parent.DatabaseID)
		return
	}
	for name, prop := range body.Properties {
		if _, ok := s.schema[name]; !ok {
			writeError(w, http.StatusBadRequest, "validation_error", name+" is not a property that exists.")
			return
		}
		if prop.Type == notion.TypeTitle {
			for i := range prop.Title {
				prop.Title[i].PlainText = prop.Title[i].String()
			}
			body.Properties[name] = prop
		}
	}

	page := s.AddPage(notion.Page{
		URL:        "https://www.notion.so/stub",
		Properties: body.Properties,
	})
	writeJSON(w, http.StatusOK, page)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"object":  "error",
		"status":  status,
		"code":    code,
		"message": message,
	})
}
