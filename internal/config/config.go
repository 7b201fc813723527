// Package config loads the server configuration from the process
// environment and an optional .env file.
//
// Configuration is an explicit value handed to each client constructor;
// nothing in this module reads the environment after startup.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/HendryAvila/notion-mcp/internal/feeds"
)

// Transports supported by the serve command.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

const (
	// DefaultEnvFile is loaded from the working directory when present.
	DefaultEnvFile = ".env"

	// envFileVar names an explicit .env file. When set, the file must exist.
	envFileVar = "NOTION_MCP_ENV_FILE"
)

// Config holds every setting the server reads at startup.
type Config struct {
	// Notion credentials and endpoint.
	APIKey     string `env:"NOTION_API_KEY"`
	DatabaseID string `env:"NOTION_DATABASE_ID"`
	BaseURL    string `env:"NOTION_BASE_URL, default=https://api.notion.com/v1"`
	Version    string `env:"NOTION_VERSION, default=2022-06-28"`

	// Property names used to read and write task pages.
	TitleProperty    string `env:"NOTION_TITLE_PROPERTY, default=Task"`
	CheckboxProperty string `env:"NOTION_CHECKBOX_PROPERTY, default=Checkbox"`
	DeadlineProperty string `env:"NOTION_DEADLINE_PROPERTY, default=Deadline"`
	URLProperty      string `env:"NOTION_URL_PROPERTY, default=URL"`

	// Feed ingestion.
	FeedsFile       string `env:"FEEDS_FILE, default=config/feeds.txt"`
	FeedConcurrency int    `env:"FEED_CONCURRENCY, default=1"`

	// HTTPTimeout bounds every outbound request. Zero means no timeout.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=0s"`

	LogLevel string `env:"LOG_LEVEL, default=INFO"`

	Transport string `env:"MCP_TRANSPORT, default=stdio"`
	HTTPAddr  string `env:"MCP_HTTP_ADDR, default=:8080"`
}

// MissingKeyError reports a required setting that is absent or empty.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s not found in environment", e.Key)
}

// Load reads the .env file (if any) into the process environment without
// overriding variables that are already set, then decodes and validates
// the configuration.
func Load(ctx context.Context) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith decodes and validates the configuration from an explicit
// lookuper. It never touches .env files.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks required keys and normalises values in place.
func (c *Config) validate() error {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.DatabaseID = strings.TrimSpace(c.DatabaseID)

	if c.APIKey == "" {
		return &MissingKeyError{Key: "NOTION_API_KEY"}
	}
	if c.DatabaseID == "" {
		return &MissingKeyError{Key: "NOTION_DATABASE_ID"}
	}

	id, err := uuid.Parse(c.DatabaseID)
	if err != nil {
		return fmt.Errorf("NOTION_DATABASE_ID %q is not a valid Notion ID: %w", c.DatabaseID, err)
	}
	c.DatabaseID = id.String()

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("NOTION_BASE_URL %q must be an absolute URL", c.BaseURL)
	}

	if err := checkFeedsFile(c.FeedsFile); err != nil {
		return err
	}

	if c.FeedConcurrency < 1 {
		return fmt.Errorf("FEED_CONCURRENCY must be at least 1, got %d", c.FeedConcurrency)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}

	return ValidateTransport(c.Transport)
}

// checkFeedsFile fails when the feed list is absent. The file is still
// re-read on every fetch, so later edits need no restart.
func checkFeedsFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("FEEDS_FILE: %w: %s", feeds.ErrFeedListNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("FEEDS_FILE: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("FEEDS_FILE %s is a directory", path)
	}
	return nil
}

// ValidateTransport reports whether name is a supported MCP transport.
func ValidateTransport(name string) error {
	switch name {
	case TransportStdio, TransportHTTP:
		return nil
	default:
		return fmt.Errorf("unknown transport %q (want %s or %s)", name, TransportStdio, TransportHTTP)
	}
}

// loadEnvFile loads NOTION_MCP_ENV_FILE if set, otherwise ./.env when it
// exists. Variables already present in the environment win.
func loadEnvFile() error {
	path, explicit := os.LookupEnv(envFileVar)
	if !explicit || path == "" {
		path = DefaultEnvFile
		explicit = false
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading env file %s: %w", path, err)
}
