// Package config implements the JSON-file configuration store.
//
// Settings live in a nested map addressed by dot-separated paths
// ("reddit.default_limit"). A user file is deep-merged over compiled-in
// defaults at load time; Set writes the whole structure back immediately.
// Secrets are never stored in the file, only read from the environment.
package config

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
)

// Environment variables holding API secrets.
const (
	EnvRedditClientID     = "REDDIT_CLIENT_ID"
	EnvRedditClientSecret = "REDDIT_CLIENT_SECRET"
	EnvRedditUserAgent    = "REDDIT_USER_AGENT"
	EnvGeminiAPIKey       = "GEMINI_API_KEY"
	EnvCohereAPIKey       = "COHERE_API_KEY"
)

// Config is a file-backed configuration store.
type Config struct {
	path   string
	logger *slog.Logger
	values map[string]any
}

// Defaults returns a fresh copy of the built-in configuration.
func Defaults() map[string]any {
	return map[string]any{
		"reddit": map[string]any{
			"default_limit": 10,
			"default_sort":  "hot",
			"user_agent":    "RedditCrawler/1.0",
		},
		"summarizer": map[string]any{
			"model":            "gemini-2.5-flash",
			"include_comments": false,
		},
		"storage": map[string]any{
			"data_directory": "data",
			"auto_save":      true,
		},
		"filters": map[string]any{
			"min_score":    0,
			"min_comments": 0,
			"max_age_days": 30,
			"exclude_nsfw": true,
		},
	}
}

// New loads the configuration at path, merging the file over defaults.
// A missing file is written out with the defaults; a malformed one is
// logged and ignored. New never fails.
func New(logger *slog.Logger, path string) *Config {
	c := &Config{path: path, logger: logger, values: Defaults()}
	c.load()
	return c
}

func (c *Config) load() {
	b, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := c.Save(); err != nil {
			c.logger.Error("failed to write default config", "path", c.path, "error", err)
		}
		return
	}
	if err != nil {
		c.logger.Error("failed to read config, using defaults", "path", c.path, "error", err)
		return
	}

	var user map[string]any
	if err := json.Unmarshal(b, &user); err != nil {
		c.logger.Error("failed to parse config, using defaults", "path", c.path, "error", err)
		return
	}
	c.values = merge(c.values, user)
}

// merge recursively lays user values over defaults. Keys only in defaults
// survive; when both sides are maps the merge recurses, otherwise the user
// value wins.
func merge(def, user map[string]any) map[string]any {
	out := make(map[string]any, len(def))
	for k, v := range def {
		out[k] = v
	}
	for k, v := range user {
		if dm, ok := out[k].(map[string]any); ok {
			if um, ok := v.(map[string]any); ok {
				out[k] = merge(dm, um)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Save serializes the configuration to its file with stable indentation.
func (c *Config) Save() error {
	b, err := json.MarshalIndent(c.values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, append(b, '\n'), 0o644)
}

// Get resolves a dot-separated key path, returning def if any segment is
// absent or a non-map value is indexed.
func (c *Config) Get(path string, def any) any {
	cur := any(c.values)
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		cur, ok = m[key]
		if !ok {
			return def
		}
	}
	return cur
}

// GetString returns the string at path, or def.
func (c *Config) GetString(path, def string) string {
	if s, ok := c.Get(path, def).(string); ok {
		return s
	}
	return def
}

// GetInt returns the integer at path, or def. Values read back from a JSON
// file arrive as float64, so both representations are accepted.
func (c *Config) GetInt(path string, def int) int {
	switch v := c.Get(path, def).(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// GetBool returns the boolean at path, or def.
func (c *Config) GetBool(path string, def bool) bool {
	if b, ok := c.Get(path, def).(bool); ok {
		return b
	}
	return def
}

// Set writes value at the dot-separated path, creating intermediate maps as
// needed, and persists the whole configuration immediately.
func (c *Config) Set(path string, value any) error {
	keys := strings.Split(path, ".")
	m := c.values
	for _, key := range keys[:len(keys)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = value
	return c.Save()
}

// Reset restores the built-in defaults and persists them.
func (c *Config) Reset() error {
	c.values = Defaults()
	return c.Save()
}

// Values returns the underlying configuration map for display.
func (c *Config) Values() map[string]any {
	return c.values
}

// Validate checks required secrets and numeric defaults. The returned map
// is empty when the configuration is usable.
func (c *Config) Validate() map[string]string {
	issues := map[string]string{}

	if os.Getenv(EnvRedditClientID) == "" {
		issues["reddit_client_id"] = EnvRedditClientID + " environment variable is required"
	}
	if os.Getenv(EnvRedditClientSecret) == "" {
		issues["reddit_client_secret"] = EnvRedditClientSecret + " environment variable is required"
	}
	if os.Getenv(EnvGeminiAPIKey) == "" && os.Getenv(EnvCohereAPIKey) == "" {
		issues["summarizer_api_key"] = EnvGeminiAPIKey + " (or " + EnvCohereAPIKey + ") environment variable is required for summarization"
	}

	if limit := c.GetInt("reddit.default_limit", 0); limit <= 0 {
		issues["reddit_limit"] = "reddit.default_limit must be a positive integer"
	}

	return issues
}
