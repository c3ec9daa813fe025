// Package config loads the files under the ghnf configuration directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"github.com/example/ghnf/internal/models"
)

// EnvHome overrides the configuration directory.
const EnvHome = "GHNF_HOME"

// File names inside the configuration directory
const (
	TokenFile    = "token"
	FiltersFile  = "filters"
	IgnoreFile   = "ignore"
	SettingsFile = "config.json"
	HistoryFile  = "history.db"
)

// Defaults applied when config.json leaves a field unset
const (
	DefaultAPIURL         = "https://api.github.com"
	DefaultTimeoutSeconds = 30
)

var (
	// ErrMissingToken is returned when the token file is absent or its first line is empty.
	ErrMissingToken = errors.New("missing GitHub personal access token")
	// ErrMalformedIgnore is returned when the ignore file has a line that is not a thread id.
	ErrMalformedIgnore = errors.New("malformed ignore file")
)

// Settings holds the optional tunables from config.json.
type Settings struct {
	APIURL         string `json:"api_url,omitempty"`
	ChunkSize      int    `json:"chunk_size,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	HistoryDB      string `json:"history_db,omitempty"` // "off" disables the history
}

// Config is everything read from the configuration directory.
type Config struct {
	Dir     string
	Token   string
	Filters []string
	Ignore  []models.ThreadID
	Settings
}

// Dir returns the configuration directory: $GHNF_HOME, or ~/.ghnf.
func Dir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ghnf"), nil
}

// Load reads the configuration from dir. Only the token is required.
func Load(dir string) (*Config, error) {
	cfg := &Config{Dir: dir}

	token, err := loadToken(dir)
	if err != nil {
		return nil, err
	}
	cfg.Token = token

	if cfg.Filters, err = loadFilters(dir); err != nil {
		return nil, err
	}

	if cfg.Ignore, err = LoadIgnored(dir); err != nil {
		return nil, err
	}

	if cfg.Settings, err = loadSettings(dir); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HistoryPath returns the history database path, or "" when the history is disabled.
func (c *Config) HistoryPath() string {
	switch c.HistoryDB {
	case "off":
		return ""
	case "":
		return filepath.Join(c.Dir, HistoryFile)
	default:
		return c.HistoryDB
	}
}

func loadToken(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, TokenFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s not found", ErrMissingToken, filepath.Join(dir, TokenFile))
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	first, _, _ := strings.Cut(string(data), "\n")
	token := strings.TrimSpace(first)
	if token == "" {
		return "", fmt.Errorf("%w: first line of %s is empty", ErrMissingToken, filepath.Join(dir, TokenFile))
	}
	return token, nil
}

func loadFilters(dir string) ([]string, error) {
	lines, err := readLines(filepath.Join(dir, FiltersFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read filters: %w", err)
	}
	return lines, nil
}

// LoadIgnored reads the ignored thread ids. A missing file means none.
func LoadIgnored(dir string) ([]models.ThreadID, error) {
	lines, err := readLines(filepath.Join(dir, IgnoreFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore list: %w", err)
	}

	ids := make([]models.ThreadID, 0, len(lines))
	for i, line := range lines {
		id, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedIgnore, i+1, line)
		}
		ids = append(ids, models.ThreadID(id))
	}
	return ids, nil
}

// AddIgnored appends ids to the ignore file, skipping ones already present.
// The file is replaced atomically. It returns the ids actually added.
func AddIgnored(dir string, ids ...models.ThreadID) ([]models.ThreadID, error) {
	existing, err := LoadIgnored(dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[models.ThreadID]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}

	var added []models.ThreadID
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		existing = append(existing, id)
		added = append(added, id)
	}
	if len(added) == 0 {
		return nil, nil
	}

	var b strings.Builder
	for _, id := range existing {
		fmt.Fprintf(&b, "%d\n", id)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := atomic.WriteFile(filepath.Join(dir, IgnoreFile), strings.NewReader(b.String())); err != nil {
		return nil, fmt.Errorf("failed to write ignore list: %w", err)
	}
	return added, nil
}

func loadSettings(dir string) (Settings, error) {
	s := Settings{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}

	path := filepath.Join(dir, SettingsFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read config: %w", err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return s, fmt.Errorf("failed to parse %s: invalid JSONC: %w", path, err)
	}
	if err := json.Unmarshal(standardized, &s); err != nil {
		return s, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if s.ChunkSize < 0 {
		return s, fmt.Errorf("failed to parse %s: chunk_size must not be negative", path)
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if s.APIURL == "" {
		s.APIURL = DefaultAPIURL
	}
	return s, nil
}

// readLines returns the non-empty, trimmed lines of path. A missing file yields nil.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
