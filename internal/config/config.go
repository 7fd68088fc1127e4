// Package config handles the XDG configuration directory and config.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// DatabaseFile is the default SQLite filename.
	DatabaseFile = "todo.db"

	// DefaultKey is the default storage key for the task list.
	DefaultKey = "todo_vec"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// Debug enables debug logging.
	Debug bool `yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`

	// Database is the SQLite file path. Empty means Dir/todo.db.
	Database string `yaml:"database"`

	// Key is the storage key the task list lives under.
	Key string `yaml:"key"`
}

// New creates a Config for the default or specified config directory and
// applies config.yaml from it when present.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, Key: DefaultKey}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// load reads config.yaml. A missing file is not an error; unknown fields are.
func (c *Config) load() error {
	data, err := os.ReadFile(c.FilePath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if c.Key == "" {
		c.Key = DefaultKey
	}
	return nil
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DatabasePath returns the SQLite file path.
// Relative paths in config.yaml are resolved against Dir.
func (c *Config) DatabasePath() string {
	switch {
	case c.Database == "":
		return filepath.Join(c.Dir, DatabaseFile)
	case filepath.IsAbs(c.Database) || c.Database[0] == '~' || c.Database == ":memory:":
		return c.Database
	default:
		return filepath.Join(c.Dir, c.Database)
	}
}

// StorageKey returns the key the task list is stored under.
func (c *Config) StorageKey() string {
	if c.Key == "" {
		return DefaultKey
	}
	return c.Key
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Logger returns a logger writing to w at debug level when Debug is set,
// and a discarding logger otherwise.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	if !c.Debug || w == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
