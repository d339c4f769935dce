package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the complete docshell configuration.
type Config struct {
	App     AppConfig     `toml:"app" yaml:"app"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	State   StateConfig   `toml:"state" yaml:"state"`
	Plugins PluginConfig  `toml:"plugins" yaml:"plugins"`

	// Keys overrides action shortcuts by action label. An empty value
	// removes the shortcut.
	Keys map[string]string `toml:"keys" yaml:"keys"`
}

// AppConfig holds application identity settings.
type AppConfig struct {
	// Title is the application title shown in the window title.
	Title string `toml:"title" yaml:"title"`
}

// HistoryConfig holds undo/redo settings.
type HistoryConfig struct {
	// MaxEntries limits each document's undo history.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// WindowConfig holds window chrome settings.
type WindowConfig struct {
	// DirtyMarker is appended to the document title in the window title
	// when the current document has unsaved changes.
	DirtyMarker string `toml:"dirty_marker" yaml:"dirty_marker"`
	// SaveFilter is passed to the save dialog.
	SaveFilter string `toml:"save_filter" yaml:"save_filter"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// JSON selects JSON output instead of text.
	JSON bool `toml:"json" yaml:"json"`
	// File is the log file path. Empty uses DefaultLogPath.
	File string `toml:"file" yaml:"file"`
}

// StateConfig holds window-state store settings.
type StateConfig struct {
	// Path is the state database directory. Empty uses DefaultStatePath.
	Path string `toml:"path" yaml:"path"`
	// Disabled turns off saving and restoring window state.
	Disabled bool `toml:"disabled" yaml:"disabled"`
}

// PluginConfig holds scripted action settings.
type PluginConfig struct {
	// Scripts lists Lua files that define actions.
	Scripts []string `toml:"scripts" yaml:"scripts"`
	// Dir is scanned for *.lua files in addition to Scripts.
	Dir string `toml:"dir" yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Title: "docshell",
		},
		History: HistoryConfig{
			MaxEntries: 1000,
		},
		Window: WindowConfig{
			DirtyMarker: "",
			SaveFilter:  "All files (*)",
		},
		Log: LogConfig{
			Level: "info",
		},
		Keys: map[string]string{},
	}
}

// Load reads the config file at path on top of the defaults, then applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes the file at path into c. Only keys present in the file
// override the current values.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, not an error
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.Decode(path, data)
}

// Decode parses data as TOML or YAML, chosen by the extension of name,
// and overlays it onto c.
func (c *Config) Decode(name string, data []byte) error {
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", "":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return &ParseError{Path: name, Message: err.Error(), Err: err}
	}
	return nil
}

// envVar binds an environment variable to the setting it overrides.
type envVar struct {
	setting string
	set     func(c *Config, v string) error
}

// envMapping maps environment variables to setters.
var envMapping = map[string]envVar{
	"DOCSHELL_TITLE": {"app.title", func(c *Config, v string) error {
		c.App.Title = v
		return nil
	}},
	"DOCSHELL_LOG_LEVEL": {"log.level", func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	}},
	"DOCSHELL_LOG_FILE": {"log.file", func(c *Config, v string) error {
		c.Log.File = v
		return nil
	}},
	"DOCSHELL_LOG_JSON": {"log.json", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Log.JSON = b
		return nil
	}},
	"DOCSHELL_HISTORY_MAX": {"history.max_entries", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.History.MaxEntries = n
		return nil
	}},
	"DOCSHELL_STATE_PATH": {"state.path", func(c *Config, v string) error {
		c.State.Path = v
		return nil
	}},
}

// ApplyEnv applies DOCSHELL_* overrides using lookup (usually
// os.LookupEnv). Every parseable value is applied; the first value that
// fails to parse, in variable name order, is returned as a
// *ValidationError.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var first error
	for _, name := range slices.Sorted(maps.Keys(envMapping)) {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		ev := envMapping[name]
		if err := ev.set(c, v); err != nil && first == nil {
			first = &ValidationError{
				Setting: ev.setting,
				Message: fmt.Sprintf("%s=%q: %v", name, v, err),
			}
		}
	}
	return first
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.Title) == "" {
		return &ValidationError{Setting: "app.title", Message: "must not be empty"}
	}
	if c.History.MaxEntries < 0 {
		return &ValidationError{Setting: "history.max_entries", Message: "must not be negative"}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Setting: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	return nil
}

// StatePath returns the configured state directory or the default.
func (c *Config) StatePath() string {
	if c.State.Path != "" {
		return c.State.Path
	}
	return DefaultStatePath()
}

// LogPath returns the configured log file or the default.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return DefaultLogPath()
}

// PluginScripts returns the configured scripts followed by the *.lua
// files in the plugin directory, in lexical order.
func (c *Config) PluginScripts() ([]string, error) {
	scripts := append([]string(nil), c.Plugins.Scripts...)
	if c.Plugins.Dir == "" {
		return scripts, nil
	}

	matches, err := filepath.Glob(filepath.Join(c.Plugins.Dir, "*.lua"))
	if err != nil {
		return nil, fmt.Errorf("scanning plugin dir %s: %w", c.Plugins.Dir, err)
	}
	return append(scripts, matches...), nil
}
