package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"

	"keydash/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Version  int            `toml:"version"`
	DataFile string         `toml:"data_file"`
	LogLevel string         `toml:"log_level"`
	UI       UISettings     `toml:"ui"`
	Query    QuerySettings  `toml:"query"`
	Links    Links          `toml:"links"`
	Labels   Labels         `toml:"labels"`
	Themes   []domain.Theme `toml:"themes"`
}

// UISettings represents dashboard presentation settings
type UISettings struct {
	Theme        string `toml:"theme"`
	FontSize     string `toml:"font_size"`
	Columns      int    `toml:"columns"`
	OpenInNewTab bool   `toml:"open_in_new_tab"`
	CurrentPage  string `toml:"current_page"`
}

// QuerySettings tunes the keystroke interpreter
type QuerySettings struct {
	Interleave        bool `toml:"interleave"`
	KeepOpenWhenEmpty bool `toml:"keep_open_when_empty"`
	FuzzyLimit        int  `toml:"fuzzy_limit"`
	CompletionGuardMS int  `toml:"completion_guard_ms"`
}

// Links are the built-in navigation targets offered next to bookmarks
type Links struct {
	ConfigURL string `toml:"config_url"`
	ColorsURL string `toml:"colors_url"`
}

// Labels are preformatted strings shown by the interpreter overlay
type Labels struct {
	Yes       string `toml:"yes"`
	No        string `toml:"no"`
	NoMatches string `toml:"no_matches"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted at the user config dir
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// DefaultPath returns the default location of the config file
func DefaultPath() string {
	return filepath.Join(userConfigDir(), "keydash", "config.toml")
}

// DefaultDataPath returns the default location of the bookmark data file
func DefaultDataPath() string {
	return filepath.Join(userConfigDir(), "keydash", "bookmarks.json")
}

func userConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return configDir
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults if the file is missing
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	themeIDs := make([]interface{}, 0)
	for _, t := range domain.Themes(c.Themes) {
		themeIDs = append(themeIDs, t.ID)
	}
	fontIDs := make([]interface{}, 0, len(domain.FontSizes))
	for _, f := range domain.FontSizes {
		fontIDs = append(fontIDs, f.ID)
	}

	if err := validation.ValidateStruct(c,
		validation.Field(&c.DataFile, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&c.UI,
		validation.Field(&c.UI.Theme, validation.Required, validation.In(themeIDs...)),
		validation.Field(&c.UI.FontSize, validation.Required, validation.In(fontIDs...)),
		validation.Field(&c.UI.Columns, validation.Min(domain.MinColumns), validation.Max(domain.MaxColumns)),
	); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	if err := validation.ValidateStruct(&c.Query,
		validation.Field(&c.Query.FuzzyLimit, validation.Min(0)),
		validation.Field(&c.Query.CompletionGuardMS, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("query: %w", err)
	}
	for i := range c.Themes {
		t := &c.Themes[i]
		if err := validation.ValidateStruct(t,
			validation.Field(&t.ID, validation.Required),
			validation.Field(&t.Name, validation.Required),
		); err != nil {
			return fmt.Errorf("themes[%d]: %w", i, err)
		}
	}
	return nil
}

// applyDefaults fills zero values a partial file may leave behind
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.DataFile == "" {
		c.DataFile = def.DataFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Labels.Yes == "" {
		c.Labels.Yes = def.Labels.Yes
	}
	if c.Labels.No == "" {
		c.Labels.No = def.Labels.No
	}
	if c.Labels.NoMatches == "" {
		c.Labels.NoMatches = def.Labels.NoMatches
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		DataFile: DefaultDataPath(),
		LogLevel: "info",
		UI: UISettings{
			Theme:        "dark",
			FontSize:     "m",
			Columns:      4,
			OpenInNewTab: true,
		},
		Query: QuerySettings{
			FuzzyLimit:        10,
			CompletionGuardMS: 80,
		},
		Labels: Labels{
			Yes:       "yes",
			No:        "no",
			NoMatches: "no matches",
		},
	}
}
