package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mlibctl/internal/errors"
	"mlibctl/internal/naming"
	"mlibctl/internal/navigation"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file
const (
	EnvServer = "MLIBCTL_SERVER"
	EnvAPIKey = "MLIBCTL_API_KEY"
)

// Server describes how to reach the media library backend
type Server struct {
	URL            string `yaml:"url"`             // Base URL, e.g. http://localhost:3000
	APIKey         string `yaml:"api_key"`         // Sent as the apiKey query parameter
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout
}

// Export holds the export dialog's defaults
type Export struct {
	IncludeNFO         bool     `yaml:"include_nfo"`
	UseSimpleFilenames bool     `yaml:"use_simple_filenames"`
	CreateNewFolder    bool     `yaml:"create_new_folder"`
	NamingConvention   string   `yaml:"naming_convention"` // original, snake_case or kebab_case
	FolderSource       string   `yaml:"folder_source"`     // tree or lazy
	HiddenFolders      []string `yaml:"hidden_folders"`    // Glob patterns hidden from the folder browser
	CloseDelayMS       int      `yaml:"close_delay_ms"`    // How long the success message stays up
}

// Theme holds the terminal color scheme
type Theme struct {
	Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
	Primary  string `yaml:"primary"`  // Primary color for branding
	Success  string `yaml:"success"`  // Success message color
	Warning  string `yaml:"warning"`  // Warning message color
	Error    string `yaml:"error"`    // Error message color
	Info     string `yaml:"info"`     // Informational message color
	Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
	Border   string `yaml:"border"`   // Border color for frames
}

// Config represents the application configuration structure.
type Config struct {
	Server Server `yaml:"server"`
	Export Export `yaml:"export"`
	Theme  Theme  `yaml:"theme"`
}

// DefaultPath returns ~/.config/mlibctl/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mlibctl", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/mlibctl/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration. Environment
// overrides are applied last.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}
	if err == nil {
		// keys absent from the file keep their defaults
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
		// a theme name fills in every color the file leaves out
		var file struct {
			Theme Theme `yaml:"theme"`
		}
		if err := yaml.Unmarshal(data, &file); err == nil {
			cfg.ApplyTheme(cfg.Theme.Name)
			cfg.Theme.overlay(file.Theme)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvServer)); v != "" {
		c.Server.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.Server.APIKey = v
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.URL = "http://localhost:3000"
	cfg.Server.TimeoutSeconds = 30

	// Same defaults the export dialog starts with
	cfg.Export.IncludeNFO = true
	cfg.Export.UseSimpleFilenames = false
	cfg.Export.CreateNewFolder = true
	cfg.Export.NamingConvention = string(naming.Original)
	cfg.Export.FolderSource = string(navigation.StrategyTree)
	cfg.Export.HiddenFolders = []string{}
	cfg.Export.CloseDelayMS = 1500

	cfg.ApplyTheme("default")
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// the file may carry an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	if c.Server.URL != "" {
		u, err := url.Parse(c.Server.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.NewConfigError("server url must be an http(s) URL", "server.url", errors.InvalidConfig, err)
		}
	}
	if c.Server.TimeoutSeconds < 0 {
		return errors.NewConfigError("timeout must be >= 0 seconds", "server.timeout_seconds", errors.InvalidConfig, nil)
	}

	conv, err := naming.ParseConvention(c.Export.NamingConvention)
	if err != nil {
		return errors.NewConfigError("invalid naming convention", "export.naming_convention", errors.InvalidConfig, err)
	}
	if conv == naming.Custom {
		return errors.NewConfigError("custom is not a default convention", "export.naming_convention", errors.InvalidConfig, nil)
	}
	if _, err := navigation.ParseStrategy(c.Export.FolderSource); err != nil {
		return errors.NewConfigError("invalid folder source", "export.folder_source", errors.InvalidConfig, err)
	}
	for i, p := range c.Export.HiddenFolders {
		if _, err := glob.Compile(p); err != nil {
			return errors.NewConfigError("invalid hidden folder pattern", fmt.Sprintf("export.hidden_folders[%d]", i), errors.InvalidConfig, err)
		}
	}
	if c.Export.CloseDelayMS < 0 {
		return errors.NewConfigError("close delay must be >= 0", "export.close_delay_ms", errors.InvalidConfig, nil)
	}
	return nil
}

// Timeout is the per-request timeout; zero means none
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// CloseDelay is how long the export dialog stays open after a success
func (c *Config) CloseDelay() time.Duration {
	return time.Duration(c.Export.CloseDelayMS) * time.Millisecond
}

// Convention returns the validated default naming convention
func (c *Config) Convention() naming.Convention {
	conv, err := naming.ParseConvention(c.Export.NamingConvention)
	if err != nil {
		return naming.Original
	}
	return conv
}

// Strategy returns the validated folder source strategy
func (c *Config) Strategy() navigation.Strategy {
	s, err := navigation.ParseStrategy(c.Export.FolderSource)
	if err != nil {
		return navigation.StrategyTree
	}
	return s
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
			"border":   "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme colors from a named theme.
func (c *Config) ApplyTheme(name string) {
	if name == "" {
		name = "default"
	}
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

func (t *Theme) overlay(o Theme) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&t.Primary, o.Primary)
	set(&t.Success, o.Success)
	set(&t.Warning, o.Warning)
	set(&t.Error, o.Error)
	set(&t.Info, o.Info)
	set(&t.Emphasis, o.Emphasis)
	set(&t.Border, o.Border)
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
