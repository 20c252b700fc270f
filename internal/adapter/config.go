package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Metadata MetadataConfig `mapstructure:"metadata"`
	Storage  StorageConfig  `mapstructure:"storage"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// MetadataConfig holds metadata API configuration
type MetadataConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`       // API root, e.g. https://api.themoviedb.org/3
	ImageBaseURL string `mapstructure:"image_base_url"` // Image CDN root, size is appended
	Language     string `mapstructure:"language"`
}

// StorageConfig selects where the watchlist and progress live
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "bolt", "file" or "memory"
	Dir     string `mapstructure:"dir"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	RailWidth    int `mapstructure:"rail_width"`    // Cards visible in the continue-watching rail
	ToastSeconds int `mapstructure:"toast_seconds"` // How long notifications stay up
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Metadata: MetadataConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "en-US",
		},
		Storage: StorageConfig{
			Backend: "bolt",
			Dir:     defaultDataPath(),
		},
		UI: UIConfig{
			RailWidth:    4,
			ToastSeconds: 3,
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), "marquee.log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// DefaultConfigFile is where SaveConfig writes when no path is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// newViper builds a viper instance with defaults registered so that
// environment overrides apply even when no config file exists.
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()

	v.SetDefault("metadata.api_key", cfg.Metadata.APIKey)
	v.SetDefault("metadata.base_url", cfg.Metadata.BaseURL)
	v.SetDefault("metadata.image_base_url", cfg.Metadata.ImageBaseURL)
	v.SetDefault("metadata.language", cfg.Metadata.Language)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("ui.rail_width", cfg.UI.RailWidth)
	v.SetDefault("ui.toast_seconds", cfg.UI.ToastSeconds)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)

	// Environment variable overrides (MARQUEE_METADATA_API_KEY, ...)
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment.
// An explicit path must exist; otherwise the default locations are searched
// and a missing file is fine.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	if cfg.UI.RailWidth <= 0 {
		cfg.UI.RailWidth = DefaultConfig().UI.RailWidth
	}

	return cfg, nil
}

// SaveConfig writes the configuration to path, or the default location when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("metadata.api_key", cfg.Metadata.APIKey)
	v.Set("metadata.base_url", cfg.Metadata.BaseURL)
	v.Set("metadata.image_base_url", cfg.Metadata.ImageBaseURL)
	v.Set("metadata.language", cfg.Metadata.Language)

	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.dir", cfg.Storage.Dir)

	v.Set("ui.rail_width", cfg.UI.RailWidth)
	v.Set("ui.toast_seconds", cfg.UI.ToastSeconds)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.Set("logging.max_backups", cfg.Logging.MaxBackups)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// HasAPIKey returns true if a metadata API key is configured
func (c *Config) HasAPIKey() bool {
	return c.Metadata.APIKey != ""
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
