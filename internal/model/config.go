package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// APIConfig holds settings for the remote task repository.
type APIConfig struct {
	// BaseURL is the root URL of the task API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec is the per-request HTTP timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// TokenKey is the keyring entry name holding the bearer token.
	TokenKey string `mapstructure:"token_key" yaml:"token_key"`
}

// CacheConfig holds settings for the offline task cache.
type CacheConfig struct {
	// Path is the SQLite database file for the last-known task list.
	Path string `mapstructure:"path" yaml:"path"`
}

// PollConfig holds the two background polling cadences. They are
// independent: reminders re-evaluate on one timer, the unread
// notification count refreshes on another.
type PollConfig struct {
	ReminderIntervalSec     int `mapstructure:"reminder_interval_sec" yaml:"reminder_interval_sec"`
	NotificationIntervalSec int `mapstructure:"notification_interval_sec" yaml:"notification_interval_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API   APIConfig   `mapstructure:"api" yaml:"api"`
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`
	Poll  PollConfig  `mapstructure:"poll" yaml:"poll"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasksync/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tasksync", "config.yaml")
}

// defaultCachePath returns the default offline cache location next to the
// config file.
func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cache.db")
	}
	return filepath.Join(home, ".config", "tasksync", "cache.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    "http://localhost:8000",
			TimeoutSec: 10,
			TokenKey:   "api-token",
		},
		Cache: CacheConfig{
			Path: defaultCachePath(),
		},
		Poll: PollConfig{
			ReminderIntervalSec:     60,
			NotificationIntervalSec: 30,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_sec", 10)
	v.SetDefault("api.token_key", "api-token")
	v.SetDefault("cache.path", defaultCachePath())
	v.SetDefault("poll.reminder_interval_sec", 60)
	v.SetDefault("poll.notification_interval_sec", 30)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Poll.ReminderIntervalSec <= 0 {
		cfg.Poll.ReminderIntervalSec = 60
	}
	if cfg.Poll.NotificationIntervalSec <= 0 {
		cfg.Poll.NotificationIntervalSec = 30
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("cache", cfg.Cache)
	v.Set("poll", cfg.Poll)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
