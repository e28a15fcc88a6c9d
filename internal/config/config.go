// Package config loads and validates the client configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	API      APIConfig      `mapstructure:"api"`
	Session  SessionConfig  `mapstructure:"session"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Prefetch PrefetchConfig `mapstructure:"prefetch"`
	Network  NetworkConfig  `mapstructure:"network"`
}

type StorageConfig struct {
	// Path of the sqlite database file backing the key-value store.
	Path string `mapstructure:"path" validate:"required"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

type SessionConfig struct {
	DebounceMs     int `mapstructure:"debounce_ms" validate:"gt=0"`
	StalenessHours int `mapstructure:"staleness_hours" validate:"gt=0"`
	FetchLimit     int `mapstructure:"fetch_limit" validate:"gt=0"`
}

type QueueConfig struct {
	MaxSize    int `mapstructure:"max_size" validate:"gt=0"`
	MaxRetries int `mapstructure:"max_retries" validate:"gt=0"`
}

type CacheConfig struct {
	Directory  string `mapstructure:"directory" validate:"required"`
	MaxEntries int    `mapstructure:"max_entries" validate:"gt=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gt=0"`
}

type PrefetchConfig struct {
	IntervalHours        int  `mapstructure:"interval_hours" validate:"gt=0"`
	BackgroundRestricted bool `mapstructure:"background_restricted"`
}

type NetworkConfig struct {
	ProbeURL string `mapstructure:"probe_url" validate:"required,url"`
	// Transport forces the reported connectivity class; the client cannot
	// detect cellular vs WiFi portably from userspace.
	Transport string `mapstructure:"transport" validate:"transport"`
}

// Debounce returns the session autosave debounce interval.
func (c SessionConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Staleness returns the resume staleness threshold.
func (c SessionConfig) Staleness() time.Duration {
	return time.Duration(c.StalenessHours) * time.Hour
}

// MaxAge returns the cache entry age bound.
func (c CacheConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}

// Interval returns the background prefetch minimum interval.
func (c PrefetchConfig) Interval() time.Duration {
	return time.Duration(c.IntervalHours) * time.Hour
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/phraseloop")
	}

	v.SetDefault("storage.path", filepath.Join("data", "phraseloop.db"))
	v.SetDefault("session.debounce_ms", 500)
	v.SetDefault("session.staleness_hours", 24)
	v.SetDefault("session.fetch_limit", 10)
	v.SetDefault("queue.max_size", 100)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("cache.directory", filepath.Join("data", "audio"))
	v.SetDefault("cache.max_entries", 40)
	v.SetDefault("cache.max_age_days", 7)
	v.SetDefault("prefetch.interval_hours", 24)
	v.SetDefault("network.probe_url", "https://connectivity.phraseloop.app/generate_204")

	// The service URL and transport class may come from the environment
	if err := v.BindEnv("api.base_url", "PHRASELOOP_API_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind PHRASELOOP_API_URL environment variable: %w", err)
	}
	if err := v.BindEnv("network.transport", "PHRASELOOP_NETWORK_TRANSPORT"); err != nil {
		return nil, fmt.Errorf("failed to bind PHRASELOOP_NETWORK_TRANSPORT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("newValidator() > %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate.Struct() > %w", err)
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, fieldError.Translate(trans))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
	}
	return nil
}
