package config

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// Loader resolves a Config from defaults, the TOML file, TE_* variables and
// command line overrides, each layer winning over the one before.
type Loader struct {
	getenv func(string) string
}

func NewLoader() *Loader {
	return &Loader{getenv: os.Getenv}
}

// Load resolves and validates everything except command line overrides.
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithOverrides(nil)
}

// LoadWithOverrides resolves configuration with overrides applied last.
// A nil overrides is the same as Load.
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config := NewConfig()
	if err := l.loadFile(config); err != nil {
		return nil, err
	}
	if err := config.LoadFromEnvironment(l.getenv); err != nil {
		return nil, err
	}
	overrides.apply(config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// loadFile reads the config file. The default location is optional; a path
// named by TE_CONFIG must exist.
func (l *Loader) loadFile(config *Config) error {
	path := config.ConfigFilePath(l.getenv)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && l.getenv(ConfigEnv) == "" {
			return nil
		}
		return &ConfigError{Field: ConfigEnv, Message: err.Error()}
	}
	return config.LoadFromFile(path)
}

// ConfigOverrides holds the flags the user set explicitly. Nil fields leave
// the resolved value alone.
type ConfigOverrides struct {
	Backend        *string
	Key            *string
	Dir            *string
	Filename       *string
	RedisURL       *string
	PostgresURL    *string
	StorageTimeout *time.Duration

	IDStrategy *string

	TimeFormat   *string
	RelativeTime *bool
	ListFormat   *string

	Timeout   *time.Duration
	Verbose   *bool
	LogFormat *string
}

func (o *ConfigOverrides) apply(config *Config) {
	if o == nil {
		return
	}
	override(&config.Storage.Backend, o.Backend)
	override(&config.Storage.Key, o.Key)
	override(&config.Storage.Dir, o.Dir)
	override(&config.Storage.Filename, o.Filename)
	override(&config.Storage.RedisURL, o.RedisURL)
	override(&config.Storage.PostgresURL, o.PostgresURL)
	override(&config.Storage.Timeout, o.StorageTimeout)
	override(&config.Tasks.IDStrategy, o.IDStrategy)
	override(&config.Display.TimeFormat, o.TimeFormat)
	override(&config.Display.RelativeTime, o.RelativeTime)
	override(&config.Display.ListFormat, o.ListFormat)
	override(&config.Application.Timeout, o.Timeout)
	override(&config.Application.Verbose, o.Verbose)
	override(&config.Application.LogFormat, o.LogFormat)
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
