package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Storage backend names.
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// ConfigEnv names a TOML file to load instead of <storage dir>/config.toml.
const ConfigEnv = "TE_CONFIG"

// Config holds all configuration options for the task editor
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Tasks       TasksConfig       `toml:"tasks"`
	Display     DisplayConfig     `toml:"display"`
	Application ApplicationConfig `toml:"application"`
}

// StorageConfig selects and configures the blob store
type StorageConfig struct {
	Backend        string        `toml:"backend" env:"TE_STORAGE_BACKEND"`
	Key            string        `toml:"key" env:"TE_STORAGE_KEY"`
	Dir            string        `toml:"dir" env:"TE_STORAGE_DIR"`
	Filename       string        `toml:"filename" env:"TE_STORAGE_FILENAME"`
	DirPermissions uint32        `toml:"dir_permissions" env:"TE_STORAGE_DIR_PERMISSIONS"`
	RedisURL       string        `toml:"redis_url" env:"TE_REDIS_URL"`
	PostgresURL    string        `toml:"postgres_url" env:"TE_POSTGRES_URL"`
	Timeout        time.Duration `toml:"timeout" env:"TE_STORAGE_TIMEOUT"`
}

// TasksConfig holds id generation and optional field limits. A limit of 0
// means no limit.
type TasksConfig struct {
	IDStrategy           string `toml:"id_strategy" env:"TE_ID_STRATEGY"`
	NameMaxLength        int    `toml:"name_max_length" env:"TE_TASK_NAME_MAX"`
	DescriptionMaxLength int    `toml:"description_max_length" env:"TE_TASK_DESCRIPTION_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat   string `toml:"time_format" env:"TE_TIME_DISPLAY_FORMAT"`
	RelativeTime bool   `toml:"relative_time" env:"TE_DISPLAY_RELATIVE_TIME"`
	ListFormat   string `toml:"list_format" env:"TE_LIST_DEFAULT_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `toml:"timeout" env:"TE_APP_TIMEOUT"`
	Verbose   bool          `toml:"verbose" env:"TE_APP_VERBOSE"`
	LogFormat string        `toml:"log_format" env:"TE_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".te")

	return &Config{
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			Key:            "tasks",
			Dir:            defaultDir,
			Filename:       "te.db",
			DirPermissions: 0755,
			RedisURL:       "redis://localhost:6379/0",
			Timeout:        5 * time.Second,
		},
		Tasks: TasksConfig{
			IDStrategy: "clock",
		},
		Display: DisplayConfig{
			TimeFormat:   "2006-01-02 15:04",
			RelativeTime: true,
			ListFormat:   "table",
		},
		Application: ApplicationConfig{
			Timeout:   30 * time.Second,
			Verbose:   false,
			LogFormat: "text",
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// ConfigFilePath returns the TOML file to read: TE_CONFIG when set, otherwise
// config.toml in the storage directory (TE_STORAGE_DIR or the default).
// Variables are read through getenv.
func (c *Config) ConfigFilePath(getenv func(string) string) string {
	if path := getenv(ConfigEnv); path != "" {
		return path
	}
	dir := c.Storage.Dir
	if envDir := getenv("TE_STORAGE_DIR"); envDir != "" {
		dir = envDir
	}
	return filepath.Join(dir, "config.toml")
}

// LoadFromFile overlays the values present in a TOML file. Keys missing from
// the file keep their current values.
func (c *Config) LoadFromFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return &ConfigError{Field: undecoded[0].String(), Message: "unknown configuration key in " + path}
	}
	return nil
}

// LoadFromEnvironment loads configuration from the TE_* variables getenv
// returns.
func (c *Config) LoadFromEnvironment(getenv func(string) string) error {
	// Storage configuration
	if backend := getenv("TE_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if key := getenv("TE_STORAGE_KEY"); key != "" {
		c.Storage.Key = key
	}
	if dir := getenv("TE_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := getenv("TE_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if perms := getenv("TE_STORAGE_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}
	if url := getenv("TE_REDIS_URL"); url != "" {
		c.Storage.RedisURL = url
	}
	if url := getenv("TE_POSTGRES_URL"); url != "" {
		c.Storage.PostgresURL = url
	}
	if timeout := getenv("TE_STORAGE_TIMEOUT"); timeout != "" {
		c.Storage.Timeout = ParseDurationWithFallback(timeout, c.Storage.Timeout)
	}

	// Tasks configuration
	if strategy := getenv("TE_ID_STRATEGY"); strategy != "" {
		c.Tasks.IDStrategy = strategy
	}
	if maxLen := getenv("TE_TASK_NAME_MAX"); maxLen != "" {
		c.Tasks.NameMaxLength = ParseIntWithFallback(maxLen, c.Tasks.NameMaxLength)
	}
	if maxLen := getenv("TE_TASK_DESCRIPTION_MAX"); maxLen != "" {
		c.Tasks.DescriptionMaxLength = ParseIntWithFallback(maxLen, c.Tasks.DescriptionMaxLength)
	}

	// Display configuration
	if format := getenv("TE_TIME_DISPLAY_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if relative := getenv("TE_DISPLAY_RELATIVE_TIME"); relative != "" {
		c.Display.RelativeTime = ParseBoolWithFallback(relative, c.Display.RelativeTime)
	}
	if format := getenv("TE_LIST_DEFAULT_FORMAT"); format != "" {
		c.Display.ListFormat = format
	}

	// Application configuration
	if timeout := getenv("TE_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := getenv("TE_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if format := getenv("TE_LOG_FORMAT"); format != "" {
		c.Application.LogFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Dir == "" {
			return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
		}
		if c.Storage.Filename == "" {
			return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
		}
	case BackendRedis:
		if c.Storage.RedisURL == "" {
			return &ConfigError{Field: "storage.redis_url", Message: "redis URL is required for the redis backend"}
		}
	case BackendPostgres:
		if c.Storage.PostgresURL == "" {
			return &ConfigError{Field: "storage.postgres_url", Message: "postgres URL is required for the postgres backend"}
		}
	case BackendMemory:
	default:
		return &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q (want sqlite, redis, postgres or memory)", c.Storage.Backend)}
	}
	if c.Storage.Key == "" {
		return &ConfigError{Field: "storage.key", Message: "storage key cannot be empty"}
	}
	if c.Storage.Timeout <= 0 {
		return &ConfigError{Field: "storage.timeout", Message: "storage timeout must be positive"}
	}

	// Validate tasks configuration
	if c.Tasks.IDStrategy != "clock" && c.Tasks.IDStrategy != "sequence" {
		return &ConfigError{Field: "tasks.id_strategy", Message: fmt.Sprintf("unknown id strategy %q (want clock or sequence)", c.Tasks.IDStrategy)}
	}
	if c.Tasks.NameMaxLength < 0 {
		return &ConfigError{Field: "tasks.name_max_length", Message: "task name maximum length cannot be negative"}
	}
	if c.Tasks.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "tasks.description_max_length", Message: "task description maximum length cannot be negative"}
	}

	// Validate display configuration
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	switch c.Display.ListFormat {
	case "table", "json", "csv":
	default:
		return &ConfigError{Field: "display.list_format", Message: fmt.Sprintf("unknown list format %q (want table, json or csv)", c.Display.ListFormat)}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch c.Application.LogFormat {
	case "text", "json", "logfmt":
	default:
		return &ConfigError{Field: "application.log_format", Message: fmt.Sprintf("unknown log format %q (want text, json or logfmt)", c.Application.LogFormat)}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
