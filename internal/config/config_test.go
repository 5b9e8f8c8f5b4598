package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every TE_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		ConfigEnv, "TE_STORAGE_BACKEND", "TE_STORAGE_KEY", "TE_STORAGE_DIR", "TE_STORAGE_FILENAME",
		"TE_STORAGE_DIR_PERMISSIONS", "TE_REDIS_URL", "TE_POSTGRES_URL", "TE_STORAGE_TIMEOUT",
		"TE_ID_STRATEGY", "TE_TASK_NAME_MAX", "TE_TASK_DESCRIPTION_MAX", "TE_TIME_DISPLAY_FORMAT",
		"TE_DISPLAY_RELATIVE_TIME", "TE_LIST_DEFAULT_FORMAT", "TE_APP_TIMEOUT", "TE_APP_VERBOSE",
		"TE_LOG_FORMAT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "tasks", cfg.Storage.Key)
	assert.Equal(t, "te.db", cfg.Storage.Filename)
	assert.Equal(t, uint32(0755), cfg.Storage.DirPermissions)
	assert.Equal(t, 5*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, "clock", cfg.Tasks.IDStrategy)
	assert.Zero(t, cfg.Tasks.NameMaxLength, "no limit by default")
	assert.Zero(t, cfg.Tasks.DescriptionMaxLength, "no limit by default")
	assert.Equal(t, "2006-01-02 15:04", cfg.Display.TimeFormat)
	assert.True(t, cfg.Display.RelativeTime)
	assert.Equal(t, "table", cfg.Display.ListFormat)
	assert.Equal(t, 30*time.Second, cfg.Application.Timeout)
	assert.Equal(t, "text", cfg.Application.LogFormat)
	assert.Equal(t, ".te", filepath.Base(cfg.Storage.Dir))
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TE_STORAGE_BACKEND", "redis")
	t.Setenv("TE_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("TE_STORAGE_DIR_PERMISSIONS", "700")
	t.Setenv("TE_STORAGE_TIMEOUT", "250ms")
	t.Setenv("TE_TASK_NAME_MAX", "40")
	t.Setenv("TE_DISPLAY_RELATIVE_TIME", "false")
	t.Setenv("TE_APP_VERBOSE", "true")
	t.Setenv("TE_APP_TIMEOUT", "not-a-duration")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment(os.Getenv))

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://cache:6379/2", cfg.Storage.RedisURL)
	assert.Equal(t, uint32(0700), cfg.Storage.DirPermissions)
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.Timeout)
	assert.Equal(t, 40, cfg.Tasks.NameMaxLength)
	assert.False(t, cfg.Display.RelativeTime)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, 30*time.Second, cfg.Application.Timeout, "unparsable values keep the previous setting")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
backend = "memory"
key = "work"
timeout = "2s"

[tasks]
id_strategy = "sequence"

[display]
list_format = "json"
`), 0644))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "work", cfg.Storage.Key)
	assert.Equal(t, 2*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, "sequence", cfg.Tasks.IDStrategy)
	assert.Equal(t, "json", cfg.Display.ListFormat)
	assert.Equal(t, "te.db", cfg.Storage.Filename, "keys missing from the file keep defaults")
}

func TestLoadFromFile_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"memory\"\ncolour = \"blue\"\n"), 0644))

	err := NewConfig().LoadFromFile(path)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "storage.colour", cfgErr.Field)
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage\n"), 0644))

	assert.Error(t, NewConfig().LoadFromFile(path))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "etcd" }, "storage.backend"},
		{"empty dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"empty filename", func(c *Config) { c.Storage.Filename = "" }, "storage.filename"},
		{"redis without url", func(c *Config) { c.Storage.Backend = BackendRedis; c.Storage.RedisURL = "" }, "storage.redis_url"},
		{"postgres without url", func(c *Config) { c.Storage.Backend = BackendPostgres }, "storage.postgres_url"},
		{"empty key", func(c *Config) { c.Storage.Key = "" }, "storage.key"},
		{"zero storage timeout", func(c *Config) { c.Storage.Timeout = 0 }, "storage.timeout"},
		{"unknown id strategy", func(c *Config) { c.Tasks.IDStrategy = "uuid" }, "tasks.id_strategy"},
		{"negative name max", func(c *Config) { c.Tasks.NameMaxLength = -1 }, "tasks.name_max_length"},
		{"negative description max", func(c *Config) { c.Tasks.DescriptionMaxLength = -1 }, "tasks.description_max_length"},
		{"empty time format", func(c *Config) { c.Display.TimeFormat = "" }, "display.time_format"},
		{"unknown list format", func(c *Config) { c.Display.ListFormat = "xml" }, "display.list_format"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
		{"unknown log format", func(c *Config) { c.Application.LogFormat = "xml" }, "application.log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidate_MemoryNeedsNoPaths(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = BackendMemory
	cfg.Storage.Dir = ""

	assert.NoError(t, cfg.Validate())
}

func TestConfigFilePath(t *testing.T) {
	env := map[string]string{}
	getenv := func(key string) string { return env[key] }
	cfg := NewConfig()
	cfg.Storage.Dir = "/data/te"

	assert.Equal(t, filepath.Join("/data/te", "config.toml"), cfg.ConfigFilePath(getenv))

	env["TE_STORAGE_DIR"] = "/srv/te"
	assert.Equal(t, filepath.Join("/srv/te", "config.toml"), cfg.ConfigFilePath(getenv))

	env[ConfigEnv] = "/etc/te.toml"
	assert.Equal(t, "/etc/te.toml", cfg.ConfigFilePath(getenv))
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDurationWithFallback("3s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("x", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("seven", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0))
	assert.Equal(t, uint32(1), ParseUint32WithFallback("9", 8, 1))
}
