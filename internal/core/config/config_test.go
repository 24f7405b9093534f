package config

import (
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "LOG_LEVEL", "SERVER_PORT", "CACHE_MAX_SIZE", "CACHE_DEFAULT_TTL", "REDIS_URL", "PROXY_ENABLED"} {
		os.Unsetenv(key)
	}

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)

	assert.Equal(t, 1000, cfg.Cache.MaxSize)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
	assert.Equal(t, "@every 1m", cfg.Cache.CleanupSchedule)
	assert.Empty(t, cfg.Cache.RedisURL)

	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, 60*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, 2.0, cfg.Retry.ExponentialBase)

	assert.Equal(t, "https://trends.google.com", cfg.Trends.BaseURL)
	assert.Equal(t, "en-US", cfg.Trends.HostLanguage)
	assert.Equal(t, -540, cfg.Trends.TZOffset)
	assert.Equal(t, 30*time.Second, cfg.Trends.RequestTimeout)
	assert.Equal(t, 1.0, cfg.Trends.RequestsPerSecond)

	assert.Equal(t, 60*time.Second, cfg.Browser.Timeout)
	assert.False(t, cfg.Proxy.Enabled)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_MAX_SIZE", "50")
	t.Setenv("CACHE_DEFAULT_TTL", "90s")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("RETRY_MAX_RETRIES", "5")
	t.Setenv("RETRY_BASE_DELAY", "250ms")
	t.Setenv("RETRY_EXPONENTIAL_BASE", "3")
	t.Setenv("TRENDS_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("PROXY_ENABLED", "true")
	t.Setenv("PROXY_HOSTNAME", "proxy.local")
	t.Setenv("PROXY_PORT", "3128")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 50, cfg.Cache.MaxSize)
	assert.Equal(t, 90*time.Second, cfg.Cache.DefaultTTL)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Cache.RedisURL)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Trends.BaseURL)

	policy := cfg.Retry.Policy()
	assert.Equal(t, 5, policy.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, policy.BaseDelay)
	assert.Equal(t, 3.0, policy.ExponentialBase)

	settings := cfg.Proxy.Settings()
	assert.True(t, settings.HasProxy())
	assert.Equal(t, "http://proxy.local:3128", settings.HostPort())
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
CACHE_MAX_SIZE=200
CACHE_CLEANUP_SCHEDULE=@every 30s
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, 200, cfg.Cache.MaxSize)
	assert.Equal(t, "@every 30s", cfg.Cache.CleanupSchedule)
}

// TestLoad_InvalidRanges verifies that out-of-range values are rejected.
func TestLoad_InvalidRanges(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"zero cache size", "CACHE_MAX_SIZE", "0", "CACHE_MAX_SIZE"},
		{"negative ttl", "CACHE_DEFAULT_TTL", "-1s", "CACHE_DEFAULT_TTL"},
		{"negative retries", "RETRY_MAX_RETRIES", "-1", "RETRY_MAX_RETRIES"},
		{"shrinking base", "RETRY_EXPONENTIAL_BASE", "0.5", "RETRY_EXPONENTIAL_BASE"},
		{"proxy without host", "PROXY_ENABLED", "true", "PROXY_HOSTNAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("PROXY_HOSTNAME")
			os.Unsetenv("PROXY_PORT")
			t.Setenv(tt.key, tt.val)

			cfg, err := Load(".")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestValidateRequired verifies that missing required fields return an error.
func TestValidateRequired(t *testing.T) {
	cfg := AppConfig{}

	err := validateRequired(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required configuration: TRENDS_BASE_URL")

	cfg.Trends.BaseURL = "https://trends.google.com"
	assert.NoError(t, validateRequired(&cfg))
}

// TestIsZero verifies zero detection across kinds.
func TestIsZero(t *testing.T) {
	var cfg AppConfig
	cfg.Retry.ExponentialBase = 2

	assert.True(t, isZero(reflectValue(cfg.Environment)))
	assert.True(t, isZero(reflectValue(cfg.Cache.DefaultTTL)))
	assert.False(t, isZero(reflectValue(cfg.Retry.ExponentialBase)))
	assert.True(t, isZero(reflectValue(cfg.Proxy.Enabled)))
	assert.True(t, isZero(reflectValue([]string{})))
}

func reflectValue(v interface{}) reflect.Value {
	return reflect.ValueOf(v)
}
