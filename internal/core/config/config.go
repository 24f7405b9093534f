package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"trendkit/internal/core/proxy"
	"trendkit/internal/core/retry"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Cache holds the in-process and shared cache settings.
	Cache CacheConfig `mapstructure:",squash"`

	// Retry holds the backoff policy for upstream calls.
	Retry RetryConfig `mapstructure:",squash"`

	// Trends holds the Google Trends endpoint settings.
	Trends TrendsConfig `mapstructure:",squash"`

	// Browser holds the headless browser settings used by bulk collection.
	Browser BrowserConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// CacheConfig configures the memoization store.
type CacheConfig struct {
	// MaxSize is the maximum number of entries held in memory.
	MaxSize int `mapstructure:"CACHE_MAX_SIZE" default:"1000"`
	// DefaultTTL is the lifetime of an entry when a call does not override it.
	DefaultTTL time.Duration `mapstructure:"CACHE_DEFAULT_TTL" default:"5m"`
	// CleanupSchedule is the cron spec of the expired-entry sweep.
	CleanupSchedule string `mapstructure:"CACHE_CLEANUP_SCHEDULE" default:"@every 1m"`
	// RedisURL enables the shared tier when set (e.g., redis://localhost:6379/0).
	RedisURL string `mapstructure:"REDIS_URL"`
}

// RetryConfig configures exponential backoff.
type RetryConfig struct {
	MaxRetries      int           `mapstructure:"RETRY_MAX_RETRIES" default:"3"`
	BaseDelay       time.Duration `mapstructure:"RETRY_BASE_DELAY" default:"1s"`
	MaxDelay        time.Duration `mapstructure:"RETRY_MAX_DELAY" default:"60s"`
	ExponentialBase float64       `mapstructure:"RETRY_EXPONENTIAL_BASE" default:"2.0"`
}

// Policy converts the settings into a retry.Config.
func (r RetryConfig) Policy() retry.Config {
	return retry.Config{
		MaxRetries:      r.MaxRetries,
		BaseDelay:       r.BaseDelay,
		MaxDelay:        r.MaxDelay,
		ExponentialBase: r.ExponentialBase,
	}
}

// TrendsConfig configures the Google Trends HTTP endpoints.
type TrendsConfig struct {
	// BaseURL is the Trends origin, overridable for tests and mirrors.
	BaseURL string `mapstructure:"TRENDS_BASE_URL" default:"https://trends.google.com" required:"true"`
	// HostLanguage is the hl parameter sent upstream.
	HostLanguage string `mapstructure:"TRENDS_HOST_LANGUAGE" default:"en-US"`
	// TZOffset is the tz parameter sent upstream, in minutes.
	TZOffset int `mapstructure:"TRENDS_TZ_OFFSET" default:"-540"`
	// RequestTimeout bounds every HTTP request to Trends.
	RequestTimeout time.Duration `mapstructure:"TRENDS_REQUEST_TIMEOUT" default:"30s"`
	// RequestsPerSecond throttles the explore API client.
	RequestsPerSecond float64 `mapstructure:"TRENDS_REQUESTS_PER_SECOND" default:"1"`
}

// BrowserConfig configures the headless browser.
type BrowserConfig struct {
	// Timeout bounds one full bulk scrape.
	Timeout time.Duration `mapstructure:"BROWSER_TIMEOUT" default:"60s"`
	// Bin is an explicit Chromium binary. Empty lets rod locate or download one.
	Bin string `mapstructure:"BROWSER_BIN"`
}

// ProxyConfig holds outbound proxy details.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Settings converts the configuration into proxy.Settings.
func (p ProxyConfig) Settings() proxy.Settings {
	return proxy.Settings{
		Enabled:  p.Enabled,
		Hostname: p.Hostname,
		Port:     p.Port,
		Username: p.Username,
		Password: p.Password,
	}
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate enforces the ranges the cache and retry layers rely on.
func (c *AppConfig) validate() error {
	if c.Cache.MaxSize <= 0 {
		return fmt.Errorf("invalid configuration: CACHE_MAX_SIZE must be positive, got %d", c.Cache.MaxSize)
	}
	if c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("invalid configuration: CACHE_DEFAULT_TTL must be positive, got %s", c.Cache.DefaultTTL)
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("invalid configuration: RETRY_MAX_RETRIES must not be negative, got %d", c.Retry.MaxRetries)
	}
	if c.Retry.ExponentialBase < 1 {
		return fmt.Errorf("invalid configuration: RETRY_EXPONENTIAL_BASE must be at least 1, got %g", c.Retry.ExponentialBase)
	}
	if c.Proxy.Enabled && (c.Proxy.Hostname == "" || c.Proxy.Port <= 0) {
		return errors.New("invalid configuration: PROXY_HOSTNAME and PROXY_PORT are required when PROXY_ENABLED is true")
	}
	return nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
