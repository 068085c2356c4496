package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	API      APIConfig
	Session  SessionConfig
	Redis    RedisConfig
	Alert    AlertConfig
	Screen   ScreenConfig
	Realtime RealtimeConfig
	NewRelic NewRelicConfig
	Log      LogConfig
	MockAPI  MockAPIConfig
}

type APIConfig struct {
	// BaseURL is the only value the screens need from the environment.
	BaseURL string
	// RequestTimeout of zero means no client-side deadline.
	RequestTimeout time.Duration
}

type SessionConfig struct {
	Backend    string
	SQLitePath string
	KeyPrefix  string
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type AlertConfig struct {
	Mode string
}

type ScreenConfig struct {
	BatchPolicy string
}

type RealtimeConfig struct {
	Enabled bool
	URL     string
}

type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
	LogLevel   string
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type MockAPIConfig struct {
	Host string
	Port string
	Env  string
}

const (
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", ""),
			RequestTimeout: parseDuration(getEnv("API_REQUEST_TIMEOUT", "30s"), 30*time.Second),
		},
		Session: SessionConfig{
			Backend:    getEnv("SESSION_BACKEND", SessionBackendSQLite),
			SQLitePath: getEnv("SESSION_SQLITE_PATH", defaultSQLitePath()),
			KeyPrefix:  getEnv("SESSION_KEY_PREFIX", "ridehail:"),
		},
		Redis: RedisConfig{
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			MaxRetries:  getEnvAsInt("REDIS_MAX_RETRIES", 3),
			PoolSize:    getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConn: 1,
			DialTimeout: 5 * time.Second,
			ReadTimeout: 3 * time.Second,
		},
		Alert: AlertConfig{
			Mode: getEnv("ALERT_MODE", "auto"),
		},
		Screen: ScreenConfig{
			BatchPolicy: getEnv("BATCH_POLICY", "all_or_nothing"),
		},
		Realtime: RealtimeConfig{
			Enabled: getEnvAsBool("REALTIME_ENABLED", false),
			URL:     getEnv("REALTIME_URL", ""),
		},
		NewRelic: NewRelicConfig{
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			AppName:    getEnv("NEW_RELIC_APP_NAME", "RideHail-Client"),
			Enabled:    getEnvAsBool("NEW_RELIC_ENABLED", false),
			LogLevel:   getEnv("NEW_RELIC_LOG_LEVEL", "info"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stderr"),
		},
		MockAPI: MockAPIConfig{
			Host: getEnv("MOCK_API_HOST", "127.0.0.1"),
			Port: getEnv("MOCK_API_PORT", "8000"),
			Env:  getEnv("MOCK_API_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.RequestTimeout < 0 {
		return fmt.Errorf("API_REQUEST_TIMEOUT must not be negative")
	}
	switch c.Session.Backend {
	case SessionBackendSQLite:
		if c.Session.SQLitePath == "" {
			return fmt.Errorf("SESSION_SQLITE_PATH is required for the sqlite backend")
		}
	case SessionBackendRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis backend")
		}
	case SessionBackendMemory:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	switch c.Alert.Mode {
	case "auto", "prompt", "modal":
	default:
		return fmt.Errorf("unknown ALERT_MODE %q", c.Alert.Mode)
	}
	switch c.Screen.BatchPolicy {
	case "all_or_nothing", "partial":
	default:
		return fmt.Errorf("unknown BATCH_POLICY %q", c.Screen.BatchPolicy)
	}
	if c.Realtime.Enabled && c.Realtime.URL == "" {
		return fmt.Errorf("REALTIME_URL is required when REALTIME_ENABLED is set")
	}
	return nil
}

// Helper functions

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ridehail-session.db"
	}
	return dir + string(os.PathSeparator) + "ridehail" + string(os.PathSeparator) + "session.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
