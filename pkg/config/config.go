package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv  string
	API     APIConfig
	Logger  LoggerConfig
	Storage StorageConfig
	Watch   WatchConfig
	Stub    StubConfig
}

type APIConfig struct {
	BaseURL string
	// Zero disables the per-request timeout.
	Timeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type StorageConfig struct {
	Path string
}

type WatchConfig struct {
	Interval time.Duration
}

// StubConfig configures the in-memory backend used for local development.
type StubConfig struct {
	Port      string
	JWTSecret string
	Username  string
	Password  string
}

func LoadEnv() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "dev"),
		API: APIConfig{
			BaseURL: getEnv("CHEFSTOCK_API_URL", "http://localhost:8000/api/"),
			Timeout: getEnvDuration("CHEFSTOCK_HTTP_TIMEOUT", 0),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Storage: StorageConfig{
			Path: getEnv("CHEFSTOCK_STATE_DB", defaultStatePath()),
		},
		Watch: WatchConfig{
			Interval: getEnvDuration("WATCH_INTERVAL", 15*time.Minute),
		},
		Stub: StubConfig{
			Port:      getEnv("PORT", "8000"),
			JWTSecret: getEnv("JWT_SECRET", "chefstock-dev-secret"),
			Username:  getEnv("STUB_USERNAME", "admin"),
			Password:  getEnv("STUB_PASSWORD", "admin123"),
		},
	}
}

// IsDevelopment reports whether APP_ENV selects the developer logger.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "dev" || env == "development"
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "chefstock-state.db"
	}
	return filepath.Join(home, ".chefstock", "state.db")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("30s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if i, err := strconv.Atoi(value); err == nil {
		return time.Duration(i) * time.Second
	}
	return fallback
}
