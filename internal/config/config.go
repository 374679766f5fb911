package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Algolia  AlgoliaConfig
	Pipeline PipelineConfig
	Auth     AuthConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

type AlgoliaConfig struct {
	ApplicationID string
	APIKey        string
	IndexName     string

	// The replace-all call ships the whole snapshot in one request and waits
	// for indexing to finish, so it gets a generous write timeout.
	WriteTimeout time.Duration
}

type PipelineConfig struct {
	// JobsPageSize is the assembly window size. Purely a performance knob:
	// snapshots are identical for any positive value.
	JobsPageSize int
}

type AuthConfig struct {
	ServiceTokenSecret string
	ServiceTokenTTL    time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    opt("HTTP_PORT"),
		LogLevel:    opt("LOG_LEVEL"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE"),
		ConnectTimeout: durationFromEnv("DB_CONNECT_TIMEOUT_SECONDS", 5*time.Second),
		PoolMaxConns:   int32FromEnv("DB_POOL_MAX_CONNS", 0),
		PoolMinConns:   int32FromEnv("DB_POOL_MIN_CONNS", 0),
	}

	cfg.Algolia = AlgoliaConfig{
		ApplicationID: req("ALGOLIA_APPLICATION_ID"),
		APIKey:        req("ALGOLIA_API_KEY"),
		IndexName:     req("ALGOLIA_INDEX_NAME"),
		WriteTimeout:  durationFromEnv("ALGOLIA_WRITE_TIMEOUT_SECONDS", 5*time.Minute),
	}

	cfg.Pipeline = PipelineConfig{
		JobsPageSize: intFromEnv("JOBS_PAGE_SIZE", 500),
	}

	cfg.Auth = AuthConfig{
		ServiceTokenSecret: opt("SERVICE_TOKEN_SECRET"),
		ServiceTokenTTL:    durationFromEnv("SERVICE_TOKEN_TTL_SECONDS", time.Hour),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func intFromEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func int32FromEnv(key string, fallback int32) int32 {
	return int32(intFromEnv(key, int(fallback)))
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return time.Duration(v) * time.Second
}
