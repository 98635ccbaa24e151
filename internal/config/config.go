package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	// Backend
	APIBaseURL     string
	RequestTimeout time.Duration

	// Session persistence
	StoreBackend string // file | redis
	SessionPath  string // file backend; empty means the per-user default

	// Redis backend
	RedisAddr string
	RedisPass string
	RedisDB   int
	RedisKey  string

	// Devserver
	DevAddr      string
	DevJWTSecret string
	DevTokenTTL  time.Duration

	Debug bool
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		APIBaseURL:     getEnv("BLXCK_API_URL", "http://localhost:8600"),
		RequestTimeout: getEnvDuration("BLXCK_REQUEST_TIMEOUT", 15*time.Second),

		StoreBackend: getEnv("BLXCK_SESSION_STORE", "file"),
		SessionPath:  getEnv("BLXCK_SESSION_PATH", ""),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisKey:  getEnv("BLXCK_SESSION_KEY", "blxck:session"),

		DevAddr:      getEnv("BLXCK_DEV_ADDR", ":8600"),
		DevJWTSecret: getEnv("BLXCK_DEV_JWT_SECRET", "dev-only-secret"),
		DevTokenTTL:  getEnvDuration("BLXCK_DEV_TOKEN_TTL", 24*time.Hour),

		Debug: getEnv("BLXCK_DEBUG", "") != "",
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
