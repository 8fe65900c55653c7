package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Database
	DatabaseURL string

	// Redis (비어 있으면 in-memory rate limiting 사용)
	RedisURL string

	// Random source
	RandomOrgURL  string
	RandomTimeout time.Duration

	// CORS
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	// .env 파일 로드 (있는 경우)
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		RandomOrgURL:  getEnv("RANDOM_ORG_URL", ""),
		RandomTimeout: parseDuration(getEnv("RANDOM_TIMEOUT", "5s"), 5*time.Second),
		CORSAllowedOrigins: splitEnv(getEnv(
			"CORS_ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:5173",
		)),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitEnv(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
