package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	RegionCode      string
	YouTubeAPIKey   string
	CredentialsFile string
	RedisURL        string
	LogLevel        string
	Environment     string
	CORSOrigins     string
	MaxResults      int64
	FetchTimeout    time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		RegionCode:      getEnv("REGION_CODE", "KR"),
		YouTubeAPIKey:   getEnv("YOUTUBE_API_KEY", ""),
		CredentialsFile: getEnv("CREDENTIALS_FILE", "credentials.yaml"),
		RedisURL:        getEnv("REDIS_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		MaxResults:      getEnvInt64("MAX_RESULTS", 30),
		FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
