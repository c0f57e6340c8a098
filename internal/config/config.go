package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	PostgresDSN     string
	RedisURL        string
	MailerBaseURL   string
	NotifyEmail     string
	AdminBaseURL    string
	FallbackStage   int
	LogLevel        string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxIdle   time.Duration
	DBConnMaxLife   time.Duration
	RequestTimeout  time.Duration
	MailerTimeout   time.Duration
	ApplyRateLimit  int
	ApplyRateWindow time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		PostgresDSN:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		MailerBaseURL:   getEnv("MAILER_BASE_URL", ""),
		NotifyEmail:     getEnv("NOTIFY_EMAIL", ""),
		AdminBaseURL:    getEnv("ADMIN_BASE_URL", "http://localhost:3000"),
		FallbackStage:   getInt("PIPELINE_FALLBACK_STAGE", 2),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBMaxOpenConns:  getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:  getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:   getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:   getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 10*time.Second),
		MailerTimeout:   getDuration("MAILER_TIMEOUT", 15*time.Second),
		ApplyRateLimit:  getInt("APPLY_RATE_LIMIT", 5),
		ApplyRateWindow: getDuration("APPLY_RATE_WINDOW", time.Minute),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.FallbackStage < 1 || cfg.FallbackStage > 6 {
		log.Fatal("PIPELINE_FALLBACK_STAGE must be between 1 and 6")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
