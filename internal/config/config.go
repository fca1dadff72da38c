package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"fopassistant/internal/logger"

	"github.com/joho/godotenv"
)

const (
	defaultNBUBaseURL = "https://bank.gov.ua/NBUStatService/v1/statdirectory/exchange"
	defaultOrigins    = "http://localhost:5173,http://127.0.0.1:5173,http://localhost:5174,http://127.0.0.1:5174"
)

// Config holds process-wide settings read from the environment.
type Config struct {
	Port              string
	LogLevel          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	NBUBaseURL        string
	RateLookupTimeout time.Duration
	AllowedOrigins    []string
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.L.Info("No .env file found, relying on environment variables")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "postgres"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		NBUBaseURL:        getEnv("NBU_BASE_URL", defaultNBUBaseURL),
		RateLookupTimeout: getEnvDuration("RATE_LOOKUP_TIMEOUT", 5*time.Second),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultOrigins)),
	}
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.RateLookupTimeout <= 0 {
		return fmt.Errorf("RATE_LOOKUP_TIMEOUT must be positive")
	}
	if strings.TrimSpace(c.NBUBaseURL) == "" {
		return fmt.Errorf("NBU_BASE_URL must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger.L.Warn("Invalid duration, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
