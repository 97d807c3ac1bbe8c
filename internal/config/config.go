package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	AppPort string

	// Remote order platform
	PlatformBaseURL string
	PlatformTimeout time.Duration

	// Local sales journal
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Terminal session tokens
	JWTSecret string

	LowStockThreshold int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:            os.Getenv("APP_ENV"),
		AppPort:           getenv("APP_PORT", "8085"),
		PlatformBaseURL:   os.Getenv("PLATFORM_BASE_URL"),
		PlatformTimeout:   durationEnv("PLATFORM_TIMEOUT", 15*time.Second),
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            getenv("DB_PORT", "5432"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		LowStockThreshold: intEnv("LOW_STOCK_THRESHOLD", 10),
	}

	if cfg.PlatformBaseURL == "" {
		log.Fatal("PLATFORM_BASE_URL is not set")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}
