package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Pagination
	DefaultPageSize int
	MaxPageSize     int

	// CORS
	CORSOrigins []string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "expensetracker"),
		DBPassword: getEnv("DB_PASSWORD", "expensetracker"),
		DBName:     getEnv("DB_NAME", "expensetracker"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Pagination
		DefaultPageSize: getEnvInt("PAGINATION_SIZE", 20),
		MaxPageSize:     getEnvInt("MAX_PAGE_SIZE", 100),

		// CORS
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
