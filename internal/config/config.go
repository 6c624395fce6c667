package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Invite    InviteConfig
	Benchmark BenchmarkConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// InviteConfig holds invitation token configuration.
// FernetKey must be a base64-encoded 32-byte fernet key; TTLHours bounds
// how long an issued invitation token stays acceptable.
type InviteConfig struct {
	FernetKey string
	TTLHours  int
}

// BenchmarkConfig holds benchmark series refresh configuration.
// Schedule is a cron expression for the background refresh job; Symbols
// lists the market benchmarks kept in the local cache.
type BenchmarkConfig struct {
	Schedule string
	Symbols  []string
	BaseURL  string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/clarus.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Invite: InviteConfig{
			FernetKey: os.Getenv("INVITE_FERNET_KEY"),
			TTLHours:  72,
		},
		Benchmark: BenchmarkConfig{
			Schedule: getEnv("BENCHMARK_REFRESH_SCHEDULE", "0 6 * * *"),
			Symbols:  []string{"SPY"},
			BaseURL:  getEnv("MARKET_DATA_URL", "https://query1.finance.yahoo.com"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
