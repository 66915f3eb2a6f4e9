package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port       int
	DBPath     string
	FeederAddr string

	// Recorder
	PollIntervalMs int
	StopButton     string

	// Engine policy for unknown action types: "skip" or "reject"
	UnknownActionPolicy string
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	return &Config{
		Port:                getEnvAsInt("PORT", 5000),
		DBPath:              getEnv("DB_PATH", "./data/padcontrol.db"),
		FeederAddr:          getEnv("FEEDER_ADDR", "127.0.0.1:27200"),
		PollIntervalMs:      getEnvAsInt("POLL_INTERVAL_MS", 16),
		StopButton:          getEnv("STOP_BUTTON", "view"),
		UnknownActionPolicy: getEnv("UNKNOWN_ACTION_POLICY", "skip"),
	}
}

// getEnv gets environment variable with fallback default
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsInt gets an integer environment variable with fallback default
func getEnvAsInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
