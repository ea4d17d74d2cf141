package config

import (
	"os"
)

type Config struct {
	ServerPort  string
	DatabaseURL string
	TuningFile  string
	MLEndpoint  string
}

func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8000"),
		DatabaseURL: getEnv("DATABASE_URL", "./vibeshield.db"),
		TuningFile:  getEnv("TUNING_FILE", ""),
		MLEndpoint:  getEnv("ML_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
