// Package config loads daemon configuration. Local mode reads
// ~/.crucible/config.yaml with environment overrides; server mode adds
// PostgreSQL and RabbitMQ endpoints from the environment.
package config

import (
	"os"
	"strconv"
)

// ServerConfig holds settings for running against shared infrastructure.
type ServerConfig struct {
	DatabaseURL string
	RabbitMQURL string
}

// LoadServer reads server-mode configuration from environment variables.
// Both settings are optional: an empty DatabaseURL keeps the roster on
// local storage and an empty RabbitMQURL disables event publishing.
func LoadServer() *ServerConfig {
	return &ServerConfig{
		DatabaseURL: getEnv("CRUCIBLE_DATABASE_URL", ""),
		RabbitMQURL: getEnv("CRUCIBLE_RABBITMQ_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
