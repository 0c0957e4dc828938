package config

import (
	"os"
	"strconv"
	"strings"
)

// KafkaConfig holds Kafka connection parameters for event publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config holds the engine's runtime configuration.
type Config struct {
	LogLevel  string
	LogFormat string

	// BatchSize bounds how many loans a staging run classifies per
	// iteration, so a host scheduler can interleave large snapshots with
	// other work.
	BatchSize int

	Kafka       KafkaConfig
	ServiceName string
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		BatchSize: getEnvInt("ENGINE_BATCH_SIZE", 1000),
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("EVENTS_TOPIC", "provisioning.events"),
		},
		ServiceName: "provisioning-engine",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
