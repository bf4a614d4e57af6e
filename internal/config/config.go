package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// randomuser.me source configuration.
	RandomUserURL     string
	RandomUserResults int
	RandomUserTimeout time.Duration

	CORSAllowedOrigins []string

	// Optional Kafka export of each loaded batch.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	timeoutStr := sharedcfg.EnvOrDefault("RANDOMUSER_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid RANDOMUSER_TIMEOUT")
	}

	results, err := parseResults()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		RandomUserURL:     sharedcfg.EnvOrDefault("RANDOMUSER_URL", "https://randomuser.me/api/"),
		RandomUserResults: results,
		RandomUserTimeout: timeout,

		CORSAllowedOrigins: splitList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: splitList(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "user-locations"),
	}

	if cfg.RandomUserURL == "" {
		return nil, errors.New("RANDOMUSER_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

// parseResults reads RANDOMUSER_RESULTS. The API caps a single request at 5000 results.
func parseResults() (int, error) {
	s := sharedcfg.EnvOrDefault("RANDOMUSER_RESULTS", "20")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 5000 {
		return 0, errors.New("invalid RANDOMUSER_RESULTS: must be between 1 and 5000")
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadDotEnv loads variables from the given files, or .env in the working
// directory when none are named. Existing variables are not overridden and a
// missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
