package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Events   EventsConfig
	Overview OverviewConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
	// QueryTimeout bounds every storage call made by a service operation.
	QueryTimeout        time.Duration
	OrphanRetryAttempts int
	OrphanRetryBackoff  time.Duration
}

type EventsConfig struct {
	ChangeTopic  string // in-process watermill topic
	NatsEnabled  bool
	NatsURL      string
	RedisEnabled bool
	RedisURL     string
}

type OverviewConfig struct {
	CacheTTL    time.Duration // zero disables the snapshot cache
	Concurrency int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection:          getEnv("DB_CONNECTION_STRING", ""),
			QueryTimeout:        getEnvAsDuration("DB_QUERY_TIMEOUT", 5*time.Second),
			OrphanRetryAttempts: getEnvAsInt("ORPHAN_RETRY_ATTEMPTS", 3),
			OrphanRetryBackoff:  getEnvAsDuration("ORPHAN_RETRY_BACKOFF", 200*time.Millisecond),
		},
		Events: EventsConfig{
			ChangeTopic:  getEnv("CHANGE_TOPIC", "NOTE_CHANGES"),
			NatsEnabled:  getEnvAsBool("NATS_ENABLED", false),
			NatsURL:      getEnv("NATS_URL", "nats://localhost:4222"),
			RedisEnabled: getEnvAsBool("REDIS_ENABLED", false),
			RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Overview: OverviewConfig{
			CacheTTL:    getEnvAsDuration("OVERVIEW_CACHE_TTL", 30*time.Second),
			Concurrency: getEnvAsInt("OVERVIEW_CONCURRENCY", 4),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
