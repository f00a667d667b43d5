package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shareit-rentals/service-booking/pkg/config"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	Storage     string
	DBConfig    config.DatabaseConfig
	KafkaConfig config.KafkaConfig
	// UserCacheTTL bounds how long user existence lookups are cached.
	// Zero disables the cache.
	UserCacheTTL time.Duration
}

// Load reads configuration from environment variables prefixed with SHAREIT_.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("SHAREIT")
	if err != nil {
		return nil, err
	}
	v.SetDefault("DB_NAME", "shareit_booking")
	v.SetDefault("STORAGE", StoragePostgres)

	storage := strings.ToLower(strings.TrimSpace(v.GetString("STORAGE")))
	if storage != StorageMemory && storage != StoragePostgres {
		return nil, fmt.Errorf("invalid SHAREIT_STORAGE %q: want %q or %q", storage, StorageMemory, StoragePostgres)
	}

	return &ServiceConfig{
		Port:         config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:       config.GetAppEnv(v),
		Storage:      storage,
		DBConfig:     config.LoadDatabaseConfig(v, "DB_NAME"),
		KafkaConfig:  config.LoadKafkaConfig(v),
		UserCacheTTL: config.GetDuration(v, "USER_CACHE_TTL", time.Minute),
	}, nil
}

// ConsumerGroup returns the consumer group id for the given consumer name.
func (c *ServiceConfig) ConsumerGroup(name string) string {
	return c.KafkaConfig.GroupPrefix + "booking-" + name
}
