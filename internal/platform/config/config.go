package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration for the feed service
type Config struct {
	Server        ServerConfig        `json:"server"`
	Database      DatabaseConfig      `json:"database"`
	JWT           JWTConfig           `json:"jwt"`
	Cache         CacheConfig         `json:"cache"`
	Notifications NotificationsConfig `json:"notifications"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	BaseRoute string `json:"baseRoute"`
	Debug     bool   `json:"debug"`
	RateLimit bool   `json:"rateLimit"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Type        string           `json:"type"`
	Postgres    PostgreSQLConfig `json:"postgres"`
	AutoMigrate bool             `json:"autoMigrate"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	Schema          string        `json:"schema"`
	SSLMode         string        `json:"sslMode"`
	ConnectTimeout  int           `json:"connectTimeout"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
}

// JWTConfig holds the key used to verify access tokens
type JWTConfig struct {
	PublicKey string `json:"publicKey"`
	ClaimKey  string `json:"claimKey"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled bool          `json:"enabled"`
	Backend string        `json:"backend"`
	Prefix  string        `json:"prefix"`
	TTL     time.Duration `json:"ttl"`
	Redis   RedisConfig   `json:"redis"`
}

// RedisConfig holds Redis connection settings shared by the cache and the
// redis notification backend
type RedisConfig struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	PoolSize int    `json:"poolSize"`
}

// NotificationsConfig selects and configures the notification dispatcher
type NotificationsConfig struct {
	Backend      string `json:"backend"`
	RedisChannel string `json:"redisChannel"`
	AMQPURL      string `json:"amqpUrl"`
	AMQPQueue    string `json:"amqpQueue"`
}

// Supported backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	NotificationsBackendLog   = "log"
	NotificationsBackendRedis = "redis"
	NotificationsBackendAMQP  = "amqp"
	NotificationsBackendNone  = "none"
)

// LoadFromEnv loads configuration from the environment.
// Explicit environment variables win over values from a .env file, which win
// over the defaults below.
func LoadFromEnv() (*Config, error) {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	var loadErr error
	for _, envPath := range envPaths {
		loadErr = godotenv.Load(envPath)
		if loadErr == nil {
			break
		}
	}
	if loadErr != nil {
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	cfg := build(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadFromMap loads configuration from an in-memory map.
// Used by tests to exercise configuration without touching the process env.
func LoadFromMap(envMap map[string]string) (*Config, error) {
	cfg := build(func(key string) (string, bool) {
		v, ok := envMap[key]
		return v, ok
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func build(lookup lookupFunc) *Config {
	env := envReader{lookup: lookup}

	return &Config{
		Server: ServerConfig{
			Host:      env.str("HOST", "localhost"),
			Port:      env.int("SERVER_PORT", 8080),
			BaseRoute: env.str("BASE_ROUTE", "/api"),
			Debug:     env.bool("DEBUG", false),
			RateLimit: env.bool("RATE_LIMIT_ENABLED", true),
		},
		Database: DatabaseConfig{
			Type:        env.str("DB_TYPE", "postgresql"),
			AutoMigrate: env.bool("POSTGRES_AUTO_MIGRATE", false),
			Postgres: PostgreSQLConfig{
				Host:            env.str("POSTGRES_HOST", "localhost"),
				Port:            env.int("POSTGRES_PORT", 5432),
				Username:        env.str("POSTGRES_USERNAME", ""),
				Password:        env.str("POSTGRES_PASSWORD", ""),
				Database:        env.str("POSTGRES_DATABASE", "telar_feed"),
				Schema:          env.str("POSTGRES_SCHEMA", ""),
				SSLMode:         env.str("POSTGRES_SSL_MODE", "disable"),
				ConnectTimeout:  env.int("POSTGRES_CONNECT_TIMEOUT", 10),
				MaxOpenConns:    env.int("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    env.int("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: time.Duration(env.int("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
			},
		},
		JWT: JWTConfig{
			PublicKey: env.str("JWT_PUBLIC_KEY", ""),
			ClaimKey:  env.str("JWT_CLAIM_KEY", "claim"),
		},
		Cache: CacheConfig{
			Enabled: env.bool("CACHE_ENABLED", true),
			Backend: env.str("CACHE_BACKEND", CacheBackendMemory),
			Prefix:  env.str("CACHE_PREFIX", "feed:"),
			TTL:     env.duration("CACHE_TTL", 5*time.Minute),
			Redis: RedisConfig{
				Address:  env.str("REDIS_ADDRESS", "localhost:6379"),
				Password: env.str("REDIS_PASSWORD", ""),
				DB:       env.int("REDIS_DB", 0),
				PoolSize: env.int("REDIS_POOL_SIZE", 10),
			},
		},
		Notifications: NotificationsConfig{
			Backend:      env.str("NOTIFICATIONS_BACKEND", NotificationsBackendLog),
			RedisChannel: env.str("NOTIFICATIONS_REDIS_CHANNEL", "notifications"),
			AMQPURL:      env.str("NOTIFICATIONS_AMQP_URL", ""),
			AMQPQueue:    env.str("NOTIFICATIONS_AMQP_QUEUE", "notifications.queue"),
		},
	}
}

// Validate validates the configuration for required fields
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.JWT.PublicKey) == "" {
		errors = append(errors, "JWT_PUBLIC_KEY is required")
	}

	validDbTypes := []string{"postgresql"}
	if !contains(validDbTypes, c.Database.Type) {
		errors = append(errors, fmt.Sprintf("DB_TYPE must be one of: %s", strings.Join(validDbTypes, ", ")))
	}

	if c.Database.Postgres.Port <= 0 {
		errors = append(errors, "POSTGRES_PORT must be positive")
	}

	validCacheBackends := []string{CacheBackendMemory, CacheBackendRedis}
	if c.Cache.Enabled && !contains(validCacheBackends, c.Cache.Backend) {
		errors = append(errors, fmt.Sprintf("CACHE_BACKEND must be one of: %s", strings.Join(validCacheBackends, ", ")))
	}

	validNotificationBackends := []string{
		NotificationsBackendLog,
		NotificationsBackendRedis,
		NotificationsBackendAMQP,
		NotificationsBackendNone,
	}
	if !contains(validNotificationBackends, c.Notifications.Backend) {
		errors = append(errors, fmt.Sprintf("NOTIFICATIONS_BACKEND must be one of: %s", strings.Join(validNotificationBackends, ", ")))
	}
	if c.Notifications.Backend == NotificationsBackendAMQP && strings.TrimSpace(c.Notifications.AMQPURL) == "" {
		errors = append(errors, "NOTIFICATIONS_AMQP_URL is required for the amqp backend")
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// envReader reads typed values with defaults. Unparseable values fall back
// to the default.
type envReader struct {
	lookup lookupFunc
}

func (e envReader) str(key, defaultValue string) string {
	if value, ok := e.lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) int(key string, defaultValue int) int {
	if value, ok := e.lookup(key); ok && value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e envReader) bool(key string, defaultValue bool) bool {
	if value, ok := e.lookup(key); ok && value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := e.lookup(key); ok && value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
