package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Exchange ExchangeConfig
	API      APIConfig
	Logger   LoggerConfig
	Memory   MemoryConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Audit    AuditConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ExchangeConfig holds exchange snapshot loading configuration
type ExchangeConfig struct {
	// DataPaths is a comma-separated list of exchange JSON files
	DataPaths string
}

// APIConfig holds API-specific configuration
type APIConfig struct {
	DefaultTransactionLimit int
	MaxTransactionLimit     int
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level string // DEBUG, INFO, WARN, ERROR
}

// MemoryConfig holds in-memory storage configuration
type MemoryConfig struct {
	Enabled         bool
	MaxTransactions int
}

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	MaxConns int
	MinConns int
	SSLMode  string
}

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	Enabled         bool
	Host            string
	Port            int
	Password        string
	DB              int
	MaxRetries      int
	PoolSize        int
	MinIdleConns    int
	TLSEnabled      bool
	TransactionTTL  time.Duration
	MaxTransactions int
}

// AuditConfig holds the append-only transaction log configuration
type AuditConfig struct {
	Enabled            bool
	TransactionLogPath string
}

var instance *Config

// Load loads configuration from .env file (if exists) and environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Exchange: ExchangeConfig{
			DataPaths: getEnv("EXCHANGE_DATA_PATHS",
				"exchanges/exchange-01.json,exchanges/exchange-02.json,exchanges/exchange-03.json"),
		},
		API: APIConfig{
			DefaultTransactionLimit: getEnvInt("DEFAULT_TRANSACTION_LIMIT", 100),
			MaxTransactionLimit:     getEnvInt("MAX_TRANSACTION_LIMIT", 1000),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
		Memory: MemoryConfig{
			Enabled:         getEnvBool("MEMORY_ENABLED", true),
			MaxTransactions: getEnvInt("MEMORY_MAX_TRANSACTIONS", 1000),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvBool("DATABASE_ENABLED", false),
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnvInt("DATABASE_PORT", 5432),
			Name:     getEnv("DATABASE_NAME", "crypto_fulfillment"),
			User:     getEnv("DATABASE_USER", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", ""),
			MaxConns: getEnvInt("DATABASE_MAX_CONNECTIONS", 20),
			MinConns: getEnvInt("DATABASE_MIN_CONNECTIONS", 2),
			SSLMode:  getEnv("DATABASE_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:         getEnvBool("REDIS_ENABLED", false),
			Host:            getEnv("REDIS_HOST", "localhost"),
			Port:            getEnvInt("REDIS_PORT", 6379),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvInt("REDIS_DB", 0),
			MaxRetries:      getEnvInt("REDIS_MAX_RETRIES", 3),
			PoolSize:        getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns:    getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			TLSEnabled:      getEnvBool("REDIS_TLS_ENABLED", false),
			TransactionTTL:  getEnvDuration("REDIS_TRANSACTION_TTL", 24*time.Hour),
			MaxTransactions: getEnvInt("REDIS_MAX_TRANSACTIONS", 10000),
		},
		Audit: AuditConfig{
			Enabled:            getEnvBool("AUDIT_LOG_ENABLED", true),
			TransactionLogPath: getEnv("TRANSACTION_LOG_PATH", "transactions.log"),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	instance = cfg
	return cfg, nil
}

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not loaded - call config.Load() first")
	}
	return instance
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	// Validate exchange config
	if c.Exchange.DataPaths == "" {
		return fmt.Errorf("EXCHANGE_DATA_PATHS cannot be empty")
	}

	// Validate API config
	if c.API.DefaultTransactionLimit < 1 {
		return fmt.Errorf("DEFAULT_TRANSACTION_LIMIT must be > 0")
	}
	if c.API.MaxTransactionLimit < c.API.DefaultTransactionLimit {
		return fmt.Errorf("MAX_TRANSACTION_LIMIT must be >= DEFAULT_TRANSACTION_LIMIT")
	}

	// Validate storage config
	if c.Memory.Enabled && c.Memory.MaxTransactions < 1 {
		return fmt.Errorf("MEMORY_MAX_TRANSACTIONS must be > 0")
	}
	if c.Audit.Enabled && c.Audit.TransactionLogPath == "" {
		return fmt.Errorf("TRANSACTION_LOG_PATH cannot be empty")
	}

	// Validate logger config
	validLevels := map[string]bool{"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: DEBUG, INFO, WARN, ERROR")
	}

	return nil
}

// Helper functions to read environment variables with defaults

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
