package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/PxPatel/crypto-fulfillment/config"
	"github.com/PxPatel/crypto-fulfillment/internal/api/handlers"
	"github.com/PxPatel/crypto-fulfillment/internal/api/logger"
	"github.com/PxPatel/crypto-fulfillment/internal/api/routes"
	"github.com/PxPatel/crypto-fulfillment/internal/exchange"
	"github.com/PxPatel/crypto-fulfillment/internal/fulfillment"
	"github.com/PxPatel/crypto-fulfillment/internal/storage"
	"github.com/PxPatel/crypto-fulfillment/internal/storage/file"
	"github.com/PxPatel/crypto-fulfillment/internal/storage/memory"
	"github.com/PxPatel/crypto-fulfillment/internal/storage/postgres"
	"github.com/PxPatel/crypto-fulfillment/internal/storage/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger with config
	logger.SetMinLevel(logger.ParseLevel(cfg.Logger.Level))

	logger.Info("Starting Crypto Fulfillment API Server", map[string]interface{}{
		"version": "1.0.0",
	})

	// Load exchange snapshots
	exchanges, err := exchange.LoadAll(cfg.Exchange.DataPaths)
	if err != nil {
		logger.Error("Failed to load exchange data", map[string]interface{}{
			"paths": cfg.Exchange.DataPaths,
			"error": err.Error(),
		})
		os.Exit(1)
	}
	logger.Info("Exchange data loaded", map[string]interface{}{
		"exchanges": len(exchanges.GetExchanges()),
	})

	// Build transaction storage based on configuration
	transactionStore := buildStorageLayers(cfg)
	defer func() {
		if err := transactionStore.Close(); err != nil {
			logger.Error("Failed to close transaction store", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Create fulfillment engine with an injected log sink
	engine := fulfillment.NewEngine(logger.NewLogger(logger.ParseLevel(cfg.Logger.Level)))

	// Create handler holder for dependency injection
	holder := handlers.NewHolder(engine, exchanges, transactionStore)

	// Setup routes with middleware
	handler := routes.SetupRoutes(holder)

	// Create HTTP server with config
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", map[string]interface{}{
			"port":    cfg.Server.Port,
			"address": fmt.Sprintf("http://localhost:%s", cfg.Server.Port),
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", map[string]interface{}{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	logger.Info("Server started successfully", map[string]interface{}{
		"port": cfg.Server.Port,
	})

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	logger.Info("Server exited successfully", nil)
}

// buildStorageLayers constructs the transaction storage based on
// configuration. Layers are ordered fastest first so composite reads rarely
// leave memory.
func buildStorageLayers(cfg *config.Config) storage.TransactionStore {
	var stores []storage.TransactionStore

	// L1: In-memory (fastest) - if enabled
	if cfg.Memory.Enabled {
		stores = append(stores, memory.NewInMemoryTransactionStore(cfg.Memory.MaxTransactions))
		logger.Info("In-memory storage layer enabled", map[string]interface{}{
			"max_transactions": cfg.Memory.MaxTransactions,
		})
	}

	// L2: Redis (distributed cache) - if enabled
	if cfg.Redis.Enabled {
		redisCfg := redis.RedisConfig{
			Host:            cfg.Redis.Host,
			Port:            cfg.Redis.Port,
			Password:        cfg.Redis.Password,
			DB:              cfg.Redis.DB,
			MaxRetries:      cfg.Redis.MaxRetries,
			PoolSize:        cfg.Redis.PoolSize,
			MinIdleConns:    cfg.Redis.MinIdleConns,
			TLSEnabled:      cfg.Redis.TLSEnabled,
			TransactionTTL:  cfg.Redis.TransactionTTL,
			MaxTransactions: cfg.Redis.MaxTransactions,
		}

		redisStore, err := redis.NewRedisTransactionStore(redisCfg)
		if err != nil {
			logger.Warn("Failed to connect to Redis, continuing without distributed cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			logger.Info("Redis cache connected successfully", map[string]interface{}{
				"host": cfg.Redis.Host,
				"port": cfg.Redis.Port,
			})
			stores = append(stores, redisStore)
		}
	}

	// L3: PostgreSQL (persistent storage) - if enabled
	if cfg.Database.Enabled {
		pgCfg := postgres.PostgresConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			Database: cfg.Database.Name,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
			SSLMode:  cfg.Database.SSLMode,
		}

		pgStore, err := postgres.NewPostgresTransactionStore(pgCfg)
		if err != nil {
			logger.Warn("Failed to connect to PostgreSQL, continuing without persistent storage", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			logger.Info("PostgreSQL connected successfully", map[string]interface{}{
				"host":     cfg.Database.Host,
				"database": cfg.Database.Name,
			})
			stores = append(stores, pgStore)
		}
	}

	// L4: File storage (audit log) - if enabled
	if cfg.Audit.Enabled {
		if fileStore, err := file.NewFileTransactionStore(cfg.Audit.TransactionLogPath); err == nil {
			stores = append(stores, fileStore)
			logger.Info("Transaction file log enabled", map[string]interface{}{
				"path": cfg.Audit.TransactionLogPath,
			})
		} else {
			logger.Warn("Failed to open transaction log", map[string]interface{}{
				"path":  cfg.Audit.TransactionLogPath,
				"error": err.Error(),
			})
		}
	}

	// Every layer disabled still needs somewhere to put transactions
	if len(stores) == 0 {
		logger.Warn("No storage layers enabled, falling back to in-memory", nil)
		stores = append(stores, memory.NewInMemoryTransactionStore(1000))
	}

	if len(stores) == 1 {
		return stores[0]
	}

	composite, err := storage.NewCompositeTransactionStore(stores...)
	if err != nil {
		logger.Error("Failed to build composite store", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	logger.Info("Storage layers initialized", map[string]interface{}{
		"layers": len(stores),
	})

	return composite
}
