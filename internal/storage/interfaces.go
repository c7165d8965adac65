package storage

import (
	"github.com/google/uuid"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// TransactionStore abstracts fill-report persistence.
// Implementations can be in-memory buffer, file log, Redis, PostgreSQL, etc.
type TransactionStore interface {
	// Save persists a completed transaction
	Save(txn *types.Transaction) error

	// Get retrieves a transaction by its identifier
	Get(id uuid.UUID) (*types.Transaction, error)

	// GetRecent retrieves the N most recent transactions, newest first
	GetRecent(limit int) ([]*types.Transaction, error)

	// Close releases any resources held by the store
	Close() error
}
