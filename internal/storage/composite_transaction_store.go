package storage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// CompositeTransactionStore fans writes out to every configured backend and
// serves reads from the first backend that answers. Backends are ordered
// fastest first (memory, then Redis, then PostgreSQL, then the file log), so
// reads normally never leave memory.
type CompositeTransactionStore struct {
	stores []TransactionStore
}

// NewCompositeTransactionStore creates a composite over the given backends.
// At least one backend is required.
func NewCompositeTransactionStore(stores ...TransactionStore) (*CompositeTransactionStore, error) {
	if len(stores) == 0 {
		return nil, fmt.Errorf("composite transaction store needs at least one backend")
	}
	return &CompositeTransactionStore{stores: stores}, nil
}

// Save writes through to every backend. A failing backend does not stop the
// others; the joined error reports every failure.
func (s *CompositeTransactionStore) Save(txn *types.Transaction) error {
	var errs []error
	for _, store := range s.stores {
		if err := store.Save(txn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get asks each backend in order and returns the first hit.
func (s *CompositeTransactionStore) Get(id uuid.UUID) (*types.Transaction, error) {
	var lastErr error
	for _, store := range s.stores {
		txn, err := store.Get(id)
		if err == nil {
			return txn, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// GetRecent returns the first backend's non-empty answer, falling through on
// errors and empty results so a cold cache does not hide history held deeper
// in the stack.
func (s *CompositeTransactionStore) GetRecent(limit int) ([]*types.Transaction, error) {
	var lastErr error
	for _, store := range s.stores {
		txns, err := store.GetRecent(limit)
		if err != nil {
			lastErr = err
			continue
		}
		if len(txns) > 0 {
			return txns, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return []*types.Transaction{}, nil
}

// Close closes every backend, reporting all failures.
func (s *CompositeTransactionStore) Close() error {
	var errs []error
	for _, store := range s.stores {
		if err := store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
