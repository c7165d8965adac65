package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// InMemoryTransactionStore implements TransactionStore using an in-memory map
// with FIFO eviction. Thread-safe for concurrent access via RWMutex.
// When maxSize is reached, oldest transactions are evicted to maintain the
// size limit.
type InMemoryTransactionStore struct {
	transactions map[uuid.UUID]*types.Transaction
	ids          []uuid.UUID // FIFO queue for eviction
	maxSize      int
	mutex        sync.RWMutex
}

// NewInMemoryTransactionStore creates a new in-memory transaction store with
// a size limit
func NewInMemoryTransactionStore(maxSize int) *InMemoryTransactionStore {
	return &InMemoryTransactionStore{
		transactions: make(map[uuid.UUID]*types.Transaction),
		ids:          make([]uuid.UUID, 0, maxSize),
		maxSize:      maxSize,
	}
}

func (s *InMemoryTransactionStore) Save(txn *types.Transaction) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.transactions[txn.ID]; !exists {
		s.ids = append(s.ids, txn.ID)

		// Evict oldest transaction if size limit exceeded
		if len(s.ids) > s.maxSize {
			oldestID := s.ids[0]
			delete(s.transactions, oldestID)
			s.ids = s.ids[1:]
		}
	}

	s.transactions[txn.ID] = txn
	return nil
}

func (s *InMemoryTransactionStore) Get(id uuid.UUID) (*types.Transaction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	txn, exists := s.transactions[id]
	if !exists {
		return nil, fmt.Errorf("transaction %s not found", id)
	}
	return txn, nil
}

func (s *InMemoryTransactionStore) GetRecent(limit int) ([]*types.Transaction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if limit <= 0 || limit > len(s.ids) {
		limit = len(s.ids)
	}

	// Newest first: walk the FIFO queue backwards
	out := make([]*types.Transaction, 0, limit)
	for i := len(s.ids) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.transactions[s.ids[i]])
	}
	return out, nil
}

func (s *InMemoryTransactionStore) Close() error {
	// No cleanup needed for in-memory store
	return nil
}
