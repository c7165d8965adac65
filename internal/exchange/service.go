package exchange

import (
	"sync"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// Service provides exchange state to the fulfillment path. Snapshot is the
// read the engine uses: a point-in-time deep copy that later updates cannot
// touch.
type Service interface {
	GetExchange(id string) (*types.Exchange, bool)
	GetExchanges() []*types.Exchange
	UpdateExchange(exch *types.Exchange)
	Snapshot() []*types.Exchange
}

// InMemoryService keeps loaded exchanges in a mutex-guarded map. Insertion
// order is preserved so candidate tie-breaking stays deterministic across
// calls.
type InMemoryService struct {
	mu        sync.RWMutex
	exchanges map[string]*types.Exchange
	order     []string
}

func NewInMemoryService() *InMemoryService {
	return &InMemoryService{
		exchanges: make(map[string]*types.Exchange),
	}
}

// UpdateExchange inserts or replaces one exchange. Replacing keeps the
// exchange's original position in the iteration order.
func (s *InMemoryService) UpdateExchange(exch *types.Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.exchanges[exch.ID]; !exists {
		s.order = append(s.order, exch.ID)
	}
	s.exchanges[exch.ID] = exch
}

func (s *InMemoryService) GetExchange(id string) (*types.Exchange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exch, ok := s.exchanges[id]
	return exch, ok
}

// GetExchanges returns the live exchange values in insertion order. Callers
// that feed the engine should use Snapshot instead.
func (s *InMemoryService) GetExchanges() []*types.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Exchange, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.exchanges[id])
	}
	return out
}

// Snapshot returns deep copies of every exchange in insertion order, so one
// match call sees a consistent frozen view regardless of concurrent updates.
func (s *InMemoryService) Snapshot() []*types.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Exchange, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.exchanges[id].Clone())
	}
	return out
}
