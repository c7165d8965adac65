package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

const (
	transactionKeyPrefix = "transaction:"
	timelineKey          = "transactions:recent"
)

// RedisTransactionStore implements TransactionStore using per-transaction
// keys for lookups plus a sorted-set timeline with FIFO trimming for recency
// queries.
type RedisTransactionStore struct {
	client          *redis.Client
	ttl             time.Duration
	maxTransactions int
}

// NewRedisTransactionStore creates a new Redis-backed transaction store
func NewRedisTransactionStore(cfg RedisConfig) (*RedisTransactionStore, error) {
	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &RedisTransactionStore{
		client:          client,
		ttl:             cfg.TransactionTTL,
		maxTransactions: cfg.MaxTransactions,
	}, nil
}

func (s *RedisTransactionStore) Save(txn *types.Transaction) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := json.Marshal(txn)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()

	pipe.Set(ctx, transactionKey(txn.ID), data, s.ttl)

	// Timeline holds IDs only (score = creation time in unix nanoseconds)
	pipe.ZAdd(ctx, timelineKey, redis.Z{
		Score:  float64(txn.CreatedAt.UnixNano()),
		Member: txn.ID.String(),
	})

	// Trim to keep only the last N transactions
	pipe.ZRemRangeByRank(ctx, timelineKey, 0, int64(-s.maxTransactions-1))

	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisTransactionStore) Get(id uuid.UUID) (*types.Transaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, transactionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("transaction %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	var txn types.Transaction
	if err := json.Unmarshal(data, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *RedisTransactionStore) GetRecent(limit int) ([]*types.Transaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}

	ids, err := s.client.ZRevRange(ctx, timelineKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*types.Transaction{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = transactionKeyPrefix + id
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	txns := make([]*types.Transaction, 0, len(values))
	for _, value := range values {
		// Expired keys come back nil even while the timeline remembers them
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var txn types.Transaction
		if err := json.Unmarshal([]byte(raw), &txn); err != nil {
			continue
		}
		txns = append(txns, &txn)
	}

	return txns, nil
}

func (s *RedisTransactionStore) Close() error {
	return s.client.Close()
}

func transactionKey(id uuid.UUID) string {
	return transactionKeyPrefix + id.String()
}
