package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// PostgresTransactionStore implements TransactionStore using PostgreSQL.
// Decimal columns travel as text in both directions so no precision is lost
// between NUMERIC and decimal.Decimal.
type PostgresTransactionStore struct {
	pool *pgxpool.Pool
}

// NewPostgresTransactionStore creates a new PostgreSQL-backed transaction
// store and runs migrations
func NewPostgresTransactionStore(cfg PostgresConfig) (*PostgresTransactionStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPostgresPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &PostgresTransactionStore{pool: pool}, nil
}

func (s *PostgresTransactionStore) Save(txn *types.Transaction) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fills, err := json.Marshal(txn.Fills)
	if err != nil {
		return err
	}
	quantityUsed, err := json.Marshal(txn.ExchangeQuantityUsed)
	if err != nil {
		return err
	}
	costUsed, err := json.Marshal(txn.ExchangeCostUsed)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (transaction_id, side, filled_quantity, total_cost,
			unfulfilled_quantity, fills, exchange_quantity_used, exchange_cost_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (transaction_id) DO NOTHING
	`

	_, err = s.pool.Exec(ctx, query,
		txn.ID, txn.Side.String(), txn.FilledQuantity.String(), txn.TotalCost.String(),
		txn.UnfulfilledQuantity.String(), fills, quantityUsed, costUsed, txn.CreatedAt,
	)

	return err
}

func (s *PostgresTransactionStore) Get(id uuid.UUID) (*types.Transaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `
		SELECT transaction_id, side, filled_quantity::text, total_cost::text,
			unfulfilled_quantity::text, fills, exchange_quantity_used, exchange_cost_used, created_at
		FROM transactions
		WHERE transaction_id = $1
	`

	txn, err := scanTransaction(s.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("transaction %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *PostgresTransactionStore) GetRecent(limit int) ([]*types.Transaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT transaction_id, side, filled_quantity::text, total_cost::text,
			unfulfilled_quantity::text, fills, exchange_quantity_used, exchange_cost_used, created_at
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*types.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			continue
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func (s *PostgresTransactionStore) Close() error {
	s.pool.Close()
	return nil
}

// scanTransaction reads one row regardless of whether it came from QueryRow
// or Query
func scanTransaction(row pgx.Row) (*types.Transaction, error) {
	var (
		txn          types.Transaction
		side         string
		filled       string
		totalCost    string
		unfulfilled  string
		fills        []byte
		quantityUsed []byte
		costUsed     []byte
	)

	err := row.Scan(&txn.ID, &side, &filled, &totalCost, &unfulfilled,
		&fills, &quantityUsed, &costUsed, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	txn.Side = types.ParseSide(side)
	if txn.FilledQuantity, err = decimal.NewFromString(filled); err != nil {
		return nil, err
	}
	if txn.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
		return nil, err
	}
	if txn.UnfulfilledQuantity, err = decimal.NewFromString(unfulfilled); err != nil {
		return nil, err
	}
	if err = json.Unmarshal(fills, &txn.Fills); err != nil {
		return nil, err
	}
	if err = json.Unmarshal(quantityUsed, &txn.ExchangeQuantityUsed); err != nil {
		return nil, err
	}
	if err = json.Unmarshal(costUsed, &txn.ExchangeCostUsed); err != nil {
		return nil, err
	}

	return &txn, nil
}
