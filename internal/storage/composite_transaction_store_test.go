package storage_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PxPatel/crypto-fulfillment/internal/storage"
	"github.com/PxPatel/crypto-fulfillment/internal/storage/memory"
	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// failingStore errors on every operation, standing in for an unreachable
// backend.
type failingStore struct{}

func (failingStore) Save(*types.Transaction) error { return fmt.Errorf("backend down") }
func (failingStore) Get(uuid.UUID) (*types.Transaction, error) {
	return nil, fmt.Errorf("backend down")
}
func (failingStore) GetRecent(int) ([]*types.Transaction, error) {
	return nil, fmt.Errorf("backend down")
}
func (failingStore) Close() error { return fmt.Errorf("backend down") }

func newTransaction(t *testing.T) *types.Transaction {
	t.Helper()
	order := types.NewIncomingOrder(types.Buy, decimal.NewFromInt(1), decimal.NewFromInt(5))
	txn := types.NewTransaction(order)
	txn.AddFill(types.FillLine{
		OrderID:               uuid.New(),
		QuantityTaken:         decimal.NewFromInt(1),
		CostPaid:              decimal.NewFromInt(5),
		OrderOriginalQuantity: decimal.NewFromInt(1),
		Price:                 decimal.NewFromInt(5),
		ExchangeID:            "exchange-01",
	})
	return txn
}

func TestCompositeTransactionStore_RequiresBackend(t *testing.T) {
	_, err := storage.NewCompositeTransactionStore()
	assert.Error(t, err)
}

func TestCompositeTransactionStore_WritesThroughAllBackends(t *testing.T) {
	first := memory.NewInMemoryTransactionStore(10)
	second := memory.NewInMemoryTransactionStore(10)
	composite, err := storage.NewCompositeTransactionStore(first, second)
	require.NoError(t, err)

	txn := newTransaction(t)
	require.NoError(t, composite.Save(txn))

	_, err = first.Get(txn.ID)
	assert.NoError(t, err)
	_, err = second.Get(txn.ID)
	assert.NoError(t, err)
}

func TestCompositeTransactionStore_SaveReportsBackendFailure(t *testing.T) {
	healthy := memory.NewInMemoryTransactionStore(10)
	composite, err := storage.NewCompositeTransactionStore(failingStore{}, healthy)
	require.NoError(t, err)

	txn := newTransaction(t)
	err = composite.Save(txn)
	assert.Error(t, err, "a failing backend must surface in the joined error")

	// The healthy backend still received the write
	_, err = healthy.Get(txn.ID)
	assert.NoError(t, err)
}

func TestCompositeTransactionStore_GetFallsThrough(t *testing.T) {
	deep := memory.NewInMemoryTransactionStore(10)
	composite, err := storage.NewCompositeTransactionStore(failingStore{}, deep)
	require.NoError(t, err)

	txn := newTransaction(t)
	require.NoError(t, deep.Save(txn))

	got, err := composite.Get(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, got.ID)
}

func TestCompositeTransactionStore_GetRecentSkipsEmptyBackends(t *testing.T) {
	cold := memory.NewInMemoryTransactionStore(10)
	warm := memory.NewInMemoryTransactionStore(10)
	composite, err := storage.NewCompositeTransactionStore(cold, warm)
	require.NoError(t, err)

	txn := newTransaction(t)
	require.NoError(t, warm.Save(txn))

	recent, err := composite.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, txn.ID, recent[0].ID)
}
