package memory_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PxPatel/crypto-fulfillment/internal/storage/memory"
	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

func testTransaction(filled string) *types.Transaction {
	order := types.NewIncomingOrder(types.Buy, decimal.RequireFromString("10"), decimal.RequireFromString("3000"))
	txn := types.NewTransaction(order)
	txn.AddFill(types.FillLine{
		OrderID:               uuid.New(),
		QuantityTaken:         decimal.RequireFromString(filled),
		CostPaid:              decimal.RequireFromString(filled).Mul(decimal.RequireFromString("3000")),
		OrderOriginalQuantity: decimal.RequireFromString(filled),
		Price:                 decimal.RequireFromString("3000"),
		ExchangeID:            "exchange-01",
	})
	return txn
}

func TestInMemoryTransactionStore_SaveAndGet(t *testing.T) {
	store := memory.NewInMemoryTransactionStore(10)
	txn := testTransaction("2")

	require.NoError(t, store.Save(txn))

	got, err := store.Get(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, got.ID)
	assert.True(t, got.FilledQuantity.Equal(txn.FilledQuantity))
}

func TestInMemoryTransactionStore_GetMissing(t *testing.T) {
	store := memory.NewInMemoryTransactionStore(10)

	_, err := store.Get(uuid.New())
	assert.Error(t, err)
}

func TestInMemoryTransactionStore_FIFOEviction(t *testing.T) {
	store := memory.NewInMemoryTransactionStore(2)

	first := testTransaction("1")
	second := testTransaction("2")
	third := testTransaction("3")
	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))
	require.NoError(t, store.Save(third))

	_, err := store.Get(first.ID)
	assert.Error(t, err, "oldest transaction should be evicted")

	_, err = store.Get(second.ID)
	assert.NoError(t, err)
	_, err = store.Get(third.ID)
	assert.NoError(t, err)
}

func TestInMemoryTransactionStore_ResaveDoesNotDuplicate(t *testing.T) {
	store := memory.NewInMemoryTransactionStore(10)
	txn := testTransaction("1")

	require.NoError(t, store.Save(txn))
	require.NoError(t, store.Save(txn))

	recent, err := store.GetRecent(0)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestInMemoryTransactionStore_GetRecentNewestFirst(t *testing.T) {
	store := memory.NewInMemoryTransactionStore(10)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		txn := testTransaction(fmt.Sprintf("%d", i+1))
		txn.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, store.Save(txn))
		ids = append(ids, txn.ID)
	}

	recent, err := store.GetRecent(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, ids[4], recent[0].ID)
	assert.Equal(t, ids[3], recent[1].ID)
	assert.Equal(t, ids[2], recent[2].ID)
}
