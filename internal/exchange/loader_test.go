package exchange_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PxPatel/crypto-fulfillment/internal/exchange"
)

const exchangeFixture = `{
  "id": "exchange-01",
  "available_funds": {"crypto": "10", "fiat": "10000"},
  "order_book": {
    "asks": [
      {"id": "7b1c1f5e-0001-4a5e-9c1d-000000000001", "time": "2024-01-15T09:00:00Z", "quantity": "2", "price": "3300"},
      {"id": "7b1c1f5e-0002-4a5e-9c1d-000000000002", "time": "2024-01-15T09:00:01Z", "quantity": "1", "price": "3000"},
      {"id": "7b1c1f5e-0003-4a5e-9c1d-000000000003", "time": "2024-01-15T09:00:02Z", "quantity": "100", "price": "3100"}
    ],
    "bids": [
      {"id": "7b1c1f5e-0004-4a5e-9c1d-000000000004", "time": "2024-01-15T09:00:03Z", "quantity": "1", "price": "2800"},
      {"id": "7b1c1f5e-0005-4a5e-9c1d-000000000005", "time": "2024-01-15T09:00:04Z", "quantity": "2", "price": "2900"},
      {"id": "7b1c1f5e-0006-4a5e-9c1d-000000000006", "time": "2024-01-15T09:00:05Z", "quantity": "50", "price": "2950"}
    ]
  }
}`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_SortsAndFilters(t *testing.T) {
	path := writeFixture(t, "exchange-01.json", exchangeFixture)

	exch, err := exchange.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "exchange-01", exch.ID)

	// The 100 @ 3100 ask costs more fiat than the exchange holds and is
	// dropped; the rest come back cheapest first.
	require.Len(t, exch.OrderBook.Asks, 2)
	assert.True(t, exch.OrderBook.Asks[0].Price.Equal(dec("3000")))
	assert.True(t, exch.OrderBook.Asks[1].Price.Equal(dec("3300")))

	// The 50-unit bid exceeds the crypto balance and is dropped; the rest
	// come back highest first.
	require.Len(t, exch.OrderBook.Bids, 2)
	assert.True(t, exch.OrderBook.Bids[0].Price.Equal(dec("2900")))
	assert.True(t, exch.OrderBook.Bids[1].Price.Equal(dec("2800")))
}

func TestLoadFile_MissingID(t *testing.T) {
	path := writeFixture(t, "bad.json", `{"available_funds": {"crypto": "1", "fiat": "1"}}`)

	_, err := exchange.LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	path := writeFixture(t, "broken.json", `{"id": "exchange-01"`)

	_, err := exchange.LoadFile(path)
	assert.Error(t, err)
}

func TestLoadAll_KeepsFileOrder(t *testing.T) {
	first := writeFixture(t, "exchange-01.json", exchangeFixture)
	second := writeFixture(t, "exchange-02.json",
		`{"id": "exchange-02", "available_funds": {"crypto": "5", "fiat": "5000"}, "order_book": {"asks": [], "bids": []}}`)

	service, err := exchange.LoadAll(first + ", " + second)
	require.NoError(t, err)

	all := service.GetExchanges()
	require.Len(t, all, 2)
	assert.Equal(t, "exchange-01", all[0].ID)
	assert.Equal(t, "exchange-02", all[1].ID)
}

func TestLoadAll_PropagatesMissingFile(t *testing.T) {
	_, err := exchange.LoadAll(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
