package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PxPatel/crypto-fulfillment/config"
	"github.com/PxPatel/crypto-fulfillment/internal/api/handlers"
	"github.com/PxPatel/crypto-fulfillment/internal/api/models"
	"github.com/PxPatel/crypto-fulfillment/internal/api/routes"
	"github.com/PxPatel/crypto-fulfillment/internal/exchange"
	"github.com/PxPatel/crypto-fulfillment/internal/fulfillment"
	"github.com/PxPatel/crypto-fulfillment/internal/storage/memory"
	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	_, err := config.Load()
	require.NoError(t, err)

	service := exchange.NewInMemoryService()
	service.UpdateExchange(&types.Exchange{
		ID: "exchange-01",
		AvailableFunds: types.AvailableFunds{
			Crypto: dec("10"),
			Fiat:   dec("1000000"),
		},
		OrderBook: types.OrderBook{
			Asks: []types.StandingOrder{
				{ID: uuid.New(), Time: time.Now().UTC(), Quantity: dec("2"), Price: dec("3000")},
				{ID: uuid.New(), Time: time.Now().UTC(), Quantity: dec("5"), Price: dec("3200")},
			},
			Bids: []types.StandingOrder{
				{ID: uuid.New(), Time: time.Now().UTC(), Quantity: dec("3"), Price: dec("2900")},
			},
		},
	})

	holder := handlers.NewHolder(
		fulfillment.NewEngine(nil),
		service,
		memory.NewInMemoryTransactionStore(100),
	)
	return routes.SetupRoutes(holder)
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSubmitOrder_BuyFilled(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/orders",
		`{"side": "buy", "quantity": "3", "price": "3200"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, "buy", resp.Transaction.Side)
	assert.Equal(t, "3", resp.Transaction.FilledQuantity)
	assert.Equal(t, "9200", resp.Transaction.TotalCost)
	assert.Equal(t, "0", resp.Transaction.UnfulfilledQuantity)
	require.Len(t, resp.Transaction.Fills, 2)
	assert.Equal(t, "3000", resp.Transaction.Fills[0].Price)
	assert.Equal(t, "exchange-01", resp.Transaction.Fills[0].ExchangeID)
	assert.Equal(t, "9200", resp.Transaction.ExchangeCostUsed["exchange-01"])
}

func TestSubmitOrder_NoLiquidityStillSucceeds(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/orders",
		`{"side": "buy", "quantity": "1", "price": "2000"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, "0", resp.Transaction.FilledQuantity)
	assert.Equal(t, "1", resp.Transaction.UnfulfilledQuantity)
	assert.Empty(t, resp.Transaction.Fills)
}

func TestSubmitOrder_InvalidSide(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/orders",
		`{"side": "hold", "quantity": "1", "price": "3000"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrInvalidSide, resp.Error.Code)
}

func TestSubmitOrder_NonPositiveQuantity(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/orders",
		`{"side": "sell", "quantity": "0", "price": "3000"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrInvalidQuantity, resp.Error.Code)
}

func TestSubmitOrder_MalformedJSON(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/orders", `{"side": "buy"`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrInvalidRequest, resp.Error.Code)
}

func TestSubmitOrder_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/orders", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetTransactions_AfterSubmit(t *testing.T) {
	handler := newTestHandler(t)

	doRequest(t, handler, http.MethodPost, "/api/v1/orders",
		`{"side": "buy", "quantity": "1", "price": "3000"}`)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/transactions?limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GetTransactionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "1", resp.Transactions[0].FilledQuantity)
}

func TestGetTransaction_ByID(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/orders",
		`{"side": "buy", "quantity": "1", "price": "3000"}`)

	var submitted models.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))
	require.NotNil(t, submitted.Transaction)

	rec = doRequest(t, handler, http.MethodGet,
		"/api/v1/transactions/"+submitted.Transaction.TransactionID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GetTransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, submitted.Transaction.TransactionID, resp.Transaction.TransactionID)
}

func TestGetTransaction_BadID(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/transactions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTransaction_NotFound(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet,
		"/api/v1/transactions/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.ErrTransactionNotFound, resp.Error.Code)
}

func TestGetExchanges(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/exchanges", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GetExchangesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "exchange-01", resp.Exchanges[0].ID)
	assert.Equal(t, 2, resp.Exchanges[0].AskCount)
	require.NotNil(t, resp.Exchanges[0].BestAsk)
	assert.Equal(t, "3000", resp.Exchanges[0].BestAsk.Price)
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}
