package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/PxPatel/crypto-fulfillment/internal/api/logger"
	"github.com/PxPatel/crypto-fulfillment/internal/api/models"
	"github.com/PxPatel/crypto-fulfillment/internal/exchange"
	"github.com/PxPatel/crypto-fulfillment/internal/fulfillment"
	"github.com/PxPatel/crypto-fulfillment/internal/storage"
	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// Holder wires the fulfillment engine, the exchange registry and the
// transaction store into the HTTP handlers
type Holder struct {
	Engine       *fulfillment.Engine
	Exchanges    exchange.Service
	Transactions storage.TransactionStore
}

// NewHolder creates a new handler holder
func NewHolder(engine *fulfillment.Engine, exchanges exchange.Service, transactions storage.TransactionStore) *Holder {
	return &Holder{
		Engine:       engine,
		Exchanges:    exchanges,
		Transactions: transactions,
	}
}

// writeErrorResponse writes an error response
func writeErrorResponse(w http.ResponseWriter, httpErr *models.HTTPError) {
	logger.Warn("Request failed", map[string]interface{}{
		"error_code": httpErr.Error.Code,
		"status":     httpErr.StatusCode,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.StatusCode)

	response := models.BaseResponse{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Message:   httpErr.Error.Message,
		Error:     &httpErr.Error,
	}

	json.NewEncoder(w).Encode(response)
}

// convertTransactionToDTO converts a fill report to its API representation
func convertTransactionToDTO(txn *types.Transaction) *models.TransactionDTO {
	fills := make([]models.FillDTO, len(txn.Fills))
	for i, fill := range txn.Fills {
		fills[i] = models.FillDTO{
			StandingOrderID:           fill.OrderID.String(),
			QuantityTaken:             fill.QuantityTaken.String(),
			CostPaid:                  fill.CostPaid.String(),
			StandingOrderOriginalQty:  fill.OrderOriginalQuantity.String(),
			StandingOrderRemainingQty: fill.OrderRemainingQuantity.String(),
			Price:                     fill.Price.String(),
			ExchangeID:                fill.ExchangeID,
		}
	}

	return &models.TransactionDTO{
		TransactionID:        txn.ID.String(),
		Side:                 txn.Side.String(),
		FilledQuantity:       txn.FilledQuantity.String(),
		TotalCost:            txn.TotalCost.String(),
		UnfulfilledQuantity:  txn.UnfulfilledQuantity.String(),
		Fills:                fills,
		ExchangeQuantityUsed: models.DecimalMap(txn.ExchangeQuantityUsed),
		ExchangeCostUsed:     models.DecimalMap(txn.ExchangeCostUsed),
		CreatedAt:            txn.CreatedAt,
	}
}

// SubmitOrderHandler handles market order submission: it snapshots the
// exchange registry, runs one match and persists the resulting transaction
func (h *Holder) SubmitOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOrderRequest

	// Parse request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, models.ErrBadRequest("Invalid JSON format", map[string]interface{}{"error": err.Error()}))
		return
	}

	// Validate request
	if httpErr := req.Validate(); httpErr != nil {
		writeErrorResponse(w, httpErr)
		return
	}

	order := types.NewIncomingOrder(types.ParseSide(req.Side), req.Quantity, req.Price)

	// Match against a frozen view of the exchanges
	txn, err := h.Engine.Fulfill(h.Exchanges.Snapshot(), order)
	if err != nil {
		// Validation already rejected bad sides, so anything here is a bug
		writeErrorResponse(w, models.ErrInternal("Order could not be processed"))
		return
	}

	if err := h.Transactions.Save(txn); err != nil {
		logger.Error("Failed to persist transaction", map[string]interface{}{
			"transaction_id": txn.ID.String(),
			"error":          err.Error(),
		})
	}

	logger.Info("Order submitted successfully", map[string]interface{}{
		"transaction_id": txn.ID.String(),
		"side":           req.Side,
		"requested":      req.Quantity.String(),
		"filled":         txn.FilledQuantity.String(),
		"fills":          len(txn.Fills),
	})

	message := "Order fulfilled"
	if txn.FilledQuantity.IsZero() {
		message = "No liquidity available for this order"
	} else if txn.UnfulfilledQuantity.IsPositive() {
		message = "Order partially fulfilled"
	}

	response := models.SubmitOrderResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
			Message:   message,
		},
		Transaction: convertTransactionToDTO(txn),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
