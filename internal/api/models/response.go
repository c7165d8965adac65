package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseResponse is the base structure for all API responses
type BaseResponse struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
	Error     *APIError `json:"error,omitempty"`
}

// FillDTO represents one consumed standing order in API responses. Decimal
// fields are serialized as strings so clients never see float rounding.
type FillDTO struct {
	StandingOrderID           string `json:"standing_order_id"`
	QuantityTaken             string `json:"quantity_taken"`
	CostPaid                  string `json:"cost_paid"`
	StandingOrderOriginalQty  string `json:"standing_order_original_quantity"`
	StandingOrderRemainingQty string `json:"standing_order_remaining_quantity"`
	Price                     string `json:"price"`
	ExchangeID                string `json:"exchange_id"`
}

// TransactionDTO represents a fill report in API responses
type TransactionDTO struct {
	TransactionID        string            `json:"transaction_id"`
	Side                 string            `json:"side"`
	FilledQuantity       string            `json:"filled_quantity"`
	TotalCost            string            `json:"total_cost"`
	UnfulfilledQuantity  string            `json:"unfulfilled_quantity"`
	Fills                []FillDTO         `json:"fills"`
	ExchangeQuantityUsed map[string]string `json:"exchange_quantity_used"`
	ExchangeCostUsed     map[string]string `json:"exchange_cost_used"`
	CreatedAt            time.Time         `json:"created_at"`
}

// SubmitOrderResponse represents the response for order submission
type SubmitOrderResponse struct {
	BaseResponse
	Transaction *TransactionDTO `json:"transaction,omitempty"`
}

// GetTransactionResponse represents the response for getting a single
// transaction
type GetTransactionResponse struct {
	BaseResponse
	Transaction *TransactionDTO `json:"transaction,omitempty"`
}

// GetTransactionsResponse represents the response for getting recent
// transactions
type GetTransactionsResponse struct {
	BaseResponse
	Transactions []TransactionDTO `json:"transactions"`
	Count        int              `json:"count"`
}

// BestQuote represents the best ask or bid on one exchange
type BestQuote struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// ExchangeDTO summarizes one exchange's funds and book depth
type ExchangeDTO struct {
	ID       string     `json:"id"`
	Crypto   string     `json:"crypto_balance"`
	Fiat     string     `json:"fiat_balance"`
	AskCount int        `json:"ask_count"`
	BidCount int        `json:"bid_count"`
	BestAsk  *BestQuote `json:"best_ask,omitempty"`
	BestBid  *BestQuote `json:"best_bid,omitempty"`
}

// GetExchangesResponse represents the response for listing exchanges
type GetExchangesResponse struct {
	BaseResponse
	Exchanges []ExchangeDTO `json:"exchanges"`
	Count     int           `json:"count"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Version       string    `json:"version"`
}

// DecimalMap converts a decimal-valued map into its string form for DTOs
func DecimalMap(in map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v.String()
	}
	return out
}
