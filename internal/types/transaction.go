package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FillLine records one standing order partially or fully consumed during a
// match. OrderRemainingQuantity is informational; the standing order itself is
// never written back.
type FillLine struct {
	OrderID                uuid.UUID       `json:"standing_order_id"`
	QuantityTaken          decimal.Decimal `json:"quantity_taken"`
	CostPaid               decimal.Decimal `json:"cost_paid"`
	OrderOriginalQuantity  decimal.Decimal `json:"standing_order_original_quantity"`
	OrderRemainingQuantity decimal.Decimal `json:"standing_order_remaining_quantity"`
	Price                  decimal.Decimal `json:"price"`
	ExchangeID             string          `json:"exchange_id"`
}

// Transaction is the fill report for one incoming order. It shares the order's
// identifier. The engine mutates it during a single match call and hands it
// back to the caller, after which it is read-only.
type Transaction struct {
	ID                   uuid.UUID                  `json:"transaction_id"`
	Side                 Side                       `json:"side"`
	FilledQuantity       decimal.Decimal            `json:"filled_quantity"`
	TotalCost            decimal.Decimal            `json:"total_cost"`
	UnfulfilledQuantity  decimal.Decimal            `json:"unfulfilled_quantity"`
	Fills                []FillLine                 `json:"fills"`
	ExchangeQuantityUsed map[string]decimal.Decimal `json:"exchange_quantity_used"`
	ExchangeCostUsed     map[string]decimal.Decimal `json:"exchange_cost_used"`
	CreatedAt            time.Time                  `json:"created_at"`
}

// NewTransaction starts an empty report: nothing filled, everything
// unfulfilled.
func NewTransaction(order *IncomingOrder) *Transaction {
	return &Transaction{
		ID:                   order.ID,
		Side:                 order.Side,
		UnfulfilledQuantity:  order.Quantity,
		ExchangeQuantityUsed: make(map[string]decimal.Decimal),
		ExchangeCostUsed:     make(map[string]decimal.Decimal),
		CreatedAt:            order.Timestamp,
	}
}

// QuantityUsed returns the cumulative quantity already taken from an exchange
// in this match, zero for an exchange not touched yet.
func (t *Transaction) QuantityUsed(exchangeID string) decimal.Decimal {
	if used, ok := t.ExchangeQuantityUsed[exchangeID]; ok {
		return used
	}
	return decimal.Zero
}

// CostUsed returns the cumulative cost already spent on an exchange in this
// match, zero for an exchange not touched yet.
func (t *Transaction) CostUsed(exchangeID string) decimal.Decimal {
	if used, ok := t.ExchangeCostUsed[exchangeID]; ok {
		return used
	}
	return decimal.Zero
}

// AddFill commits one slice of a standing order into the report, keeping the
// totals and the per-exchange usage maps consistent with the fill list.
// Invariant: FilledQuantity + UnfulfilledQuantity equals the requested
// quantity at all times.
func (t *Transaction) AddFill(line FillLine) {
	t.FilledQuantity = t.FilledQuantity.Add(line.QuantityTaken)
	t.TotalCost = t.TotalCost.Add(line.CostPaid)
	t.UnfulfilledQuantity = t.UnfulfilledQuantity.Sub(line.QuantityTaken)
	t.Fills = append(t.Fills, line)
	t.ExchangeQuantityUsed[line.ExchangeID] = t.QuantityUsed(line.ExchangeID).Add(line.QuantityTaken)
	t.ExchangeCostUsed[line.ExchangeID] = t.CostUsed(line.ExchangeID).Add(line.CostPaid)
}
