package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StandingOrder is one resting limit order on an exchange's book. Its side is
// implicit in which list (asks or bids) it came from. The engine never mutates
// it; consumed amounts are reported on the fill line instead.
type StandingOrder struct {
	ID       uuid.UUID       `json:"id"`
	Time     time.Time       `json:"time"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// IncomingOrder is the market order a caller wants filled. Price is the worst
// acceptable price per unit: a maximum for buys, a minimum for sells.
// Positivity of Quantity and Price is validated by the front-end before the
// order reaches the engine.
type IncomingOrder struct {
	ID        uuid.UUID       `json:"id"`
	Side      Side            `json:"side"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewIncomingOrder builds an order with a fresh identifier and timestamp.
func NewIncomingOrder(side Side, quantity, price decimal.Decimal) *IncomingOrder {
	return &IncomingOrder{
		ID:        uuid.New(),
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Timestamp: time.Now().UTC(),
	}
}
