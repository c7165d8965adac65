package models

import (
	"github.com/shopspring/decimal"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// SubmitOrderRequest represents a market order submission. Quantity and price
// accept both JSON numbers and numeric strings; strings avoid any float
// detour on the client side.
type SubmitOrderRequest struct {
	Side     string          `json:"side"` // "buy" | "sell"
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"` // limit: max for buy, min for sell
}

// Validate validates the order request
func (r *SubmitOrderRequest) Validate() *HTTPError {
	if types.ParseSide(r.Side) == types.NoSide {
		return ErrInvalidSideError(r.Side)
	}

	if !r.Quantity.IsPositive() {
		return ErrInvalidQuantityError(r.Quantity.String())
	}

	if !r.Price.IsPositive() {
		return ErrInvalidPriceError(r.Price.String())
	}

	return nil
}
