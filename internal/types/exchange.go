package types

import "github.com/shopspring/decimal"

// AvailableFunds caps cumulative usage on one exchange within a single match:
// Crypto bounds the total quantity taken across all of its standing orders,
// Fiat bounds the total cost paid.
type AvailableFunds struct {
	Crypto decimal.Decimal `json:"crypto"`
	Fiat   decimal.Decimal `json:"fiat"`
}

// OrderBook holds an exchange's standing orders. Asks are kept in ascending
// and bids in descending price order, though the candidate selector re-sorts
// globally and does not depend on it.
type OrderBook struct {
	Asks []StandingOrder `json:"asks"`
	Bids []StandingOrder `json:"bids"`
}

// Exchange is a static, already-loaded view of one exchange. It is immutable
// for the duration of a match call.
type Exchange struct {
	ID             string         `json:"id"`
	AvailableFunds AvailableFunds `json:"available_funds"`
	OrderBook      OrderBook      `json:"order_book"`
}

// Clone returns a deep copy so a match call can hold a point-in-time snapshot
// while the registry keeps serving updates.
func (e *Exchange) Clone() *Exchange {
	cp := &Exchange{
		ID:             e.ID,
		AvailableFunds: e.AvailableFunds,
	}
	cp.OrderBook.Asks = append([]StandingOrder(nil), e.OrderBook.Asks...)
	cp.OrderBook.Bids = append([]StandingOrder(nil), e.OrderBook.Bids...)
	return cp
}
