package fulfillment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// ErrInvalidOrderSide reports an incoming order whose side is neither buy nor
// sell. It is the only error the matching path produces; running out of
// liquidity is a normal zero-fill outcome, not an error.
var ErrInvalidOrderSide = errors.New("invalid order side")

// Candidate pairs one standing order with the exchange whose book it came
// from, so the engine can charge usage against the right balances.
type Candidate struct {
	Exchange *types.Exchange
	Order    types.StandingOrder
}

// SelectCandidates gathers every standing order across all exchanges that
// satisfies the incoming order's limit price and returns them in price
// priority: cheapest asks first for a buy, highest bids first for a sell.
// The sort is stable, so price ties keep exchange input order and book order.
// The input slices are only read, never reordered.
func SelectCandidates(exchanges []*types.Exchange, order *types.IncomingOrder) ([]Candidate, error) {
	var candidates []Candidate

	switch order.Side {
	case types.Buy:
		for _, exch := range exchanges {
			for _, ask := range exch.OrderBook.Asks {
				if ask.Price.LessThanOrEqual(order.Price) {
					candidates = append(candidates, Candidate{Exchange: exch, Order: ask})
				}
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Order.Price.LessThan(candidates[j].Order.Price)
		})

	case types.Sell:
		for _, exch := range exchanges {
			for _, bid := range exch.OrderBook.Bids {
				if bid.Price.GreaterThanOrEqual(order.Price) {
					candidates = append(candidates, Candidate{Exchange: exch, Order: bid})
				}
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Order.Price.GreaterThan(candidates[j].Order.Price)
		})

	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrderSide, order.Side)
	}

	return candidates, nil
}
