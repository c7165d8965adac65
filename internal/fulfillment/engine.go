package fulfillment

import (
	"github.com/shopspring/decimal"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// LogSink receives engine progress events. *logger.Logger satisfies it; the
// engine performs no other I/O and never blocks on the sink.
type LogSink interface {
	Info(message string, context ...map[string]interface{})
}

type nopSink struct{}

func (nopSink) Info(string, ...map[string]interface{}) {}

// Engine fills incoming orders against point-in-time exchange snapshots. It
// holds no market state of its own; every Fulfill call is independent.
type Engine struct {
	log LogSink
}

// NewEngine builds an engine. A nil sink disables progress logging.
func NewEngine(log LogSink) *Engine {
	if log == nil {
		log = nopSink{}
	}
	return &Engine{log: log}
}

// Fulfill runs one match: select candidates in price priority, then greedily
// consume them in a single pass while honoring each exchange's crypto and
// fiat balances. Exchanges are treated as read-only; all consumption is
// tracked on the returned transaction. A request no candidate can serve
// yields a zero-fill transaction, not an error.
func (e *Engine) Fulfill(exchanges []*types.Exchange, order *types.IncomingOrder) (*types.Transaction, error) {
	candidates, err := SelectCandidates(exchanges, order)
	if err != nil {
		return nil, err
	}

	txn := types.NewTransaction(order)
	for _, candidate := range candidates {
		e.tryFill(txn, candidate)
		if txn.UnfulfilledQuantity.IsZero() {
			break
		}
	}

	e.log.Info("Match finished", map[string]interface{}{
		"transaction_id":       txn.ID.String(),
		"side":                 txn.Side.String(),
		"requested_quantity":   order.Quantity.String(),
		"filled_quantity":      txn.FilledQuantity.String(),
		"unfulfilled_quantity": txn.UnfulfilledQuantity.String(),
		"total_cost":           txn.TotalCost.String(),
		"fills":                len(txn.Fills),
	})
	return txn, nil
}

// tryFill consumes as much of one candidate as the remaining order quantity
// and the exchange's balances allow, committing the slice onto the
// transaction. Candidates an exhausted exchange can no longer serve are
// skipped; later candidates may still fill from other exchanges.
func (e *Engine) tryFill(txn *types.Transaction, candidate Candidate) {
	exch := candidate.Exchange

	quantity := decimal.Min(txn.UnfulfilledQuantity, candidate.Order.Quantity)

	quantity = clampToHeadroom(exch.AvailableFunds.Crypto, txn.QuantityUsed(exch.ID), quantity)
	if quantity.IsZero() {
		e.log.Info("No more crypto on exchange", map[string]interface{}{
			"exchange_id":       exch.ID,
			"standing_order_id": candidate.Order.ID.String(),
		})
		return
	}

	cost := quantity.Mul(candidate.Order.Price)
	clamped := clampToHeadroom(exch.AvailableFunds.Fiat, txn.CostUsed(exch.ID), cost)
	if !clamped.Equal(cost) {
		// Funding bound the fill; re-derive the quantity from the clamped
		// cost so the pair stays exactly consistent at this price.
		cost = clamped
		quantity = cost.Div(candidate.Order.Price)
	}
	if cost.IsZero() {
		e.log.Info("No more funds on exchange", map[string]interface{}{
			"exchange_id":       exch.ID,
			"standing_order_id": candidate.Order.ID.String(),
		})
		return
	}

	txn.AddFill(types.FillLine{
		OrderID:                candidate.Order.ID,
		QuantityTaken:          quantity,
		CostPaid:               cost,
		OrderOriginalQuantity:  candidate.Order.Quantity,
		OrderRemainingQuantity: candidate.Order.Quantity.Sub(quantity),
		Price:                  candidate.Order.Price,
		ExchangeID:             exch.ID,
	})
}

// clampToHeadroom caps a proposed amount by the unused balance on an
// exchange. Proposals that would land exactly on the balance take the clamp
// path too, which then returns the same value. The result is never negative.
func clampToHeadroom(available, used, proposed decimal.Decimal) decimal.Decimal {
	if used.Add(proposed).GreaterThanOrEqual(available) {
		headroom := available.Sub(used)
		if headroom.IsNegative() {
			return decimal.Zero
		}
		return headroom
	}
	return proposed
}
