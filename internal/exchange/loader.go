package exchange

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// LoadFile reads one exchange snapshot from a JSON file, normalizes its book
// (asks ascending, bids descending) and drops standing orders the exchange's
// own balances could never fund.
func LoadFile(path string) (*types.Exchange, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exchange file %s: %w", path, err)
	}

	var exch types.Exchange
	if err := json.Unmarshal(raw, &exch); err != nil {
		return nil, fmt.Errorf("parse exchange file %s: %w", path, err)
	}
	if exch.ID == "" {
		return nil, fmt.Errorf("exchange file %s has no id", path)
	}

	SortBook(&exch)
	FilterUnfundable(&exch)
	return &exch, nil
}

// LoadAll reads a comma-separated list of snapshot files into a fresh
// registry, keeping file order as the registry's iteration order.
func LoadAll(paths string) (*InMemoryService, error) {
	service := NewInMemoryService()
	for _, path := range strings.Split(paths, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		exch, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		service.UpdateExchange(exch)
	}
	return service, nil
}

// SortBook puts asks in ascending and bids in descending price order. Sorting
// is stable so equal-priced orders keep their file order.
func SortBook(exch *types.Exchange) {
	sort.SliceStable(exch.OrderBook.Asks, func(i, j int) bool {
		return exch.OrderBook.Asks[i].Price.LessThan(exch.OrderBook.Asks[j].Price)
	})
	sort.SliceStable(exch.OrderBook.Bids, func(i, j int) bool {
		return exch.OrderBook.Bids[i].Price.GreaterThan(exch.OrderBook.Bids[j].Price)
	})
}

// FilterUnfundable removes asks whose full cost exceeds the exchange's fiat
// balance and bids whose full quantity exceeds its crypto balance. Such
// orders could never be settled in whole by the exchange that listed them.
func FilterUnfundable(exch *types.Exchange) {
	asks := exch.OrderBook.Asks[:0]
	for _, ask := range exch.OrderBook.Asks {
		if ask.Price.Mul(ask.Quantity).LessThanOrEqual(exch.AvailableFunds.Fiat) {
			asks = append(asks, ask)
		}
	}
	exch.OrderBook.Asks = asks

	bids := exch.OrderBook.Bids[:0]
	for _, bid := range exch.OrderBook.Bids {
		if bid.Quantity.LessThanOrEqual(exch.AvailableFunds.Crypto) {
			bids = append(bids, bid)
		}
	}
	exch.OrderBook.Bids = bids
}
