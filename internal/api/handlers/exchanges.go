package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/PxPatel/crypto-fulfillment/internal/api/models"
	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// GetExchangesHandler lists every loaded exchange with its balances and the
// top of each book
func (h *Holder) GetExchangesHandler(w http.ResponseWriter, r *http.Request) {
	exchanges := h.Exchanges.GetExchanges()

	dtos := make([]models.ExchangeDTO, len(exchanges))
	for i, exch := range exchanges {
		dtos[i] = models.ExchangeDTO{
			ID:       exch.ID,
			Crypto:   exch.AvailableFunds.Crypto.String(),
			Fiat:     exch.AvailableFunds.Fiat.String(),
			AskCount: len(exch.OrderBook.Asks),
			BidCount: len(exch.OrderBook.Bids),
			BestAsk:  bestQuote(exch.OrderBook.Asks),
			BestBid:  bestQuote(exch.OrderBook.Bids),
		}
	}

	response := models.GetExchangesResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Exchanges: dtos,
		Count:     len(dtos),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// bestQuote returns the first order of a book side. Books are normalized at
// load time, so the first ask is the cheapest and the first bid the highest.
func bestQuote(orders []types.StandingOrder) *models.BestQuote {
	if len(orders) == 0 {
		return nil
	}
	return &models.BestQuote{
		Price:    orders[0].Price.String(),
		Quantity: orders[0].Quantity.String(),
	}
}
