package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PxPatel/crypto-fulfillment/config"
	"github.com/PxPatel/crypto-fulfillment/internal/api/logger"
	"github.com/PxPatel/crypto-fulfillment/internal/api/models"
)

// GetTransactionsHandler handles retrieving recent transactions
func (h *Holder) GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	cfg := config.Get()

	limit := cfg.API.DefaultTransactionLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err == nil && parsedLimit > 0 {
			limit = parsedLimit
			if limit > cfg.API.MaxTransactionLimit {
				limit = cfg.API.MaxTransactionLimit
			}
		}
	}

	txns, err := h.Transactions.GetRecent(limit)
	if err != nil {
		logger.Error("Failed to load recent transactions", map[string]interface{}{
			"error": err.Error(),
		})
		writeErrorResponse(w, models.ErrInternal("Could not load transactions"))
		return
	}

	dtos := make([]models.TransactionDTO, len(txns))
	for i, txn := range txns {
		dtos[i] = *convertTransactionToDTO(txn)
	}

	response := models.GetTransactionsResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Transactions: dtos,
		Count:        len(dtos),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// GetTransactionHandler handles retrieving a single transaction by ID
func (h *Holder) GetTransactionHandler(w http.ResponseWriter, r *http.Request) {
	// Extract transaction ID from path
	pathParts := strings.Split(r.URL.Path, "/")
	idStr := pathParts[len(pathParts)-1]

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeErrorResponse(w, models.ErrBadRequest("Invalid transaction ID format",
			map[string]interface{}{"provided_value": idStr}))
		return
	}

	txn, err := h.Transactions.Get(id)
	if err != nil {
		writeErrorResponse(w, models.ErrTransactionNotFoundError(idStr))
		return
	}

	response := models.GetTransactionResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Transaction: convertTransactionToDTO(txn),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
