package routes

import (
	"net/http"

	"github.com/PxPatel/crypto-fulfillment/internal/api/handlers"
	"github.com/PxPatel/crypto-fulfillment/internal/api/middleware"
)

// SetupRoutes configures all API routes with middleware
func SetupRoutes(holder *handlers.Holder) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/api/v1/health", handlers.HealthHandler)

	// Order submission
	mux.HandleFunc("/api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			holder.SubmitOrderHandler(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Exchange registry
	mux.HandleFunc("/api/v1/exchanges", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			holder.GetExchangesHandler(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Transaction history
	mux.HandleFunc("/api/v1/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			holder.GetTransactionsHandler(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/v1/transactions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			holder.GetTransactionHandler(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Apply middleware (order matters: Recovery -> Logging -> Handler)
	handler := middleware.Recovery(mux)
	handler = middleware.Logging(handler)

	return handler
}
