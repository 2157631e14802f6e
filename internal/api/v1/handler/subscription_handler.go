package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"moodnest/internal/api/v1/dto"
	"moodnest/internal/middleware"
	"moodnest/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SubscriptionHandler handles checkout creation and status polling.
type SubscriptionHandler struct {
	paymentService service.PaymentService
	validate       *validator.Validate
	logger         zerolog.Logger
}

func NewSubscriptionHandler(paymentService service.PaymentService, v *validator.Validate, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{paymentService: paymentService, validate: v, logger: logger}
}

// RegisterRoutes mounts subscription routes behind the bearer token.
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/subscription/checkout", authMw(http.HandlerFunc(h.createCheckout)))
	mux.Handle("/subscription/status/", authMw(http.HandlerFunc(h.getCheckoutStatus)))
}

func (h *SubscriptionHandler) createCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// 1. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	// 2. Decode request body into DTO
	var req dto.CheckoutCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 3. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 4. Create the hosted checkout session
	result, err := h.paymentService.CreateCheckout(r.Context(), userID, req.PackageID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPackage):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error().Err(err).Msg("Failed to create checkout session")
			http.Error(w, "Failed to create checkout session", http.StatusInternalServerError)
		}
		return
	}

	// 5. Return the checkout URL and session id
	resp := dto.CheckoutResponseDTO{URL: result.URL, SessionID: result.SessionID}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *SubscriptionHandler) getCheckoutStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// 1. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	// 2. Extract session id from path
	sessionID := strings.TrimPrefix(r.URL.Path, "/subscription/status/")
	if sessionID == "" || strings.Contains(sessionID, "/") {
		http.NotFound(w, r)
		return
	}

	// 3. Refresh the transaction from the provider
	tx, err := h.paymentService.GetCheckoutStatus(r.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.logger.Error().Err(err).Msg("Failed to retrieve checkout status")
			http.Error(w, "Failed to retrieve checkout status", http.StatusInternalServerError)
		}
		return
	}

	// 4. Map to response DTO
	resp := dto.CheckoutStatusResponseDTO{
		SessionID:     tx.SessionID,
		Status:        tx.Status,
		PaymentStatus: tx.PaymentStatus,
		PackageID:     tx.PackageID,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
	}

	// 5. Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
