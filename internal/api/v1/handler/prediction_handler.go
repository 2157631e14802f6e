package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"moodnest/internal/api/v1/dto"
	"moodnest/internal/middleware"
	"moodnest/internal/model"
	"moodnest/internal/service"
)

type PredictionHandler struct {
	predictionService service.PredictionService
}

func NewPredictionHandler(predictionService service.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

// RegisterRoutes mounts prediction routes. Everything requires a bearer token.
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/predictions/generate", authMw(http.HandlerFunc(h.generatePrediction)))
	mux.Handle("/predictions", authMw(http.HandlerFunc(h.getPredictions)))
}

func toPredictionResponseDTO(p *model.Prediction) dto.PredictionResponseDTO {
	return dto.PredictionResponseDTO{
		ID:               p.ID,
		UserID:           p.UserID,
		PredictionDate:   p.PredictionDate,
		PredictedMood:    p.PredictedMood,
		Confidence:       p.Confidence,
		Reasoning:        p.Reasoning,
		CopingStrategies: p.CopingStrategies,
		CreatedAt:        p.CreatedAt,
	}
}

func (h *PredictionHandler) generatePrediction(w http.ResponseWriter, r *http.Request) {
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

	// 2. Call service to generate and persist a forecast
	prediction, err := h.predictionService.GeneratePrediction(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotEnoughHistory):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to generate prediction: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// 3. Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPredictionResponseDTO(prediction))
}

func (h *PredictionHandler) getPredictions(w http.ResponseWriter, r *http.Request) {
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

	// 2. Call service for the active forecasts
	predictions, err := h.predictionService.GetPredictions(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to retrieve predictions: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// 3. Map domain models to response DTOs
	predictionDTOs := make([]dto.PredictionResponseDTO, 0, len(predictions))
	for i := range predictions {
		predictionDTOs = append(predictionDTOs, toPredictionResponseDTO(&predictions[i]))
	}

	// 4. Return response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(predictionDTOs)
}
