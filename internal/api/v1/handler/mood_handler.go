package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"moodnest/internal/api/v1/dto"
	"moodnest/internal/middleware"
	"moodnest/internal/model"
	"moodnest/internal/service"

	"github.com/go-playground/validator/v10"
)

// defaultStatsDays is the window applied when the days query param is absent.
const defaultStatsDays = 30

type MoodHandler struct {
	moodService service.MoodService
	validate    *validator.Validate
}

func NewMoodHandler(moodService service.MoodService, v *validator.Validate) *MoodHandler {
	return &MoodHandler{moodService: moodService, validate: v}
}

// RegisterRoutes mounts mood routes. Everything requires a bearer token.
func (h *MoodHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/moods", authMw(http.HandlerFunc(h.handleMoods)))
	mux.Handle("/moods/stats", authMw(http.HandlerFunc(h.getStats)))
	mux.Handle("/moods/export", authMw(http.HandlerFunc(h.exportMoods)))
}

func (h *MoodHandler) handleMoods(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/moods":
		h.createMood(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/moods":
		h.getMoods(w, r)
	default:
		http.NotFound(w, r)
	}
}

// parseDays reads the days query param, defaulting when absent. A value
// that is not an integer is a validation error.
func parseDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultStatsDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("days must be an integer")
	}
	return days, nil
}

func toMoodEntryResponseDTO(e *model.MoodEntry) dto.MoodEntryResponseDTO {
	return dto.MoodEntryResponseDTO{
		ID:          e.ID,
		UserID:      e.UserID,
		MoodValue:   e.MoodValue,
		MoodEmoji:   e.MoodEmoji,
		MoodColor:   e.MoodColor,
		Factors:     e.Factors,
		JournalText: e.JournalText,
		Timestamp:   e.Timestamp,
		CreatedAt:   e.CreatedAt,
	}
}

func (h *MoodHandler) createMood(w http.ResponseWriter, r *http.Request) {
	// 1. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	// 2. Decode request body into DTO
	var req dto.MoodEntryCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 3. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 4. Create model.MoodEntry from DTO and context UserID
	entry := &model.MoodEntry{
		UserID:      userID,
		MoodValue:   req.MoodValue,
		MoodEmoji:   req.MoodEmoji,
		MoodColor:   req.MoodColor,
		Factors:     req.Factors,
		JournalText: req.JournalText,
	}
	if req.Timestamp != nil {
		entry.Timestamp = *req.Timestamp
	}

	// 5. Call service to persist the entry
	created, err := h.moodService.CreateEntry(r.Context(), entry)
	if err != nil {
		http.Error(w, "Failed to create mood entry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// 6. Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toMoodEntryResponseDTO(created))
}

func (h *MoodHandler) getMoods(w http.ResponseWriter, r *http.Request) {
	// 1. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	// 2. Parse window from query parameters
	days, err := parseDays(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 3. Call service
	entries, err := h.moodService.GetEntries(r.Context(), userID, days)
	if err != nil {
		http.Error(w, "Failed to retrieve mood entries: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// 4. Map domain models to response DTOs
	entryDTOs := make([]dto.MoodEntryResponseDTO, 0, len(entries))
	for i := range entries {
		entryDTOs = append(entryDTOs, toMoodEntryResponseDTO(&entries[i]))
	}

	// 5. Return response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(entryDTOs)
}

func (h *MoodHandler) getStats(w http.ResponseWriter, r *http.Request) {
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

	// 2. Parse window from query parameters
	days, err := parseDays(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 3. Call service
	stats, err := h.moodService.GetStats(r.Context(), userID, days)
	if err != nil {
		http.Error(w, "Failed to compute mood stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// 4. Map to response DTO
	resp := dto.MoodStatsResponseDTO{
		AverageMood:      stats.AverageMood,
		TotalEntries:     stats.TotalEntries,
		MoodDistribution: stats.MoodDistribution,
		AverageFactors:   stats.AverageFactors,
	}

	// 5. Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *MoodHandler) exportMoods(w http.ResponseWriter, r *http.Request) {
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

	// 2. Call service for the owner plus full capped history
	user, entries, err := h.moodService.Export(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "Failed to export mood data: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// 3. Build export envelope
	exportEntries := make([]dto.MoodExportEntryDTO, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		exportEntries = append(exportEntries, dto.MoodExportEntryDTO{
			MoodValue:   e.MoodValue,
			MoodEmoji:   e.MoodEmoji,
			MoodColor:   e.MoodColor,
			Factors:     e.Factors,
			JournalText: e.JournalText,
			Timestamp:   e.Timestamp.Format(time.RFC3339),
		})
	}
	resp := dto.MoodExportResponseDTO{
		User:         dto.MoodExportUserDTO{Name: user.Name, Email: user.Email},
		ExportDate:   time.Now().UTC().Format(time.RFC3339),
		TotalEntries: len(entries),
		Entries:      exportEntries,
	}

	// 4. Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
