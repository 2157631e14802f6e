package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"moodnest/internal/api/v1/dto"
	"moodnest/internal/middleware"
	"moodnest/internal/model"
	"moodnest/internal/service"

	"github.com/go-playground/validator/v10"
)

type WorryHandler struct {
	worryService service.WorryService
	validate     *validator.Validate
}

func NewWorryHandler(worryService service.WorryService, v *validator.Validate) *WorryHandler {
	return &WorryHandler{worryService: worryService, validate: v}
}

// RegisterRoutes mounts worry-tree routes under /worry-tree and
// /worry-tree/{id}. Everything requires a bearer token.
func (h *WorryHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/worry-tree", authMw(http.HandlerFunc(h.handleWorries)))
	mux.Handle("/worry-tree/", authMw(http.HandlerFunc(h.handleWorryByID)))
}

func (h *WorryHandler) handleWorries(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/worry-tree":
		h.createWorry(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/worry-tree":
		h.getWorries(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *WorryHandler) handleWorryByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/worry-tree/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPut:
		h.updateWorry(w, r, id)
	case http.MethodDelete:
		h.deleteWorry(w, r, id)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func toWorryResponseDTO(worry *model.Worry) dto.WorryResponseDTO {
	return dto.WorryResponseDTO{
		ID:             worry.ID,
		UserID:         worry.UserID,
		Description:    worry.Description,
		Intensity:      worry.Intensity,
		Category:       worry.Category,
		CreatedAt:      worry.CreatedAt,
		ResolvedAt:     worry.ResolvedAt,
		ResolutionNote: worry.ResolutionNote,
	}
}

func (h *WorryHandler) createWorry(w http.ResponseWriter, r *http.Request) {
	// 1. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	// 2. Decode request body into DTO
	var req dto.WorryCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 3. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 4. Create model.Worry from DTO and context UserID
	worry := &model.Worry{
		UserID:      userID,
		Description: req.Description,
		Intensity:   req.Intensity,
		Category:    req.Category,
	}

	// 5. Call service to persist the worry
	created, err := h.worryService.CreateWorry(r.Context(), worry)
	if err != nil {
		http.Error(w, "Failed to create worry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// 6. Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toWorryResponseDTO(created))
}

func (h *WorryHandler) getWorries(w http.ResponseWriter, r *http.Request) {
	// 1. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	// 2. Call service
	worries, err := h.worryService.GetWorries(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to retrieve worries: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// 3. Map domain models to response DTOs
	worryDTOs := make([]dto.WorryResponseDTO, 0, len(worries))
	for i := range worries {
		worryDTOs = append(worryDTOs, toWorryResponseDTO(&worries[i]))
	}

	// 4. Return response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(worryDTOs)
}

func (h *WorryHandler) updateWorry(w http.ResponseWriter, r *http.Request, id string) {
	// 1. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	// 2. Decode request body into DTO
	var req dto.WorryUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 3. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 4. Apply update, scoped to the owner
	upd := &model.WorryUpdate{
		Description:    req.Description,
		Intensity:      req.Intensity,
		Category:       req.Category,
		ResolutionNote: req.ResolutionNote,
	}
	worry, err := h.worryService.UpdateWorry(r.Context(), id, userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "Failed to update worry: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// 5. Return the refreshed worry
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toWorryResponseDTO(worry))
}

func (h *WorryHandler) deleteWorry(w http.ResponseWriter, r *http.Request, id string) {
	// 1. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	// 2. Delete, scoped to the owner
	if err := h.worryService.DeleteWorry(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrWorryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "Failed to delete worry: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
