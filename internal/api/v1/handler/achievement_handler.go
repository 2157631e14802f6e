package handler

import (
	"encoding/json"
	"net/http"

	"moodnest/internal/api/v1/dto"
	"moodnest/internal/middleware"
	"moodnest/internal/service"
)

type AchievementHandler struct {
	achievementService service.AchievementService
}

func NewAchievementHandler(achievementService service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// RegisterRoutes mounts the achievements route behind the bearer token.
func (h *AchievementHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/achievements", authMw(http.HandlerFunc(h.getAchievements)))
}

func (h *AchievementHandler) getAchievements(w http.ResponseWriter, r *http.Request) {
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

	// 2. Evaluate the catalog against the caller's history
	achievements, summary, err := h.achievementService.GetAchievements(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to evaluate achievements: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// 3. Map domain models to response DTOs
	achievementDTOs := make([]dto.AchievementDTO, 0, len(achievements))
	for _, a := range achievements {
		achievementDTOs = append(achievementDTOs, dto.AchievementDTO{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Unlocked:    a.Unlocked,
			Progress:    a.Progress,
			Requirement: a.Requirement,
		})
	}
	resp := dto.AchievementsResponseDTO{
		Achievements: achievementDTOs,
		Summary: dto.AchievementSummaryDTO{
			Progress:   summary.Progress,
			Total:      summary.Total,
			Completion: summary.Completion,
		},
	}

	// 4. Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
