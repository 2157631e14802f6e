package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"moodnest/internal/api/v1/dto"
	"moodnest/internal/middleware"
	"moodnest/internal/model"
	"moodnest/internal/service"

	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
}

func NewUserHandler(userService service.UserService, v *validator.Validate) *UserHandler {
	return &UserHandler{userService: userService, validate: v}
}

// RegisterRoutes mounts auth routes. Register and login are public; the
// rest require a bearer token.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/auth/register", http.HandlerFunc(h.register))
	mux.Handle("/auth/login", http.HandlerFunc(h.login))
	mux.Handle("/auth/me", authMw(http.HandlerFunc(h.getMe)))
	mux.Handle("/auth/profile", authMw(http.HandlerFunc(h.updateProfile)))
}

func toUserResponseDTO(u *model.User) dto.UserResponseDTO {
	return dto.UserResponseDTO{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		ThemePreference:     u.ThemePreference,
		NotificationEnabled: u.NotificationEnabled,
		NotificationTimes:   u.NotificationTimes,
		SubscriptionStatus:  u.SubscriptionStatus,
		SubscriptionPackage: u.SubscriptionPackage,
		CreatedAt:           u.CreatedAt,
	}
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// 1. Decode request body into DTO
	var req dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 2. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 3. Call service to create the account
	user, token, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to register: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// 4. Return token and user
	resp := dto.AuthResponseDTO{Token: token, User: toUserResponseDTO(user)}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// 1. Decode request body into DTO
	var req dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 2. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 3. Authenticate
	user, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			http.Error(w, "Failed to log in: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// 4. Return token and user
	resp := dto.AuthResponseDTO{Token: token, User: toUserResponseDTO(user)}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) getMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toUserResponseDTO(user))
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
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
	var req dto.UserUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 3. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// 4. Apply update
	upd := &model.UserUpdate{
		Name:                req.Name,
		ThemePreference:     req.ThemePreference,
		NotificationEnabled: req.NotificationEnabled,
		NotificationTimes:   req.NotificationTimes,
	}
	user, err := h.userService.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "Failed to update profile: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// 5. Return the refreshed profile
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toUserResponseDTO(user))
}
