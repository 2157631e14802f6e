package dto

import "time"

// WorryCreateDTO is the create request body. Category defaults to
// take_action when absent.
type WorryCreateDTO struct {
	Description string `json:"description" validate:"required"`
	Intensity   int    `json:"intensity" validate:"required,min=1,max=10"`
	Category    string `json:"category" validate:"omitempty,oneof=take_action let_go scheduled resolved"`
}

// WorryUpdateDTO carries the optional fields an update may change.
type WorryUpdateDTO struct {
	Description    *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Intensity      *int    `json:"intensity,omitempty" validate:"omitempty,min=1,max=10"`
	Category       *string `json:"category,omitempty" validate:"omitempty,oneof=take_action let_go scheduled resolved"`
	ResolutionNote *string `json:"resolution_note,omitempty"`
}

// WorryResponseDTO is returned in API responses.
type WorryResponseDTO struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Description    string     `json:"description"`
	Intensity      int        `json:"intensity"`
	Category       string     `json:"category"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ResolutionNote *string    `json:"resolution_note,omitempty"`
}
