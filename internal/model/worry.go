package model

import "time"

// Worry-tree categories. A worry starts in take_action and only gains a
// resolution timestamp when it first moves to resolved.
const (
	WorryTakeAction = "take_action"
	WorryLetGo      = "let_go"
	WorryScheduled  = "scheduled"
	WorryResolved   = "resolved"
)

// WorryUpdate carries the optional fields an update may change. Nil fields
// are left untouched.
type WorryUpdate struct {
	Description    *string `json:"description"`
	Intensity      *int    `json:"intensity"`
	Category       *string `json:"category"`
	ResolutionNote *string `json:"resolution_note"`
}

// Worry is one item in a user's worry tree.
type Worry struct {
	ID             string     `db:"id" json:"id"`
	UserID         string     `db:"user_id" json:"user_id"`
	Description    string     `db:"description" json:"description"`
	Intensity      int        `db:"intensity" json:"intensity"`
	Category       string     `db:"category" json:"category"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	ResolvedAt     *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
	ResolutionNote *string    `db:"resolution_note" json:"resolution_note,omitempty"`
}
