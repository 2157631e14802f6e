package dto

import "time"

// PredictionResponseDTO is returned in API responses. PredictionDate is the
// forecast's calendar day, formatted YYYY-MM-DD.
type PredictionResponseDTO struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	PredictionDate   string    `json:"prediction_date"`
	PredictedMood    float64   `json:"predicted_mood"`
	Confidence       float64   `json:"confidence"`
	Reasoning        string    `json:"reasoning"`
	CopingStrategies []string  `json:"coping_strategies"`
	CreatedAt        time.Time `json:"created_at"`
}
