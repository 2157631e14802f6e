package model

import "time"

// Prediction is a stored next-day mood forecast. PredictionDate is the
// calendar day the forecast is for, formatted YYYY-MM-DD.
type Prediction struct {
	ID               string    `db:"id" json:"id"`
	UserID           string    `db:"user_id" json:"user_id"`
	PredictionDate   string    `db:"prediction_date" json:"prediction_date"`
	PredictedMood    float64   `db:"predicted_mood" json:"predicted_mood"`
	Confidence       float64   `db:"confidence" json:"confidence"`
	Reasoning        string    `db:"reasoning" json:"reasoning"`
	CopingStrategies []string  `db:"coping_strategies" json:"coping_strategies"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	IsActive         bool      `db:"is_active" json:"is_active"`
}
