package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"moodnest/internal/model"
)

// PredictionRepository defines mood-prediction DB operations.
type PredictionRepository interface {
	CreatePrediction(ctx context.Context, p *model.Prediction) error
	// GetActivePredictions returns a user's active predictions newest first,
	// capped at limit.
	GetActivePredictions(ctx context.Context, userID string, limit int) ([]model.Prediction, error)
}

type predictionRepo struct {
	db *sql.DB
}

func NewPredictionRepo(db *sql.DB) PredictionRepository {
	return &predictionRepo{db: db}
}

func (r *predictionRepo) CreatePrediction(ctx context.Context, p *model.Prediction) error {
	strategies, err := json.Marshal(p.CopingStrategies)
	if err != nil {
		return fmt.Errorf("marshal coping_strategies: %w", err)
	}
	query := `INSERT INTO predictions (id, user_id, prediction_date, predicted_mood, confidence, reasoning, coping_strategies, is_active)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`
	err = r.db.QueryRowContext(ctx, query,
		p.ID, p.UserID, p.PredictionDate, p.PredictedMood, p.Confidence, p.Reasoning, strategies, p.IsActive,
	).Scan(&p.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *predictionRepo) GetActivePredictions(ctx context.Context, userID string, limit int) ([]model.Prediction, error) {
	query := `SELECT id, user_id, prediction_date, predicted_mood, confidence, reasoning, coping_strategies, created_at, is_active
              FROM predictions WHERE user_id = $1 AND is_active ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	predictions := []model.Prediction{}
	for rows.Next() {
		var p model.Prediction
		var rawStrategies []byte
		if err := rows.Scan(&p.ID, &p.UserID, &p.PredictionDate, &p.PredictedMood, &p.Confidence, &p.Reasoning, &rawStrategies, &p.CreatedAt, &p.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		if err := json.Unmarshal(rawStrategies, &p.CopingStrategies); err != nil {
			return nil, fmt.Errorf("unmarshal coping_strategies for prediction %s: %w", p.ID, err)
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return predictions, nil
}
