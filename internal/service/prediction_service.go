package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"moodnest/internal/model"
	"moodnest/internal/repository"
)

var ErrNotEnoughHistory = errors.New("need at least 3 mood entries to generate predictions")

const (
	predictionHistoryDays = 14
	minPredictionEntries  = 3
	maxActivePredictions  = 10

	predictionSystemMessage = "You are a compassionate mental health assistant."
)

// PredictionResult is the structured payload expected in the model's reply.
type PredictionResult struct {
	PredictedMood    float64  `json:"predicted_mood"`
	Confidence       float64  `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
	CopingStrategies []string `json:"coping_strategies"`
}

// PredictionDraft separates a parsed model reply from the neutral fallback
// substituted when the reply is unusable. Callers can always tell which one
// they got.
type PredictionDraft struct {
	PredictionResult
	Fallback bool
}

var fallbackPrediction = PredictionResult{
	PredictedMood: 3.5,
	Confidence:    0.7,
	Reasoning:     "Based on your recent patterns, maintaining balance is key.",
	CopingStrategies: []string{
		"Practice mindfulness for 10 minutes daily",
		"Maintain regular sleep schedule",
		"Stay connected with supportive people",
	},
}

// parsePredictionReply decodes the model's reply. Anything that does not
// decode as the expected JSON object becomes the fallback draft; a broken
// reply is not an error.
func parsePredictionReply(raw string) PredictionDraft {
	var result PredictionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return PredictionDraft{PredictionResult: fallbackPrediction, Fallback: true}
	}
	return PredictionDraft{PredictionResult: result}
}

// historyItem is one mood entry as rendered into the model prompt.
type historyItem struct {
	Date      string         `json:"date"`
	MoodValue int            `json:"mood_value"`
	MoodEmoji string         `json:"mood_emoji"`
	Factors   map[string]int `json:"factors"`
	Journal   string         `json:"journal"`
}

func buildPredictionPrompt(entries []model.MoodEntry) (string, error) {
	// Oldest first so the model reads the history chronologically.
	history := make([]historyItem, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		item := historyItem{
			Date:      e.Timestamp.UTC().Format("2006-01-02 15:04"),
			MoodValue: e.MoodValue,
			MoodEmoji: e.MoodEmoji,
			Factors:   e.Factors,
		}
		if e.JournalText != nil {
			item.Journal = *e.JournalText
		}
		history = append(history, item)
	}

	historyJSON, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal mood history: %w", err)
	}

	prompt := fmt.Sprintf(`You are a compassionate mental health assistant analyzing mood patterns.

Mood History (last 14 days):
%s

Based on this mood history, provide:
1. A predicted mood value (1-5) for tomorrow
2. Your confidence level (0-1)
3. Brief reasoning about the prediction
4. 3-5 personalized coping strategies to help prepare for tomorrow

Respond in this JSON format:
{
  "predicted_mood": <float 1-5>,
  "confidence": <float 0-1>,
  "reasoning": "<your analysis>",
  "coping_strategies": ["strategy1", "strategy2", "strategy3"]
}`, historyJSON)
	return prompt, nil
}

type PredictionService interface {
	GeneratePrediction(ctx context.Context, userID string) (*model.Prediction, error)
	GetPredictions(ctx context.Context, userID string) ([]model.Prediction, error)
}

type predictionService struct {
	predictionRepo repository.PredictionRepository
	moodRepo       repository.MoodRepository
	llm            OpenAIClient
	logger         zerolog.Logger
}

func NewPredictionService(
	predictionRepo repository.PredictionRepository,
	moodRepo repository.MoodRepository,
	llm OpenAIClient,
	logger zerolog.Logger,
) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		moodRepo:       moodRepo,
		llm:            llm,
		logger:         logger.With().Str("service", "PredictionService").Logger(),
	}
}

// GeneratePrediction asks the model for a next-day forecast from the last
// two weeks of entries and persists the outcome. A model call that fails
// outright is returned as an error; a reply that fails to parse is replaced
// with the neutral fallback and still persisted.
func (s *predictionService) GeneratePrediction(ctx context.Context, userID string) (*model.Prediction, error) {
	since := time.Now().UTC().Add(-predictionHistoryDays * 24 * time.Hour)
	entries, err := s.moodRepo.GetEntriesSince(ctx, userID, since, maxListEntries)
	if err != nil {
		return nil, err
	}
	if len(entries) < minPredictionEntries {
		return nil, ErrNotEnoughHistory
	}

	prompt, err := buildPredictionPrompt(entries)
	if err != nil {
		return nil, err
	}

	reply, err := s.llm.Complete(ctx, predictionSystemMessage, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to generate prediction")
		return nil, fmt.Errorf("generate prediction: %w", err)
	}

	draft := parsePredictionReply(reply)
	if draft.Fallback {
		s.logger.Warn().Str("user_id", userID).Msg("Model reply was not valid JSON, using fallback prediction")
	}

	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	prediction := &model.Prediction{
		ID:               uuid.NewString(),
		UserID:           userID,
		PredictionDate:   tomorrow.Format("2006-01-02"),
		PredictedMood:    draft.PredictedMood,
		Confidence:       draft.Confidence,
		Reasoning:        draft.Reasoning,
		CopingStrategies: draft.CopingStrategies,
		IsActive:         true,
	}
	if err := s.predictionRepo.CreatePrediction(ctx, prediction); err != nil {
		return nil, err
	}
	return prediction, nil
}

func (s *predictionService) GetPredictions(ctx context.Context, userID string) ([]model.Prediction, error) {
	return s.predictionRepo.GetActivePredictions(ctx, userID, maxActivePredictions)
}
