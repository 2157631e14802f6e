package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"moodnest/internal/model"
)

// MoodRepository defines mood-entry DB operations.
type MoodRepository interface {
	CreateEntry(ctx context.Context, e *model.MoodEntry) error
	// GetEntriesSince returns a user's entries with timestamp >= since,
	// newest first, capped at limit.
	GetEntriesSince(ctx context.Context, userID string, since time.Time, limit int) ([]model.MoodEntry, error)
	// GetAllEntries returns a user's entries newest first, capped at limit.
	GetAllEntries(ctx context.Context, userID string, limit int) ([]model.MoodEntry, error)
}

type moodRepo struct {
	db *sql.DB
}

func NewMoodRepo(db *sql.DB) MoodRepository {
	return &moodRepo{db: db}
}

func (r *moodRepo) CreateEntry(ctx context.Context, e *model.MoodEntry) error {
	factors, err := json.Marshal(e.Factors)
	if err != nil {
		return fmt.Errorf("marshal factors: %w", err)
	}
	query := `INSERT INTO mood_entries (id, user_id, mood_value, mood_emoji, mood_color, factors, journal_text, timestamp)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`
	err = r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.MoodValue, e.MoodEmoji, e.MoodColor, factors, e.JournalText, e.Timestamp,
	).Scan(&e.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *moodRepo) GetEntriesSince(ctx context.Context, userID string, since time.Time, limit int) ([]model.MoodEntry, error) {
	query := `SELECT id, user_id, mood_value, mood_emoji, mood_color, factors, journal_text, timestamp, created_at
              FROM mood_entries WHERE user_id = $1 AND timestamp >= $2 ORDER BY timestamp DESC LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, userID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	return scanMoodEntries(rows)
}

func (r *moodRepo) GetAllEntries(ctx context.Context, userID string, limit int) ([]model.MoodEntry, error) {
	query := `SELECT id, user_id, mood_value, mood_emoji, mood_color, factors, journal_text, timestamp, created_at
              FROM mood_entries WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	return scanMoodEntries(rows)
}

func scanMoodEntries(rows *sql.Rows) ([]model.MoodEntry, error) {
	defer rows.Close()

	entries := []model.MoodEntry{}
	for rows.Next() {
		var e model.MoodEntry
		var rawFactors []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.MoodValue, &e.MoodEmoji, &e.MoodColor, &rawFactors, &e.JournalText, &e.Timestamp, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		if err := json.Unmarshal(rawFactors, &e.Factors); err != nil {
			return nil, fmt.Errorf("unmarshal factors for entry %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}
