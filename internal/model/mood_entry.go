package model

import "time"

// MoodEntry is a single mood check-in. Entries are immutable once written.
type MoodEntry struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"user_id"`
	MoodValue   int            `db:"mood_value" json:"mood_value"`
	MoodEmoji   string         `db:"mood_emoji" json:"mood_emoji"`
	MoodColor   string         `db:"mood_color" json:"mood_color"`
	Factors     map[string]int `db:"factors" json:"factors"`
	JournalText *string        `db:"journal_text" json:"journal_text"`
	Timestamp   time.Time      `db:"timestamp" json:"timestamp"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// MoodStats is the aggregate view over a day window.
type MoodStats struct {
	AverageMood      float64            `json:"average_mood"`
	TotalEntries     int                `json:"total_entries"`
	MoodDistribution map[int]int        `json:"mood_distribution"`
	AverageFactors   map[string]float64 `json:"average_factors"`
}
