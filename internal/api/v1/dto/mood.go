package dto

import "time"

// MoodEntryCreateDTO is the create request body. MoodValue outside [1,5]
// fails validation.
type MoodEntryCreateDTO struct {
	MoodValue   int            `json:"mood_value" validate:"required,min=1,max=5"`
	MoodEmoji   string         `json:"mood_emoji"`
	MoodColor   string         `json:"mood_color"`
	Factors     map[string]int `json:"factors"`
	JournalText *string        `json:"journal_text,omitempty"`
	Timestamp   *time.Time     `json:"timestamp,omitempty"`
}

// MoodEntryResponseDTO is returned in API responses.
type MoodEntryResponseDTO struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	MoodValue   int            `json:"mood_value"`
	MoodEmoji   string         `json:"mood_emoji"`
	MoodColor   string         `json:"mood_color"`
	Factors     map[string]int `json:"factors"`
	JournalText *string        `json:"journal_text"`
	Timestamp   time.Time      `json:"timestamp"`
	CreatedAt   time.Time      `json:"created_at"`
}

// MoodStatsResponseDTO aggregates a day window of entries.
type MoodStatsResponseDTO struct {
	AverageMood      float64            `json:"average_mood"`
	TotalEntries     int                `json:"total_entries"`
	MoodDistribution map[int]int        `json:"mood_distribution"`
	AverageFactors   map[string]float64 `json:"average_factors"`
}

// MoodExportEntryDTO is one entry inside an export. Timestamp is ISO-8601.
type MoodExportEntryDTO struct {
	MoodValue   int            `json:"mood_value"`
	MoodEmoji   string         `json:"mood_emoji"`
	MoodColor   string         `json:"mood_color"`
	Factors     map[string]int `json:"factors"`
	JournalText *string        `json:"journal_text"`
	Timestamp   string         `json:"timestamp"`
}

// MoodExportUserDTO identifies the owner inside an export.
type MoodExportUserDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MoodExportResponseDTO is the full export envelope.
type MoodExportResponseDTO struct {
	User         MoodExportUserDTO    `json:"user"`
	ExportDate   string               `json:"export_date"`
	TotalEntries int                  `json:"total_entries"`
	Entries      []MoodExportEntryDTO `json:"entries"`
}
