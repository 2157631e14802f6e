package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"moodnest/internal/model"
	"moodnest/internal/repository"
)

// Per-request read caps.
const (
	maxListEntries   = 1000
	maxExportEntries = 10000
)

type MoodService interface {
	CreateEntry(ctx context.Context, e *model.MoodEntry) (*model.MoodEntry, error)
	GetEntries(ctx context.Context, userID string, days int) ([]model.MoodEntry, error)
	GetStats(ctx context.Context, userID string, days int) (*model.MoodStats, error)
	// Export returns the full capped history along with the owning user for
	// the export envelope.
	Export(ctx context.Context, userID string) (*model.User, []model.MoodEntry, error)
}

type moodService struct {
	moodRepo repository.MoodRepository
	userRepo repository.UserRepository
}

func NewMoodService(moodRepo repository.MoodRepository, userRepo repository.UserRepository) MoodService {
	return &moodService{moodRepo: moodRepo, userRepo: userRepo}
}

func (s *moodService) CreateEntry(ctx context.Context, e *model.MoodEntry) (*model.MoodEntry, error) {
	e.ID = uuid.NewString()
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Factors == nil {
		e.Factors = map[string]int{}
	}
	if err := s.moodRepo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *moodService) GetEntries(ctx context.Context, userID string, days int) ([]model.MoodEntry, error) {
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	return s.moodRepo.GetEntriesSince(ctx, userID, since, maxListEntries)
}

// GetStats aggregates the window's entries. Factor keys come from the
// newest entry in the window; every entry contributes to each key's
// denominator whether it defines the key or not.
func (s *moodService) GetStats(ctx context.Context, userID string, days int) (*model.MoodStats, error) {
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	entries, err := s.moodRepo.GetEntriesSince(ctx, userID, since, maxListEntries)
	if err != nil {
		return nil, err
	}

	stats := &model.MoodStats{
		MoodDistribution: map[int]int{},
		AverageFactors:   map[string]float64{},
	}
	if len(entries) == 0 {
		return stats, nil
	}

	totalMood := 0
	for _, e := range entries {
		totalMood += e.MoodValue
		stats.MoodDistribution[e.MoodValue]++
	}
	for key := range entries[0].Factors {
		sum := 0
		for _, e := range entries {
			sum += e.Factors[key]
		}
		stats.AverageFactors[key] = float64(sum) / float64(len(entries))
	}

	stats.AverageMood = float64(totalMood) / float64(len(entries))
	stats.TotalEntries = len(entries)
	return stats, nil
}

func (s *moodService) Export(ctx context.Context, userID string) (*model.User, []model.MoodEntry, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	entries, err := s.moodRepo.GetAllEntries(ctx, userID, maxExportEntries)
	if err != nil {
		return nil, nil, err
	}
	return user, entries, nil
}
