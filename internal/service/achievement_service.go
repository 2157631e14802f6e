package service

import (
	"context"
	"math"
	"sort"
	"time"

	"moodnest/internal/model"
	"moodnest/internal/repository"
)

// achievementRule pairs an unlock predicate with a progress metric so the
// catalog stays data-driven.
type achievementRule struct {
	ID          int
	Title       string
	Description string
	Icon        string
	Requirement int
	Unlocked    func(s model.StatsSnapshot) bool
	Progress    func(s model.StatsSnapshot) int
}

var achievementCatalog = []achievementRule{
	{
		ID: 1, Title: "First Steps", Description: "Log your first mood entry", Icon: "🌱", Requirement: 1,
		Unlocked: func(s model.StatsSnapshot) bool { return s.TotalEntries >= 1 },
		Progress: func(s model.StatsSnapshot) int { return min(s.TotalEntries, 1) },
	},
	{
		ID: 2, Title: "Week Warrior", Description: "Keep a 7-day mood streak", Icon: "🔥", Requirement: 7,
		Unlocked: func(s model.StatsSnapshot) bool { return s.CurrentStreak >= 7 },
		Progress: func(s model.StatsSnapshot) int { return min(s.CurrentStreak, 7) },
	},
	{
		ID: 3, Title: "Monthly Master", Description: "Keep a 30-day mood streak", Icon: "🏆", Requirement: 30,
		Unlocked: func(s model.StatsSnapshot) bool { return s.CurrentStreak >= 30 },
		Progress: func(s model.StatsSnapshot) int { return min(s.CurrentStreak, 30) },
	},
	{
		ID: 4, Title: "Century Club", Description: "Log 100 mood entries", Icon: "💯", Requirement: 100,
		Unlocked: func(s model.StatsSnapshot) bool { return s.TotalEntries >= 100 },
		Progress: func(s model.StatsSnapshot) int { return min(s.TotalEntries, 100) },
	},
	{
		ID: 5, Title: "Happiness Hunter", Description: "Record 10 happy moods", Icon: "😊", Requirement: 10,
		Unlocked: func(s model.StatsSnapshot) bool { return s.HappyEntries >= 10 },
		Progress: func(s model.StatsSnapshot) int { return min(s.HappyEntries, 10) },
	},
	{
		// Journal-entry counting was never wired in, so this one cannot
		// unlock. Kept as-is until product decides what feeds it.
		ID: 6, Title: "Growth Mindset", Description: "Write 50 journal entries", Icon: "📝", Requirement: 50,
		Unlocked: func(s model.StatsSnapshot) bool { return false },
		Progress: func(s model.StatsSnapshot) int { return 0 },
	},
	{
		ID: 7, Title: "Worry Warrior", Description: "Add 10 worries to your worry tree", Icon: "🌳", Requirement: 10,
		Unlocked: func(s model.StatsSnapshot) bool { return s.TotalWorries >= 10 },
		Progress: func(s model.StatsSnapshot) int { return min(s.TotalWorries, 10) },
	},
	{
		ID: 8, Title: "Problem Solver", Description: "Resolve 20 worries", Icon: "✅", Requirement: 20,
		Unlocked: func(s model.StatsSnapshot) bool { return s.ResolvedWorries >= 20 },
		Progress: func(s model.StatsSnapshot) int { return min(s.ResolvedWorries, 20) },
	},
	{
		ID: 9, Title: "Year of Reflection", Description: "Keep a 365-day mood streak", Icon: "🎯", Requirement: 365,
		Unlocked: func(s model.StatsSnapshot) bool { return s.CurrentStreak >= 365 },
		Progress: func(s model.StatsSnapshot) int { return min(s.CurrentStreak, 365) },
	},
}

// DistinctDays reduces entry timestamps to their distinct UTC calendar
// dates, sorted most recent first. Multiple entries on the same day
// collapse to a single date.
func DistinctDays(timestamps []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(timestamps))
	days := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		day := ts.UTC().Truncate(24 * time.Hour)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// ComputeStreaks returns the length of the consecutive-day run ending at
// the most recent date, and the longest run anywhere in the history.
// days must be distinct calendar dates sorted most recent first.
func ComputeStreaks(days []time.Time) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}
	current = 1
	longest = 1
	run := 1
	atHead := true
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
		} else {
			atHead = false
			run = 1
		}
		if atHead {
			current = run
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}

func buildSnapshot(entries []model.MoodEntry, worries []model.Worry) model.StatsSnapshot {
	s := model.StatsSnapshot{
		TotalEntries: len(entries),
		TotalWorries: len(worries),
	}
	timestamps := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		if e.MoodValue >= 4 {
			s.HappyEntries++
		}
		timestamps = append(timestamps, e.Timestamp)
	}
	for _, w := range worries {
		if w.Category == model.WorryResolved {
			s.ResolvedWorries++
		}
	}
	s.CurrentStreak, s.LongestStreak = ComputeStreaks(DistinctDays(timestamps))
	return s
}

type AchievementService interface {
	GetAchievements(ctx context.Context, userID string) ([]model.Achievement, model.AchievementSummary, error)
}

type achievementService struct {
	moodRepo  repository.MoodRepository
	worryRepo repository.WorryRepository
}

func NewAchievementService(moodRepo repository.MoodRepository, worryRepo repository.WorryRepository) AchievementService {
	return &achievementService{moodRepo: moodRepo, worryRepo: worryRepo}
}

// GetAchievements evaluates the full catalog against the user's entry and
// worry history. It holds no state of its own; everything is recomputed
// from history on each call.
func (s *achievementService) GetAchievements(ctx context.Context, userID string) ([]model.Achievement, model.AchievementSummary, error) {
	entries, err := s.moodRepo.GetAllEntries(ctx, userID, maxExportEntries)
	if err != nil {
		return nil, model.AchievementSummary{}, err
	}
	worries, err := s.worryRepo.GetWorriesByUser(ctx, userID, maxListWorries)
	if err != nil {
		return nil, model.AchievementSummary{}, err
	}

	snapshot := buildSnapshot(entries, worries)
	achievements := make([]model.Achievement, 0, len(achievementCatalog))
	unlocked := 0
	for _, rule := range achievementCatalog {
		a := model.Achievement{
			ID:          rule.ID,
			Title:       rule.Title,
			Description: rule.Description,
			Icon:        rule.Icon,
			Unlocked:    rule.Unlocked(snapshot),
			Progress:    rule.Progress(snapshot),
			Requirement: rule.Requirement,
		}
		if a.Unlocked {
			unlocked++
		}
		achievements = append(achievements, a)
	}

	summary := model.AchievementSummary{
		Progress:   unlocked,
		Total:      len(achievementCatalog),
		Completion: int(math.Round(float64(unlocked) / float64(len(achievementCatalog)) * 100)),
	}
	return achievements, summary, nil
}
