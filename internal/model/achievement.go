package model

// Achievement is the evaluated state of one catalog entry for a user.
// Progress is clamped to Requirement.
type Achievement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	Requirement int    `json:"requirement"`
}

// AchievementSummary rolls up the catalog: Progress counts unlocked entries
// and Completion is the percentage of the catalog unlocked.
type AchievementSummary struct {
	Progress   int `json:"progress"`
	Total      int `json:"total"`
	Completion int `json:"completion"`
}

// StatsSnapshot holds the per-user counters the achievement rules read.
// It is assembled once per request and never persisted.
type StatsSnapshot struct {
	TotalEntries    int
	HappyEntries    int
	TotalWorries    int
	ResolvedWorries int
	CurrentStreak   int
	LongestStreak   int
}
