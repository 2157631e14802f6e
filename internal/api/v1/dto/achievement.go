package dto

// AchievementDTO is a single badge with the caller's progress toward it.
type AchievementDTO struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	Requirement int    `json:"requirement"`
}

// AchievementSummaryDTO aggregates unlock counts across the catalog.
type AchievementSummaryDTO struct {
	Progress   int `json:"progress"`
	Total      int `json:"total"`
	Completion int `json:"completion"`
}

// AchievementsResponseDTO is returned when listing achievements.
type AchievementsResponseDTO struct {
	Achievements []AchievementDTO      `json:"achievements"`
	Summary      AchievementSummaryDTO `json:"summary"`
}
