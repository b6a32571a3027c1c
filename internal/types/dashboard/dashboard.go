package dashboard

// MasteryMetrics is the personal-mastery dashboard rollup.
type MasteryMetrics struct {
	TasksCompletedThisWeek int `json:"tasks_completed_this_week"`
	BestStreak             int `json:"best_streak"`
	ConsistencyPercent     int `json:"consistency_percent"`
	ActiveGoals            int `json:"active_goals"`
}
