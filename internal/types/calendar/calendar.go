package calendar

// CalendarDay is one rendered month cell. Won comes only from an explicit
// win record; CompletedCount and Class drive the dots/coloring for the rest.
type CalendarDay struct {
	Date           string `json:"date"`
	Won            bool   `json:"won"`
	CompletedCount int    `json:"completed_count"`
	Class          string `json:"class"`
	IsToday        bool   `json:"is_today"`
}

type CalendarResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  []*CalendarDay `json:"days"`
}
