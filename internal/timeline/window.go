// Package timeline derives the start/end date pair sent to the API when the
// timeline is scoping results to a day, week, month, or year around an
// anchor date.
package timeline

import "time"

// ViewMode is the coarseness of the timeline window.
type ViewMode string

const (
	ModeDay   ViewMode = "day"
	ModeWeek  ViewMode = "week"
	ModeMonth ViewMode = "month"
	ModeYear  ViewMode = "year"
)

// Window is a view mode plus an anchor date. The zero value is inactive.
type Window struct {
	Mode   ViewMode
	Anchor time.Time
}

// Active reports whether the window should scope API queries.
func (w Window) Active() bool {
	return w.Mode != "" && !w.Anchor.IsZero()
}

// Range returns the inclusive [start, end] days covered by the window.
// Weeks run Monday through Sunday.
func (w Window) Range() (time.Time, time.Time) {
	day := time.Date(w.Anchor.Year(), w.Anchor.Month(), w.Anchor.Day(), 0, 0, 0, 0, time.UTC)
	switch w.Mode {
	case ModeWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6)
	case ModeMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	case ModeYear:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return day, day
	}
}

// StartISO returns the window start formatted for the start_date parameter.
func (w Window) StartISO() string {
	start, _ := w.Range()
	return start.Format("2006-01-02")
}

// EndISO returns the window end formatted for the end_date parameter.
func (w Window) EndISO() string {
	_, end := w.Range()
	return end.Format("2006-01-02")
}

// Next returns the window advanced by one unit of its mode.
func (w Window) Next() Window {
	return w.shift(1)
}

// Prev returns the window moved back by one unit of its mode.
func (w Window) Prev() Window {
	return w.shift(-1)
}

func (w Window) shift(n int) Window {
	switch w.Mode {
	case ModeWeek:
		w.Anchor = w.Anchor.AddDate(0, 0, 7*n)
	case ModeMonth:
		w.Anchor = w.Anchor.AddDate(0, n, 0)
	case ModeYear:
		w.Anchor = w.Anchor.AddDate(n, 0, 0)
	default:
		w.Anchor = w.Anchor.AddDate(0, 0, n)
	}
	return w
}
