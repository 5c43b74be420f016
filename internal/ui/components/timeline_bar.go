package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/datadeck/internal/timeline"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// TimelineBar renders the active date window above the table
type TimelineBar struct {
	Theme theme.Theme
}

// NewTimelineBar creates a timeline bar
func NewTimelineBar(th theme.Theme) *TimelineBar {
	return &TimelineBar{Theme: th}
}

// View renders the current window, or a hint when the timeline is off.
func (tb *TimelineBar) View(w timeline.Window) string {
	if !w.Active() {
		return lipgloss.NewStyle().
			Foreground(tb.Theme.Muted).
			Render(" timeline off · t: day/week/month/year")
	}

	modeStyle := lipgloss.NewStyle().
		Foreground(tb.Theme.Background).
		Background(tb.Theme.Info).
		Bold(true).
		Padding(0, 1)

	rangeStyle := lipgloss.NewStyle().
		Foreground(tb.Theme.Foreground).
		Padding(0, 1)

	hintStyle := lipgloss.NewStyle().
		Foreground(tb.Theme.Muted)

	label := w.StartISO()
	if w.StartISO() != w.EndISO() {
		label = fmt.Sprintf("%s → %s", w.StartISO(), w.EndISO())
	}

	return modeStyle.Render(string(w.Mode)) +
		rangeStyle.Render(label) +
		hintStyle.Render("[/]: prev/next · t: mode · T: off")
}
