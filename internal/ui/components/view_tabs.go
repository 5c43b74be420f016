package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/datadeck/internal/models"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// ViewTabs renders the view presets of a collection as a tab bar
type ViewTabs struct {
	Theme theme.Theme

	views     []models.ViewConfig
	activeIdx int
}

// NewViewTabs creates a new view tab bar
func NewViewTabs(th theme.Theme) *ViewTabs {
	return &ViewTabs{Theme: th}
}

// SetViews replaces the tabs, keeping the first one active
func (vt *ViewTabs) SetViews(views []models.ViewConfig) {
	vt.views = views
	vt.activeIdx = 0
}

// Active returns the currently selected view
func (vt *ViewTabs) Active() models.ViewConfig {
	if len(vt.views) == 0 {
		return models.ViewConfig{}
	}
	return vt.views[vt.activeIdx]
}

// Next switches to the next tab, wrapping around
func (vt *ViewTabs) Next() {
	if len(vt.views) > 0 {
		vt.activeIdx = (vt.activeIdx + 1) % len(vt.views)
	}
}

// Prev switches to the previous tab, wrapping around
func (vt *ViewTabs) Prev() {
	if len(vt.views) > 0 {
		vt.activeIdx = (vt.activeIdx - 1 + len(vt.views)) % len(vt.views)
	}
}

// Select activates a tab by index
func (vt *ViewTabs) Select(idx int) {
	if idx >= 0 && idx < len(vt.views) {
		vt.activeIdx = idx
	}
}

// Count returns the number of tabs
func (vt *ViewTabs) Count() int {
	return len(vt.views)
}

// View renders the tab bar
func (vt *ViewTabs) View(width int) string {
	if len(vt.views) == 0 {
		return ""
	}

	var tabViews []string
	for i, view := range vt.views {
		label := fmt.Sprintf("[%d] %s", i+1, view.Name)

		maxLabelLen := width / len(vt.views)
		if maxLabelLen < 12 {
			maxLabelLen = 12
		}
		if len(label) > maxLabelLen {
			label = label[:maxLabelLen-3] + "..."
		}

		var style lipgloss.Style
		if i == vt.activeIdx {
			style = lipgloss.NewStyle().
				Foreground(vt.Theme.Background).
				Background(vt.Theme.Info).
				Bold(true).
				Padding(0, 1)
		} else {
			style = lipgloss.NewStyle().
				Foreground(vt.Theme.Foreground).
				Background(vt.Theme.Selection).
				Padding(0, 1)
		}

		tabViews = append(tabViews, style.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabViews...)
}
