package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// ErrorOverlay displays an error message on top of the main view
type ErrorOverlay struct {
	Title   string
	Message string
	Theme   theme.Theme
	Width   int
}

// NewErrorOverlay creates a new error overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{
		Theme: th,
		Width: 60,
	}
}

// SetError sets the error to display
func (e *ErrorOverlay) SetError(title, message string) {
	e.Title = title
	e.Message = message
}

// View renders the error overlay
func (e *ErrorOverlay) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Error).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Foreground)

	hintStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(e.Title))
	b.WriteString("\n\n")
	b.WriteString(messageStyle.Render(e.Message))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("Esc/Enter to dismiss"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(e.Theme.Error).
		Background(e.Theme.Background).
		Padding(1, 2).
		Width(e.Width)

	return boxStyle.Render(b.String())
}
