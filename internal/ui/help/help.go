package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Esc/Enter", "Dismiss error"},
		{"Tab", "Switch panel focus"},
		{"r, F5", "Refresh current view"},
	}
}

// GetViewKeys returns view and navigation key bindings
func GetViewKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k, ↓/j", "Move selection"},
		{"Ctrl+U/Ctrl+D", "Scroll half page"},
		{"h/l, ←/→", "Previous / next page"},
		{"[ ]", "Previous / next view tab"},
		{"1-9", "Jump to view tab"},
		{"Enter", "Open collection (sidebar)"},
	}
}

// GetDataKeys returns data key bindings
func GetDataKeys() []KeyBinding {
	return []KeyBinding{
		{"/", "Search"},
		{"f", "Advanced filters"},
		{"Ctrl+R", "Clear search and filters"},
		{"s, Shift+S", "Sort ascending / descending"},
		{"G", "Cycle group-by column"},
		{"C", "Manage columns"},
		{"p", "Filter presets"},
		{"v", "Toggle record detail"},
		{"y", "Copy record as JSON"},
	}
}

// GetTimelineExportKeys returns timeline and export key bindings
func GetTimelineExportKeys() []KeyBinding {
	return []KeyBinding{
		{"t", "Cycle timeline mode (day/week/month/year)"},
		{"T", "Turn timeline off"},
		{"{ }", "Previous / next timeline window"},
		{"e", "Export page as CSV"},
		{"E", "Export page as JSON"},
	}
}

// Render creates the help view
func Render(width, height int, theme lipgloss.Style) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62")).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("75")).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("datadeck - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	writeSection := func(name string, keys []KeyBinding) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, kb := range keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	writeSection("Global", GetGlobalKeys())
	writeSection("Navigation", GetViewKeys())
	writeSection("Data", GetDataKeys())
	writeSection("Timeline & Export", GetTimelineExportKeys())

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(width - 4).
		Height(height - 4)

	return boxStyle.Render(b.String())
}
