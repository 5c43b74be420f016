package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/datadeck/internal/presets"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// ApplyPresetMsg is sent when a saved preset should be applied
type ApplyPresetMsg struct {
	Preset presets.Preset
}

// SavePresetMsg is sent when the current filter state should be saved
type SavePresetMsg struct {
	Name string
}

// DeletePresetMsg is sent when a preset should be deleted
type DeletePresetMsg struct {
	ID string
}

// FilterPresetsMsg asks for the listed presets to be narrowed by a query
type FilterPresetsMsg struct {
	Query string
}

// ClosePresetsMsg is sent when the presets dialog should close
type ClosePresetsMsg struct{}

// PresetsDialog lists the saved filter presets of the open collection
type PresetsDialog struct {
	Width  int
	Height int
	Theme  theme.Theme

	items  []presets.Preset
	cursor int

	saving    bool
	nameInput string

	filtering bool
	query     string

	Status string
}

// NewPresetsDialog creates a new presets dialog
func NewPresetsDialog(th theme.Theme) *PresetsDialog {
	return &PresetsDialog{
		Width:  60,
		Height: 20,
		Theme:  th,
	}
}

// Reset clears transient dialog state for a fresh open
func (pd *PresetsDialog) Reset() {
	pd.saving = false
	pd.nameInput = ""
	pd.filtering = false
	pd.query = ""
	pd.Status = ""
}

// SetPresets replaces the listed presets
func (pd *PresetsDialog) SetPresets(items []presets.Preset) {
	pd.items = items
	if pd.cursor >= len(items) {
		pd.cursor = len(items) - 1
	}
	if pd.cursor < 0 {
		pd.cursor = 0
	}
}

// Update handles keyboard input
func (pd *PresetsDialog) Update(msg tea.KeyMsg) (*PresetsDialog, tea.Cmd) {
	if pd.saving {
		return pd.handleNameInput(msg)
	}
	if pd.filtering {
		return pd.handleFilterInput(msg)
	}

	switch msg.String() {
	case "up", "k":
		if pd.cursor > 0 {
			pd.cursor--
		}
	case "down", "j":
		if pd.cursor < len(pd.items)-1 {
			pd.cursor++
		}
	case "s":
		pd.saving = true
		pd.nameInput = ""
		pd.Status = ""
	case "/":
		pd.filtering = true
		pd.query = ""
		pd.Status = ""
	case "d", "x":
		if pd.cursor >= 0 && pd.cursor < len(pd.items) {
			id := pd.items[pd.cursor].ID
			return pd, func() tea.Msg {
				return DeletePresetMsg{ID: id}
			}
		}
	case "enter":
		if pd.cursor >= 0 && pd.cursor < len(pd.items) {
			p := pd.items[pd.cursor]
			return pd, func() tea.Msg {
				return ApplyPresetMsg{Preset: p}
			}
		}
	case "esc":
		if pd.query != "" {
			// First esc drops an active filter, second closes.
			pd.query = ""
			return pd, func() tea.Msg {
				return FilterPresetsMsg{Query: ""}
			}
		}
		return pd, func() tea.Msg {
			return ClosePresetsMsg{}
		}
	}
	return pd, nil
}

// handleFilterInput narrows the list live while the query is typed.
func (pd *PresetsDialog) handleFilterInput(msg tea.KeyMsg) (*PresetsDialog, tea.Cmd) {
	switch msg.String() {
	case "esc":
		pd.filtering = false
		pd.query = ""
		return pd, func() tea.Msg {
			return FilterPresetsMsg{Query: ""}
		}
	case "enter":
		pd.filtering = false
		return pd, nil
	case "backspace":
		if len(pd.query) > 0 {
			pd.query = pd.query[:len(pd.query)-1]
		}
	default:
		if len(msg.String()) == 1 {
			pd.query += msg.String()
		} else {
			return pd, nil
		}
	}
	q := pd.query
	return pd, func() tea.Msg {
		return FilterPresetsMsg{Query: q}
	}
}

func (pd *PresetsDialog) handleNameInput(msg tea.KeyMsg) (*PresetsDialog, tea.Cmd) {
	switch msg.String() {
	case "esc":
		pd.saving = false
		pd.nameInput = ""
	case "enter":
		name := strings.TrimSpace(pd.nameInput)
		if name == "" {
			pd.Status = "Preset name cannot be empty"
			return pd, nil
		}
		pd.saving = false
		pd.nameInput = ""
		return pd, func() tea.Msg {
			return SavePresetMsg{Name: name}
		}
	case "backspace":
		if len(pd.nameInput) > 0 {
			pd.nameInput = pd.nameInput[:len(pd.nameInput)-1]
		}
	default:
		if len(msg.String()) == 1 {
			pd.nameInput += msg.String()
		}
	}
	return pd, nil
}

// View renders the presets dialog
func (pd *PresetsDialog) View() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Foreground(pd.Theme.Foreground).
		Background(pd.Theme.Info).
		Padding(0, 1).
		Bold(true)
	sections = append(sections, titleStyle.Render("Filter Presets"))

	instructionStyle := lipgloss.NewStyle().
		Foreground(pd.Theme.Muted).
		Padding(0, 1)
	switch {
	case pd.saving:
		sections = append(sections, instructionStyle.Render("Type name, Enter to save current filters, Esc to cancel"))
	case pd.filtering:
		sections = append(sections, instructionStyle.Render("Type to filter, Enter to keep, Esc to clear"))
	default:
		sections = append(sections, instructionStyle.Render("Enter=Apply s=Save current /=Filter d=Delete Esc=Close"))
	}

	if pd.Status != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(pd.Theme.Warning).
			Padding(0, 1).
			Render(pd.Status))
	}

	sections = append(sections, "")
	if len(pd.items) == 0 {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(pd.Theme.Muted).
			Padding(0, 1).
			Render("No presets saved for this collection yet"))
	}
	for i, p := range pd.items {
		label := p.Name
		ruleCount := 0
		for _, g := range p.Groups {
			ruleCount += len(g.Rules)
		}
		detail := fmt.Sprintf("%d rules", ruleCount)
		if p.Search != "" {
			detail += fmt.Sprintf(" · search %q", p.Search)
		}
		style := lipgloss.NewStyle().Padding(0, 2)
		if i == pd.cursor && !pd.saving {
			style = style.Background(pd.Theme.Selection).Foreground(pd.Theme.Foreground)
		}
		sections = append(sections, style.Render(fmt.Sprintf("%s  (%s)", label, detail)))
	}

	if pd.saving {
		sections = append(sections, "")
		sections = append(sections, fmt.Sprintf("Preset name: %s_", pd.nameInput))
	}
	if pd.filtering {
		sections = append(sections, "")
		sections = append(sections, fmt.Sprintf("Filter: %s_", pd.query))
	} else if pd.query != "" {
		sections = append(sections, "")
		sections = append(sections, instructionStyle.Render(fmt.Sprintf("filtered by %q", pd.query)))
	}

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pd.Theme.Border).
		Background(pd.Theme.Background).
		Foreground(pd.Theme.Foreground).
		Width(pd.Width).
		Height(pd.Height).
		Padding(1)

	return containerStyle.Render(strings.Join(sections, "\n"))
}
