package components

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/datadeck/internal/columns"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// SaveColumnsMsg is sent when the edited layout should be saved
type SaveColumnsMsg struct {
	VisibleKeys []string
}

// CloseColumnManagerMsg is sent when the column manager should close
type CloseColumnManagerMsg struct{}

// ColumnManager is the dialog for showing, hiding, reordering and adding
// columns. It edits a columns.Manager in place; the applied layout travels
// back in SaveColumnsMsg.
type ColumnManager struct {
	Width  int
	Height int
	Theme  theme.Theme

	Columns *columns.Manager

	cursor          int
	addingCustom    bool
	customInput     string
	validationError string
}

// NewColumnManager creates a new column manager dialog
func NewColumnManager(th theme.Theme) *ColumnManager {
	return &ColumnManager{
		Width:  60,
		Height: 24,
		Theme:  th,
	}
}

// SetManager hands the dialog the layout being edited
func (cm *ColumnManager) SetManager(m *columns.Manager) {
	cm.Columns = m
	cm.cursor = 0
	cm.addingCustom = false
	cm.validationError = ""
}

// rowCount is visible columns followed by hidden columns.
func (cm *ColumnManager) rowCount() int {
	if cm.Columns == nil {
		return 0
	}
	return len(cm.Columns.Visible()) + len(cm.Columns.Hidden())
}

// keyAt maps the cursor to a column key.
func (cm *ColumnManager) keyAt(idx int) (string, bool) {
	visible := cm.Columns.Visible()
	if idx < len(visible) {
		return visible[idx].Key, true
	}
	hidden := cm.Columns.Hidden()
	idx -= len(visible)
	if idx < len(hidden) {
		return hidden[idx].Key, false
	}
	return "", false
}

// Update handles keyboard input
func (cm *ColumnManager) Update(msg tea.KeyMsg) (*ColumnManager, tea.Cmd) {
	if cm.Columns == nil {
		if msg.String() == "esc" {
			return cm, func() tea.Msg { return CloseColumnManagerMsg{} }
		}
		return cm, nil
	}

	if cm.addingCustom {
		return cm.handleCustomInput(msg)
	}

	switch msg.String() {
	case "up", "k":
		if cm.cursor > 0 {
			cm.cursor--
		}
	case "down", "j":
		if cm.cursor < cm.rowCount()-1 {
			cm.cursor++
		}
	case " ", "space":
		if key, _ := cm.keyAt(cm.cursor); key != "" {
			cm.Columns.Toggle(key)
			cm.validationError = ""
		}
	case "K", "shift+up":
		// Reorder within the visible partition only
		if cm.cursor > 0 && cm.cursor < len(cm.Columns.Visible()) {
			cm.Columns.Reorder(cm.cursor, cm.cursor-1)
			cm.cursor--
		}
	case "J", "shift+down":
		if cm.cursor < len(cm.Columns.Visible())-1 {
			cm.Columns.Reorder(cm.cursor, cm.cursor+1)
			cm.cursor++
		}
	case "a":
		cm.addingCustom = true
		cm.customInput = ""
		cm.validationError = ""
	case "d", "x":
		if key, _ := cm.keyAt(cm.cursor); key != "" {
			if err := cm.Columns.Remove(key); err != nil {
				if errors.Is(err, columns.ErrNotCustom) {
					cm.validationError = "Only custom columns can be removed; use space to hide"
				} else {
					cm.validationError = err.Error()
				}
			} else if cm.cursor >= cm.rowCount() && cm.cursor > 0 {
				cm.cursor--
			}
		}
	case "enter":
		if err := cm.Columns.Validate(); err != nil {
			cm.validationError = "At least one column must stay visible"
			return cm, nil
		}
		keys := cm.Columns.VisibleKeys()
		return cm, func() tea.Msg {
			return SaveColumnsMsg{VisibleKeys: keys}
		}
	case "esc":
		return cm, func() tea.Msg {
			return CloseColumnManagerMsg{}
		}
	}
	return cm, nil
}

func (cm *ColumnManager) handleCustomInput(msg tea.KeyMsg) (*ColumnManager, tea.Cmd) {
	switch msg.String() {
	case "esc":
		cm.addingCustom = false
		cm.customInput = ""
	case "enter":
		label := strings.TrimSpace(cm.customInput)
		if label == "" {
			cm.validationError = "Column label cannot be empty"
			return cm, nil
		}
		cm.Columns.AddCustom(label)
		cm.addingCustom = false
		cm.customInput = ""
		cm.validationError = ""
	case "backspace":
		if len(cm.customInput) > 0 {
			cm.customInput = cm.customInput[:len(cm.customInput)-1]
		}
	default:
		if len(msg.String()) == 1 {
			cm.customInput += msg.String()
		}
	}
	return cm, nil
}

// View renders the column manager
func (cm *ColumnManager) View() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Foreground(cm.Theme.Foreground).
		Background(cm.Theme.Info).
		Padding(0, 1).
		Bold(true)
	sections = append(sections, titleStyle.Render("Columns"))

	instructionStyle := lipgloss.NewStyle().
		Foreground(cm.Theme.Muted).
		Padding(0, 1)
	if cm.addingCustom {
		sections = append(sections, instructionStyle.Render("Type label, Enter to add, Esc to cancel"))
	} else {
		sections = append(sections, instructionStyle.Render("space=Show/hide J/K=Move a=Add custom d=Remove Enter=Save Esc=Cancel"))
	}

	if cm.validationError != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(cm.Theme.Error).
			Padding(0, 1).
			Bold(true)
		sections = append(sections, errorStyle.Render("Error: "+cm.validationError))
	}

	if cm.Columns != nil {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().Bold(true).Padding(0, 1).Render("Visible"))
		row := 0
		for _, col := range cm.Columns.Visible() {
			sections = append(sections, cm.renderItem(col.Label, col.IsCustom, true, row == cm.cursor))
			row++
		}
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().Bold(true).Padding(0, 1).Render("Hidden"))
		for _, col := range cm.Columns.Hidden() {
			sections = append(sections, cm.renderItem(col.Label, col.IsCustom, false, row == cm.cursor))
			row++
		}
	}

	if cm.addingCustom {
		sections = append(sections, "")
		sections = append(sections, fmt.Sprintf("New column label: %s_", cm.customInput))
	}

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cm.Theme.Border).
		Background(cm.Theme.Background).
		Foreground(cm.Theme.Foreground).
		Width(cm.Width).
		Height(cm.Height).
		Padding(1)

	return containerStyle.Render(strings.Join(sections, "\n"))
}

func (cm *ColumnManager) renderItem(label string, custom, visible, selected bool) string {
	marker := "[ ]"
	if visible {
		marker = "[x]"
	}
	if custom {
		label += " *"
	}
	style := lipgloss.NewStyle().Padding(0, 2)
	if selected && !cm.addingCustom {
		style = style.Background(cm.Theme.Selection).Foreground(cm.Theme.Foreground)
	}
	return style.Render(fmt.Sprintf("%s %s", marker, label))
}
