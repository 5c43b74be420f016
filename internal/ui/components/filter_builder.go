package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/datadeck/internal/models"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// ApplyFiltersMsg is sent when the current rule set should be applied
type ApplyFiltersMsg struct {
	Groups []models.FilterGroup
}

// CloseFilterBuilderMsg is sent when the filter builder should close
type CloseFilterBuilderMsg struct{}

// builderEntry addresses one navigable row: a group header or a rule.
type builderEntry struct {
	groupIdx int
	ruleIdx  int // -1 for the group header
}

// FilterBuilder provides an interactive UI for building advanced filters
type FilterBuilder struct {
	Width  int
	Height int
	Theme  theme.Theme

	rules   *models.RuleSet
	columns []models.Column

	// State
	cursor          int
	editMode        string // "", "field", "operator", "value"
	fieldInput      string
	operatorIndex   int
	valueInput      string
	validationError string

	// Pending rule being edited
	targetGroup   string
	selectedField models.Column
	availableOps  []models.FilterOperator
}

// NewFilterBuilder creates a new filter builder
func NewFilterBuilder(th theme.Theme) *FilterBuilder {
	return &FilterBuilder{
		Width:  80,
		Height: 30,
		Theme:  th,
		rules:  models.NewRuleSet(),
	}
}

// SetColumns updates the filterable columns
func (fb *FilterBuilder) SetColumns(columns []models.Column) {
	fb.columns = fb.columns[:0]
	for _, c := range columns {
		if c.Filterable {
			fb.columns = append(fb.columns, c)
		}
	}
}

// SetGroups seeds the builder with an already applied rule set
func (fb *FilterBuilder) SetGroups(groups []models.FilterGroup) {
	fb.rules = models.NewRuleSet()
	fb.rules.Restore(groups)
	fb.cursor = 0
}

// Groups returns a copy of the rule set being edited
func (fb *FilterBuilder) Groups() []models.FilterGroup {
	return fb.rules.Groups()
}

// entries flattens groups and rules into navigable rows.
func (fb *FilterBuilder) entries() []builderEntry {
	var out []builderEntry
	for gi, g := range fb.rules.Groups() {
		out = append(out, builderEntry{groupIdx: gi, ruleIdx: -1})
		for ri := range g.Rules {
			out = append(out, builderEntry{groupIdx: gi, ruleIdx: ri})
		}
	}
	return out
}

// Update handles keyboard input
func (fb *FilterBuilder) Update(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	switch fb.editMode {
	case "":
		return fb.handleNavigationMode(msg)
	case "field":
		return fb.handleFieldMode(msg)
	case "operator":
		return fb.handleOperatorMode(msg)
	case "value":
		return fb.handleValueMode(msg)
	}
	return fb, nil
}

// handleNavigationMode handles keys in navigation mode
func (fb *FilterBuilder) handleNavigationMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	entries := fb.entries()
	switch msg.String() {
	case "up", "k":
		if fb.cursor > 0 {
			fb.cursor--
		}
	case "down", "j":
		if fb.cursor < len(entries)-1 {
			fb.cursor++
		}
	case "a", "n":
		// Add a rule to the group under the cursor
		if len(fb.columns) == 0 {
			fb.validationError = "No filterable columns available"
			return fb, nil
		}
		fb.targetGroup = fb.currentGroupID()
		fb.editMode = "field"
		fb.fieldInput = ""
		fb.validationError = ""
	case "g":
		fb.rules.AddGroup()
		fb.cursor = len(fb.entries()) - 1
	case "d", "x":
		fb.deleteCurrent()
	case "o":
		// Toggle the AND/OR joining the current row with its predecessor
		fb.toggleLogic()
	case "c":
		fb.rules.Clear()
		fb.cursor = 0
	case "enter":
		// Applying with no rules clears the advanced filter.
		fb.validationError = ""
		groups := fb.rules.Groups()
		return fb, func() tea.Msg {
			return ApplyFiltersMsg{Groups: groups}
		}
	case "esc":
		return fb, func() tea.Msg {
			return CloseFilterBuilderMsg{}
		}
	}
	return fb, nil
}

// currentGroupID returns the group the cursor is in (or the last group).
func (fb *FilterBuilder) currentGroupID() string {
	groups := fb.rules.Groups()
	entries := fb.entries()
	if fb.cursor >= 0 && fb.cursor < len(entries) {
		return groups[entries[fb.cursor].groupIdx].ID
	}
	return groups[len(groups)-1].ID
}

func (fb *FilterBuilder) deleteCurrent() {
	entries := fb.entries()
	if fb.cursor < 0 || fb.cursor >= len(entries) {
		return
	}
	groups := fb.rules.Groups()
	e := entries[fb.cursor]
	if e.ruleIdx < 0 {
		if err := fb.rules.RemoveGroup(groups[e.groupIdx].ID); err != nil {
			fb.validationError = "At least one group must remain"
			return
		}
	} else {
		fb.rules.RemoveRule(groups[e.groupIdx].ID, groups[e.groupIdx].Rules[e.ruleIdx].ID)
	}
	fb.validationError = ""
	if fb.cursor >= len(fb.entries()) {
		fb.cursor = len(fb.entries()) - 1
	}
}

func (fb *FilterBuilder) toggleLogic() {
	entries := fb.entries()
	if fb.cursor < 0 || fb.cursor >= len(entries) {
		return
	}
	groups := fb.rules.Groups()
	e := entries[fb.cursor]
	g := groups[e.groupIdx]
	flip := func(l models.FilterLogic) models.FilterLogic {
		if l == models.LogicAnd {
			return models.LogicOr
		}
		return models.LogicAnd
	}
	if e.ruleIdx < 0 {
		fb.rules.SetGroupLogic(g.ID, flip(g.Logic))
	} else {
		r := g.Rules[e.ruleIdx]
		fb.rules.SetRuleLogic(g.ID, r.ID, flip(r.Logic))
	}
}

// handleFieldMode handles field selection
func (fb *FilterBuilder) handleFieldMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fb.editMode = ""
		fb.fieldInput = ""
		fb.validationError = ""
	case "enter":
		col, ok := fb.matchColumn(fb.fieldInput)
		if !ok {
			fb.validationError = fmt.Sprintf("Column '%s' not found", fb.fieldInput)
			return fb, nil
		}
		fb.selectedField = col
		fb.availableOps = models.OperatorsForType(col.Type)
		fb.editMode = "operator"
		fb.operatorIndex = 0
		fb.validationError = ""
	case "backspace":
		if len(fb.fieldInput) > 0 {
			fb.fieldInput = fb.fieldInput[:len(fb.fieldInput)-1]
		}
	default:
		if len(msg.String()) == 1 {
			fb.fieldInput += msg.String()
		}
	}
	return fb, nil
}

// matchColumn resolves typed input to a filterable column, exact match first,
// then unique prefix.
func (fb *FilterBuilder) matchColumn(input string) (models.Column, bool) {
	for _, col := range fb.columns {
		if strings.EqualFold(col.Key, input) || strings.EqualFold(col.Label, input) {
			return col, true
		}
	}
	var hit models.Column
	hits := 0
	lower := strings.ToLower(input)
	for _, col := range fb.columns {
		if strings.HasPrefix(strings.ToLower(col.Key), lower) ||
			strings.HasPrefix(strings.ToLower(col.Label), lower) {
			hit = col
			hits++
		}
	}
	if hits == 1 && input != "" {
		return hit, true
	}
	return models.Column{}, false
}

// handleOperatorMode handles operator selection
func (fb *FilterBuilder) handleOperatorMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fb.editMode = "field"
	case "up", "k":
		if fb.operatorIndex > 0 {
			fb.operatorIndex--
		}
	case "down", "j":
		if fb.operatorIndex < len(fb.availableOps)-1 {
			fb.operatorIndex++
		}
	case "enter":
		selectedOp := fb.availableOps[fb.operatorIndex]
		if !models.OperatorNeedsValue(selectedOp) {
			fb.commitRule(selectedOp, nil)
			fb.editMode = ""
		} else {
			fb.editMode = "value"
			fb.valueInput = ""
		}
	}
	return fb, nil
}

// handleValueMode handles value input
func (fb *FilterBuilder) handleValueMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fb.editMode = "operator"
		fb.valueInput = ""
	case "enter":
		op := fb.availableOps[fb.operatorIndex]
		value, err := parseValue(fb.selectedField.Type, op, fb.valueInput)
		if err != nil {
			fb.validationError = err.Error()
			return fb, nil
		}
		fb.commitRule(op, value)
		fb.editMode = ""
		fb.valueInput = ""
		fb.validationError = ""
	case "backspace":
		if len(fb.valueInput) > 0 {
			fb.valueInput = fb.valueInput[:len(fb.valueInput)-1]
		}
	default:
		if len(msg.String()) == 1 {
			fb.valueInput += msg.String()
		}
	}
	return fb, nil
}

// commitRule writes the edited rule into the rule set.
func (fb *FilterBuilder) commitRule(op models.FilterOperator, value any) {
	r := fb.rules.AddRule(fb.targetGroup, fb.selectedField.Key, fb.selectedField.Type)
	if r == nil {
		return
	}
	fb.rules.SetRuleOperator(fb.targetGroup, r.ID, op)
	fb.rules.SetRuleValue(fb.targetGroup, r.ID, value)
}

// parseValue converts typed input into the rule's value shape: a list for
// in/not_in (comma separated), a two-element pair for between, a number for
// number fields, the raw string otherwise.
func parseValue(t models.FieldType, op models.FilterOperator, input string) (any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("value cannot be empty")
	}

	if models.OperatorTakesList(op) {
		parts := strings.Split(input, ",")
		values := make([]any, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("enter at least one value")
		}
		return values, nil
	}

	if models.OperatorTakesPair(op) {
		parts := strings.SplitN(input, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("between takes two values separated by a comma")
		}
		lo, hi := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if t == models.FieldNumber {
			nlo, err1 := strconv.ParseFloat(lo, 64)
			nhi, err2 := strconv.ParseFloat(hi, 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("'%s' is not a numeric range", input)
			}
			return []any{nlo, nhi}, nil
		}
		return []any{lo, hi}, nil
	}

	if t == models.FieldNumber {
		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a number", input)
		}
		return n, nil
	}

	return input, nil
}

// View renders the filter builder
func (fb *FilterBuilder) View() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Foreground(fb.Theme.Foreground).
		Background(fb.Theme.Info).
		Padding(0, 1).
		Bold(true)
	sections = append(sections, titleStyle.Render("Advanced Filters"))

	instructionStyle := lipgloss.NewStyle().
		Foreground(fb.Theme.Muted).
		Padding(0, 1)

	var instructions string
	switch fb.editMode {
	case "field":
		instructions = "Type column name, Enter to confirm, Esc to cancel"
	case "operator":
		instructions = "↑↓ Select operator, Enter to confirm, Esc to go back"
	case "value":
		instructions = "Type value (comma-separate lists/ranges), Enter to confirm"
	default:
		instructions = "a=Add rule g=Add group d=Delete o=AND/OR c=Clear Enter=Apply Esc=Cancel"
	}
	sections = append(sections, instructionStyle.Render(instructions))

	if fb.validationError != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(fb.Theme.Error).
			Padding(0, 1).
			Bold(true)
		sections = append(sections, errorStyle.Render("Error: "+fb.validationError))
	}

	sections = append(sections, "")
	sections = append(sections, fb.renderGroups()...)

	if fb.editMode != "" {
		sections = append(sections, "")
		switch fb.editMode {
		case "field":
			sections = append(sections, fmt.Sprintf("Column: %s_", fb.fieldInput))
		case "operator":
			sections = append(sections, fmt.Sprintf("Column: %s", fb.selectedField.Label))
			sections = append(sections, "Select operator:")
			for i, op := range fb.availableOps {
				style := lipgloss.NewStyle().Padding(0, 1)
				if i == fb.operatorIndex {
					style = style.Background(fb.Theme.Selection).Foreground(fb.Theme.Foreground)
				}
				sections = append(sections, style.Render(fmt.Sprintf("  %s", op)))
			}
		case "value":
			sections = append(sections, fmt.Sprintf("Column: %s %s", fb.selectedField.Label, fb.availableOps[fb.operatorIndex]))
			sections = append(sections, fmt.Sprintf("Value: %s_", fb.valueInput))
		}
	}

	content := strings.Join(sections, "\n")

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fb.Theme.Border).
		Background(fb.Theme.Background).
		Foreground(fb.Theme.Foreground).
		Width(fb.Width).
		Height(fb.Height).
		Padding(1)

	return containerStyle.Render(content)
}

// renderGroups renders the group/rule rows with the cursor highlight.
func (fb *FilterBuilder) renderGroups() []string {
	var out []string
	row := 0
	for gi, g := range fb.rules.Groups() {
		header := fmt.Sprintf("Group %d", gi+1)
		if gi > 0 {
			header = fmt.Sprintf("%s  Group %d", g.Logic, gi+1)
		}
		style := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(fb.Theme.GroupHeader)
		if row == fb.cursor && fb.editMode == "" {
			style = style.Background(fb.Theme.Selection)
		}
		out = append(out, style.Render(header))
		row++

		if len(g.Rules) == 0 {
			out = append(out, lipgloss.NewStyle().Foreground(fb.Theme.Muted).Padding(0, 3).Render("(no rules)"))
		}
		for ri, r := range g.Rules {
			label := fmt.Sprintf("%s %s %s", fb.columnLabel(r.Field), r.Operator, formatValue(r))
			if ri > 0 {
				label = fmt.Sprintf("%s  %s", r.Logic, label)
			}
			style := lipgloss.NewStyle().Padding(0, 3)
			if row == fb.cursor && fb.editMode == "" {
				style = style.Background(fb.Theme.Selection).Foreground(fb.Theme.Foreground)
			}
			out = append(out, style.Render(label))
			row++
		}
	}
	return out
}

func (fb *FilterBuilder) columnLabel(key string) string {
	for _, c := range fb.columns {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}

func formatValue(r models.FilterRule) string {
	if !models.OperatorNeedsValue(r.Operator) {
		return ""
	}
	switch v := r.Value.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = fmt.Sprintf("%v", p)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
