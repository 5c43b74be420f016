package components

import (
	"encoding/json"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/datadeck/internal/models"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// DetailPane shows the raw record under the table cursor as pretty-printed
// JSON, wrapped in a {type, data} envelope so the payload names its origin.
type DetailPane struct {
	Width     int
	MaxHeight int

	// Visibility state
	Visible bool

	record     models.Record
	recordType string
	scrollY    int
	lines      []string

	Theme theme.Theme
	style lipgloss.Style
}

// NewDetailPane creates a new detail pane
func NewDetailPane(th theme.Theme) *DetailPane {
	return &DetailPane{
		Width:     80,
		MaxHeight: 12,
		Theme:     th,
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1),
	}
}

// SetRecord sets the record to display. recordType names the collection the
// record came from.
func (p *DetailPane) SetRecord(rec models.Record, recordType string) {
	p.record = rec
	p.recordType = recordType
	p.scrollY = 0
	p.lines = nil
}

// envelope is the exported detail shape.
type envelope struct {
	Type string        `json:"type"`
	Data models.Record `json:"data"`
}

// CopyToClipboard puts the envelope JSON on the system clipboard.
func (p *DetailPane) CopyToClipboard() error {
	if p.record == nil {
		return nil
	}
	data, err := json.MarshalIndent(envelope{Type: p.recordType, Data: p.record}, "", "  ")
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}

// formatContent renders and wraps the envelope JSON lazily.
func (p *DetailPane) formatContent() {
	if p.record == nil {
		p.lines = []string{}
		return
	}

	contentWidth := p.Width - p.style.GetHorizontalFrameSize()
	if contentWidth < 10 {
		contentWidth = 10
	}

	data, err := json.MarshalIndent(envelope{Type: p.recordType, Data: p.record}, "", "  ")
	if err != nil {
		p.lines = []string{"(unrenderable record)"}
		return
	}

	p.lines = wrapText(string(data), contentWidth)
}

// wrapText wraps text to fit within maxWidth, rune-width aware.
func wrapText(text string, maxWidth int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= maxWidth {
			result = append(result, line)
			continue
		}

		current := ""
		currentWidth := 0
		for _, r := range line {
			rWidth := runewidth.RuneWidth(r)
			if currentWidth+rWidth > maxWidth {
				result = append(result, current)
				current = string(r)
				currentWidth = rWidth
			} else {
				current += string(r)
				currentWidth += rWidth
			}
		}
		if current != "" {
			result = append(result, current)
		}
	}
	return result
}

// Scroll moves the viewport by delta lines.
func (p *DetailPane) Scroll(delta int) {
	if p.lines == nil {
		p.formatContent()
	}
	p.scrollY += delta
	maxScroll := len(p.lines) - p.contentHeight()
	if p.scrollY > maxScroll {
		p.scrollY = maxScroll
	}
	if p.scrollY < 0 {
		p.scrollY = 0
	}
}

func (p *DetailPane) contentHeight() int {
	h := p.MaxHeight - p.style.GetVerticalFrameSize() - 1 // title line
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the detail pane
func (p *DetailPane) View() string {
	if !p.Visible {
		return ""
	}
	if p.lines == nil {
		p.formatContent()
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Info).
		Bold(true)

	height := p.contentHeight()
	end := p.scrollY + height
	if end > len(p.lines) {
		end = len(p.lines)
	}
	start := p.scrollY
	if start > end {
		start = end
	}

	var b strings.Builder
	title := "Record"
	if p.recordType != "" {
		title = "Record · " + p.recordType
	}
	b.WriteString(titleStyle.Render(title))
	if len(p.lines) > height {
		b.WriteString(lipgloss.NewStyle().Foreground(p.Theme.Muted).Render(" (ctrl+e/ctrl+y scroll, y copy)"))
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(p.lines[start:end], "\n"))

	return p.style.Width(p.Width).Render(b.String())
}
