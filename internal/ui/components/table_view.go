package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/datadeck/internal/models"
	"github.com/rebeliceyang/datadeck/internal/present"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// tableRow is one rendered line: either a group header or a record.
type tableRow struct {
	isHeader bool
	label    string
	cells    []string
	record   models.Record
}

// TableView displays one page of records with optional group headers
type TableView struct {
	Theme  theme.Theme
	Width  int
	Height int
	Style  lipgloss.Style

	// Sort indicator state
	SortBy  string
	SortDir string

	// Stale dims the rows while a replacement page is in flight.
	Stale bool

	columns []models.Column
	rows    []tableRow

	// Scrolling state
	TopRow      int
	VisibleRows int
	SelectedRow int

	// Pagination footer
	Page       int
	TotalPages int
	TotalItems int

	columnWidths []int
}

// NewTableView creates a new table view
func NewTableView(th theme.Theme) *TableView {
	return &TableView{Theme: th}
}

// SetData replaces the table contents with a freshly grouped page.
func (tv *TableView) SetData(columns []models.Column, groups []present.Group, page, totalPages, totalItems int) {
	tv.columns = columns
	tv.Page = page
	tv.TotalPages = totalPages
	tv.TotalItems = totalItems

	tv.rows = tv.rows[:0]
	for _, g := range groups {
		if g.Label != "" {
			tv.rows = append(tv.rows, tableRow{isHeader: true, label: fmt.Sprintf("%s (%d)", g.Label, len(g.Records))})
		}
		for _, rec := range g.Records {
			cells := make([]string, len(columns))
			for i, col := range columns {
				cells[i] = rec.DisplayString(col.Key)
			}
			tv.rows = append(tv.rows, tableRow{cells: cells, record: rec})
		}
	}

	if tv.SelectedRow >= len(tv.rows) {
		tv.SelectedRow = len(tv.rows) - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	if tv.TopRow > tv.SelectedRow {
		tv.TopRow = tv.SelectedRow
	}
	tv.skipHeader(1)
	tv.calculateColumnWidths()
}

// RowCount returns the number of record rows (group headers excluded).
func (tv *TableView) RowCount() int {
	n := 0
	for _, r := range tv.rows {
		if !r.isHeader {
			n++
		}
	}
	return n
}

// SelectedRecord returns the record under the cursor, or nil on a header.
func (tv *TableView) SelectedRecord() models.Record {
	if tv.SelectedRow < 0 || tv.SelectedRow >= len(tv.rows) {
		return nil
	}
	return tv.rows[tv.SelectedRow].record
}

// calculateColumnWidths sizes columns to header and cell content
func (tv *TableView) calculateColumnWidths() {
	if len(tv.columns) == 0 {
		return
	}

	tv.columnWidths = make([]int, len(tv.columns))
	for i, col := range tv.columns {
		// Room for the sort indicator next to the label.
		tv.columnWidths[i] = runewidth.StringWidth(col.Label) + 2
	}

	for _, row := range tv.rows {
		for i, cell := range row.cells {
			if i < len(tv.columnWidths) {
				if w := runewidth.StringWidth(cell); w > tv.columnWidths[i] {
					tv.columnWidths[i] = w
				}
			}
		}
	}

	maxWidth := 40
	for i := range tv.columnWidths {
		if tv.columnWidths[i] > maxWidth {
			tv.columnWidths[i] = maxWidth
		}
		if tv.columnWidths[i] < 8 {
			tv.columnWidths[i] = 8
		}
	}
}

// View renders the table
func (tv *TableView) View() string {
	if len(tv.columns) == 0 {
		return tv.Style.Render("No data")
	}

	var b strings.Builder

	b.WriteString(tv.renderHeader())
	b.WriteString("\n")
	b.WriteString(tv.renderSeparator())
	b.WriteString("\n")

	// Header + separator + footer
	tv.VisibleRows = tv.Height - 3
	if tv.VisibleRows < 1 {
		tv.VisibleRows = 1
	}

	endRow := tv.TopRow + tv.VisibleRows
	if endRow > len(tv.rows) {
		endRow = len(tv.rows)
	}

	for i := tv.TopRow; i < endRow; i++ {
		b.WriteString(tv.renderRow(tv.rows[i], i == tv.SelectedRow))
		if i < endRow-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tv.renderFooter())

	return tv.Style.Width(tv.Width).Height(tv.Height).Render(b.String())
}

func (tv *TableView) renderHeader() string {
	var parts []string
	for i, col := range tv.columns {
		label := col.Label
		if col.Key == tv.SortBy {
			switch tv.SortDir {
			case "asc":
				label += " ▲"
			case "desc":
				label += " ▼"
			}
		}
		parts = append(parts, tv.pad(label, tv.columnWidths[i]))
	}
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tv.Theme.TableHeader)
	return headerStyle.Render(" " + strings.Join(parts, " │ ") + " ")
}

func (tv *TableView) renderSeparator() string {
	var parts []string
	for _, width := range tv.columnWidths {
		parts = append(parts, strings.Repeat("─", width))
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Border).
		Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (tv *TableView) renderRow(row tableRow, selected bool) string {
	if row.isHeader {
		style := lipgloss.NewStyle().
			Foreground(tv.Theme.GroupHeader).
			Bold(true)
		if selected {
			style = style.Background(tv.Theme.TableRowSelected)
		}
		return style.Render(" ▸ " + row.label)
	}

	var parts []string
	for i, cell := range row.cells {
		if i >= len(tv.columnWidths) {
			break
		}
		parts = append(parts, tv.pad(cell, tv.columnWidths[i]))
	}
	line := " " + strings.Join(parts, " │ ") + " "

	if selected {
		return lipgloss.NewStyle().
			Background(tv.Theme.TableRowSelected).
			Foreground(tv.Theme.Foreground).
			Bold(true).
			Render(line)
	}
	if tv.Stale {
		return lipgloss.NewStyle().Foreground(tv.Theme.Muted).Render(line)
	}
	return line
}

func (tv *TableView) renderFooter() string {
	footer := fmt.Sprintf(" page %d/%d · %d items", tv.Page, max(tv.TotalPages, 1), tv.TotalItems)
	if tv.Stale {
		footer += " · refreshing…"
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Muted).
		Italic(true).
		Render(footer)
}

func (tv *TableView) pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}

// MoveSelection moves the cursor, skipping group header rows.
func (tv *TableView) MoveSelection(delta int) {
	tv.SelectedRow += delta
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	if tv.SelectedRow >= len(tv.rows) {
		tv.SelectedRow = len(tv.rows) - 1
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}
	tv.skipHeader(dir)

	if tv.SelectedRow < tv.TopRow {
		tv.TopRow = tv.SelectedRow
	}
	if tv.VisibleRows > 0 && tv.SelectedRow >= tv.TopRow+tv.VisibleRows {
		tv.TopRow = tv.SelectedRow - tv.VisibleRows + 1
	}
}

// skipHeader nudges the cursor off a group header row in the given direction.
func (tv *TableView) skipHeader(dir int) {
	for tv.SelectedRow >= 0 && tv.SelectedRow < len(tv.rows) && tv.rows[tv.SelectedRow].isHeader {
		next := tv.SelectedRow + dir
		if next < 0 || next >= len(tv.rows) {
			dir = -dir
			next = tv.SelectedRow + dir
			if next < 0 || next >= len(tv.rows) {
				return
			}
		}
		tv.SelectedRow = next
	}
}

// PageUp/PageDown scroll by one screen within the loaded page
func (tv *TableView) PageUp() {
	tv.MoveSelection(-tv.VisibleRows)
	tv.TopRow = tv.SelectedRow
}

func (tv *TableView) PageDown() {
	tv.MoveSelection(tv.VisibleRows)
	tv.TopRow = tv.SelectedRow
	if tv.TopRow+tv.VisibleRows > len(tv.rows) {
		tv.TopRow = len(tv.rows) - tv.VisibleRows
		if tv.TopRow < 0 {
			tv.TopRow = 0
		}
	}
}
