package components

import (
	"strings"
	"testing"

	"github.com/rebeliceyang/datadeck/internal/models"
	"github.com/rebeliceyang/datadeck/internal/present"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

func testColumns() []models.Column {
	return []models.Column{
		{Key: "title", Label: "Title", Type: models.FieldText, Sortable: true},
		{Key: "city", Label: "City", Type: models.FieldText, Sortable: true},
	}
}

func groupedData() []present.Group {
	return []present.Group{
		{Label: "Lisbon", Records: []models.Record{
			{"title": "Tape A", "city": "Lisbon"},
		}},
		{Label: "Porto", Records: []models.Record{
			{"title": "Tape B", "city": "Porto"},
			{"title": "Tape C", "city": "Porto"},
		}},
	}
}

func TestSetDataCountsRecordRowsOnly(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme())
	tv.SetData(testColumns(), groupedData(), 1, 1, 3)

	if got := tv.RowCount(); got != 3 {
		t.Errorf("RowCount = %d, want 3", got)
	}
	// 2 group headers + 3 records
	if got := len(tv.rows); got != 5 {
		t.Errorf("total rows = %d, want 5", got)
	}
}

func TestSelectionSkipsGroupHeaders(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme())
	tv.Height = 20
	tv.SetData(testColumns(), groupedData(), 1, 1, 3)

	// Initial selection lands on the first record, not the header.
	if rec := tv.SelectedRecord(); rec == nil || rec.DisplayString("title") != "Tape A" {
		t.Fatalf("initial selection = %v", rec)
	}

	tv.MoveSelection(1)
	if rec := tv.SelectedRecord(); rec == nil || rec.DisplayString("title") != "Tape B" {
		t.Errorf("after move down selection = %v, want Tape B", rec)
	}

	tv.MoveSelection(-1)
	if rec := tv.SelectedRecord(); rec == nil || rec.DisplayString("title") != "Tape A" {
		t.Errorf("after move up selection = %v, want Tape A", rec)
	}
}

func TestUngroupedPageHasNoHeaderRows(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme())
	records := []models.Record{{"title": "Tape A", "city": "Lisbon"}}
	tv.SetData(testColumns(), present.GroupPage(records, "none", "asc"), 1, 1, 1)

	if got := len(tv.rows); got != 1 {
		t.Errorf("total rows = %d, want 1", got)
	}
	if tv.rows[0].isHeader {
		t.Error("ungrouped page should not render a header row")
	}
}

func TestViewShowsSortIndicatorAndFooter(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme())
	tv.Width = 80
	tv.Height = 12
	tv.SortBy = "title"
	tv.SortDir = "desc"
	tv.SetData(testColumns(), groupedData(), 2, 4, 57)

	out := tv.View()
	if !strings.Contains(out, "▼") {
		t.Error("descending sort indicator missing from header")
	}
	if !strings.Contains(out, "page 2/4") {
		t.Errorf("footer missing pagination: %q", out)
	}
	if !strings.Contains(out, "57 items") {
		t.Error("footer missing item count")
	}
}

func TestStaleFooterMarksRefresh(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme())
	tv.Width = 80
	tv.Height = 12
	tv.Stale = true
	tv.SetData(testColumns(), groupedData(), 1, 1, 3)

	if !strings.Contains(tv.View(), "refreshing") {
		t.Error("stale table should announce the refresh in its footer")
	}
}
