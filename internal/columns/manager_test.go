package columns

import (
	"errors"
	"testing"

	"github.com/rebeliceyang/datadeck/internal/models"
)

func staticCatalog() []models.Column {
	return []models.Column{
		{Key: "city", Label: "City", Type: models.FieldText, Sortable: true, Filterable: true},
		{Key: "country", Label: "Country", Type: models.FieldText, Sortable: true, Filterable: true},
	}
}

func TestDiscoveryMergesSampleFields(t *testing.T) {
	sample := models.Record{"city": "X", "country": "Y", "extra_field": "Z"}
	m := NewManager(staticCatalog(), sample, []string{"city", "country"})

	catalog := m.Catalog()
	if len(catalog) != 3 {
		t.Fatalf("catalog size = %d, want 3", len(catalog))
	}
	discovered := catalog[2]
	if discovered.Key != "extra_field" {
		t.Errorf("discovered key = %q, want extra_field", discovered.Key)
	}
	if discovered.Label != "Extra Field" {
		t.Errorf("discovered label = %q, want Extra Field", discovered.Label)
	}
	if !discovered.Sortable || discovered.IsCustom {
		t.Errorf("discovered column flags = %+v, want sortable non-custom", discovered)
	}

	// Discovered columns start hidden.
	hidden := m.Hidden()
	if len(hidden) != 1 || hidden[0].Key != "extra_field" {
		t.Errorf("hidden = %+v, want extra_field", hidden)
	}
}

func TestDiscoveryNeverDuplicatesCatalogKeys(t *testing.T) {
	sample := models.Record{"city": "X"}
	m := NewManager(staticCatalog(), sample, nil)
	if len(m.Catalog()) != 2 {
		t.Errorf("catalog size = %d, want 2 (no duplicate city)", len(m.Catalog()))
	}
}

func TestVisibleSeedingFiltersUnknownKeys(t *testing.T) {
	m := NewManager(staticCatalog(), nil, []string{"country", "ghost", "city"})
	keys := m.VisibleKeys()
	if len(keys) != 2 || keys[0] != "country" || keys[1] != "city" {
		t.Errorf("visible keys = %v, want [country city]", keys)
	}
}

func TestToggleAndReorder(t *testing.T) {
	m := NewManager(staticCatalog(), models.Record{"extra_field": "Z"}, []string{"city", "country"})

	m.Toggle("extra_field")
	keys := m.VisibleKeys()
	if len(keys) != 3 || keys[2] != "extra_field" {
		t.Fatalf("visible after unhide = %v", keys)
	}

	m.Reorder(2, 0)
	keys = m.VisibleKeys()
	if keys[0] != "extra_field" || keys[1] != "city" {
		t.Errorf("visible after reorder = %v", keys)
	}

	// Out-of-range moves are ignored.
	m.Reorder(-1, 1)
	m.Reorder(0, 99)
	if len(m.VisibleKeys()) != 3 {
		t.Errorf("invalid reorder changed state: %v", m.VisibleKeys())
	}

	m.Toggle("city")
	if len(m.VisibleKeys()) != 2 {
		t.Errorf("hide failed: %v", m.VisibleKeys())
	}
	hidden := m.Hidden()
	if len(hidden) != 1 || hidden[0].Key != "city" {
		t.Errorf("hidden = %+v, want city", hidden)
	}
}

func TestHiddenSortedByLabel(t *testing.T) {
	static := []models.Column{
		{Key: "zed", Label: "Zed"},
		{Key: "alpha", Label: "Alpha"},
		{Key: "mid", Label: "Mid"},
	}
	m := NewManager(static, nil, nil)
	hidden := m.Hidden()
	if hidden[0].Label != "Alpha" || hidden[1].Label != "Mid" || hidden[2].Label != "Zed" {
		t.Errorf("hidden order = %+v", hidden)
	}
}

func TestAddCustomColumn(t *testing.T) {
	m := NewManager(staticCatalog(), nil, []string{"city"})

	key := m.AddCustom("Shelf Notes")
	if key != "shelf_notes" {
		t.Errorf("custom key = %q, want shelf_notes", key)
	}
	col, found := m.lookup(key)
	if !found || !col.IsCustom {
		t.Fatalf("custom column not in catalog: %+v", col)
	}

	// Same label again gets a counter suffix.
	key2 := m.AddCustom("Shelf Notes")
	if key2 != "shelf_notes_2" {
		t.Errorf("second custom key = %q, want shelf_notes_2", key2)
	}
}

func TestRemoveOnlyCustomColumns(t *testing.T) {
	m := NewManager(staticCatalog(), models.Record{"extra_field": "Z"}, []string{"city"})
	key := m.AddCustom("Notes")

	if err := m.Remove(key); err != nil {
		t.Fatalf("Remove custom returned error: %v", err)
	}
	if _, found := m.lookup(key); found {
		t.Error("custom column still in catalog after removal")
	}

	if err := m.Remove("city"); !errors.Is(err, ErrNotCustom) {
		t.Errorf("Remove static error = %v, want ErrNotCustom", err)
	}
	if err := m.Remove("extra_field"); !errors.Is(err, ErrNotCustom) {
		t.Errorf("Remove discovered error = %v, want ErrNotCustom", err)
	}
}

func TestValidateRejectsEmptyVisible(t *testing.T) {
	m := NewManager(staticCatalog(), nil, []string{"city"})
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	m.Toggle("city")
	if err := m.Validate(); !errors.Is(err, ErrNoVisibleColumns) {
		t.Errorf("Validate error = %v, want ErrNoVisibleColumns", err)
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"extra_field":   "Extra Field",
		"extraField":    "Extra Field",
		"media-type":    "Media Type",
		"id":            "Id",
		"CreatedAtDate": "Created At Date",
	}
	for in, want := range cases {
		if got := Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
