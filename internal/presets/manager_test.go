package presets

import (
	"testing"

	"github.com/rebeliceyang/datadeck/internal/models"
)

func sampleGroups() []models.FilterGroup {
	g := models.NewFilterGroup()
	r := models.NewFilterRule("status", models.FieldSelect)
	r.Value = "digitized"
	g.Rules = append(g.Rules, r)
	return []models.FilterGroup{g}
}

func TestAddAndReload(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	p, err := m.Add("Digitized only", "", "medialog", "", sampleGroups())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.ID == "" {
		t.Error("preset should get an ID")
	}

	// A fresh manager over the same directory sees the saved preset.
	m2, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager reload: %v", err)
	}
	got := m2.ForCollection("medialog")
	if len(got) != 1 || got[0].Name != "Digitized only" {
		t.Errorf("ForCollection = %+v", got)
	}
	if len(got[0].Groups) != 1 || len(got[0].Groups[0].Rules) != 1 {
		t.Errorf("groups did not survive round trip: %+v", got[0].Groups)
	}
	if got[0].Groups[0].Rules[0].Operator != models.OpEquals {
		t.Errorf("operator = %q, want %q", got[0].Groups[0].Rules[0].Operator, models.OpEquals)
	}
}

func TestAddRejectsDuplicateNamePerCollection(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := m.Add("Mine", "", "medialog", "", sampleGroups()); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if _, err := m.Add("mine", "", "medialog", "", sampleGroups()); err == nil {
		t.Error("duplicate name accepted within a collection")
	}
	// Same name in a different collection is fine.
	if _, err := m.Add("Mine", "", "events", "", sampleGroups()); err != nil {
		t.Errorf("same name in other collection rejected: %v", err)
	}
}

func TestAddRejectsEmptyPreset(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	empty := []models.FilterGroup{models.NewFilterGroup()}
	if _, err := m.Add("Nothing", "", "medialog", "", empty); err == nil {
		t.Error("preset with no search and no rules accepted")
	}
	if _, err := m.Add("Search only", "", "medialog", "tape", empty); err != nil {
		t.Errorf("search-only preset rejected: %v", err)
	}
}

func TestSearchScopedToCollection(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := m.Add("Digitized tapes", "", "medialog", "", sampleGroups()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := m.Add("Lisbon", "everything shot in town", "medialog", "", sampleGroups()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := m.Add("Digitized events", "", "events", "", sampleGroups()); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got := m.Search("medialog", "digitized")
	if len(got) != 1 || got[0].Name != "Digitized tapes" {
		t.Errorf("Search(medialog, digitized) = %+v, want the medialog preset only", got)
	}

	// Descriptions are searched too, case-insensitively.
	got = m.Search("medialog", "TOWN")
	if len(got) != 1 || got[0].Name != "Lisbon" {
		t.Errorf("Search by description = %+v", got)
	}

	if got = m.Search("medialog", ""); len(got) != 2 {
		t.Errorf("empty query = %d presets, want all 2 for the collection", len(got))
	}
}

func TestDeleteAndUsage(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	p, err := m.Add("Mine", "", "medialog", "", sampleGroups())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := m.RecordUsage(p.ID); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}
	got, err := m.Get(p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UsageCount != 1 {
		t.Errorf("usage count = %d, want 1", got.UsageCount)
	}

	if err := m.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Delete(p.ID); err == nil {
		t.Error("deleting a missing preset should error")
	}
}
