package components

import (
	"testing"

	"github.com/rebeliceyang/datadeck/internal/library"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

func TestSidebarSelect(t *testing.T) {
	s := NewSidebar(library.Collections(), theme.DefaultTheme())

	if !s.Select("events") {
		t.Fatal("Select(events) = false, want known collection")
	}
	if c, ok := s.Active(); !ok || c.ID != "events" {
		t.Errorf("active = %+v, want events", c)
	}

	if s.Select("nope") {
		t.Error("Select accepted an unknown ID")
	}
	if c, _ := s.Active(); c.ID != "events" {
		t.Errorf("failed Select changed the active collection to %s", c.ID)
	}
}
