package components

import (
	"testing"

	"github.com/rebeliceyang/datadeck/internal/presets"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

func TestPresetsFilterEmitsLiveQuery(t *testing.T) {
	pd := NewPresetsDialog(theme.DefaultTheme())
	pd.SetPresets([]presets.Preset{{ID: "1", Name: "Digitized"}})

	pd, _ = pd.Update(keyMsg("/"))
	pd, cmd := pd.Update(keyMsg("d"))
	if cmd == nil {
		t.Fatal("typing in filter mode should emit a query")
	}
	msg, ok := cmd().(FilterPresetsMsg)
	if !ok || msg.Query != "d" {
		t.Fatalf("emitted %+v, want FilterPresetsMsg{d}", msg)
	}

	// Esc inside filter mode clears the query.
	pd, cmd = pd.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc should emit a clearing query")
	}
	if msg := cmd().(FilterPresetsMsg); msg.Query != "" {
		t.Errorf("cleared query = %q, want empty", msg.Query)
	}

	// With no filter active, esc closes the dialog.
	_, cmd = pd.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc should close the dialog")
	}
	if _, ok := cmd().(ClosePresetsMsg); !ok {
		t.Error("esc without a filter should close, not re-filter")
	}
}

func TestPresetsResetClearsTransientState(t *testing.T) {
	pd := NewPresetsDialog(theme.DefaultTheme())
	pd, _ = pd.Update(keyMsg("/"))
	pd, _ = pd.Update(keyMsg("x"))
	pd.Status = "stale"

	pd.Reset()
	if pd.filtering || pd.query != "" || pd.Status != "" {
		t.Errorf("Reset left state behind: %+v", pd)
	}
}
