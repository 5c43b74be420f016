package query

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rebeliceyang/datadeck/internal/models"
	"github.com/rebeliceyang/datadeck/internal/timeline"
)

func testView() models.ViewConfig {
	return models.ViewConfig{
		ID:   "archived",
		Name: "Archived",
		BaseFilters: map[string]string{
			"status":   "archived",
			"category": "all", // sentinel, must be skipped
			"owner":    "",    // empty, must be skipped
		},
	}
}

func TestBuildParamsAlwaysHasPageAndLimit(t *testing.T) {
	st := NewState(models.ViewConfig{ID: "v"}, 25)
	params := BuildParams(models.ViewConfig{ID: "v"}, st)

	if params.Get("page") != "1" || params.Get("limit") != "25" {
		t.Errorf("page/limit = %s/%s, want 1/25", params.Get("page"), params.Get("limit"))
	}
	for _, absent := range []string{"search", "sortBy", "sortDir", "advanced_filters", "start_date", "end_date"} {
		if params.Has(absent) {
			t.Errorf("param %s present, want omitted", absent)
		}
	}
}

func TestBuildParamsSearchAndSort(t *testing.T) {
	st := NewState(models.ViewConfig{ID: "v"}, 25).
		WithSearch("vhs").
		WithSort("title", "desc")
	params := BuildParams(models.ViewConfig{ID: "v"}, st)

	if params.Get("search") != "vhs" {
		t.Errorf("search = %q, want vhs", params.Get("search"))
	}
	if params.Get("sortBy") != "title" || params.Get("sortDir") != "desc" {
		t.Errorf("sort = %s/%s, want title/desc", params.Get("sortBy"), params.Get("sortDir"))
	}

	// The "none" sentinel omits sorting entirely.
	st = st.WithSort(SortNone, "asc")
	params = BuildParams(models.ViewConfig{ID: "v"}, st)
	if params.Has("sortBy") || params.Has("sortDir") {
		t.Error("sortBy/sortDir present for sentinel sort")
	}
}

func TestBuildParamsBaseFilters(t *testing.T) {
	view := testView()
	params := BuildParams(view, NewState(view, 25))

	if params.Get("status") != "archived" {
		t.Errorf("status = %q, want archived", params.Get("status"))
	}
	if params.Has("category") || params.Has("owner") {
		t.Error(`"all" and empty base filters must be skipped`)
	}
}

func TestBuildParamsAdvancedFilters(t *testing.T) {
	view := models.ViewConfig{ID: "v"}
	st := NewState(view, 25)

	// Groups with zero total rules are omitted.
	st = st.WithFilters([]models.FilterGroup{models.NewFilterGroup()})
	params := BuildParams(view, st)
	if params.Has("advanced_filters") {
		t.Error("advanced_filters present for empty groups")
	}

	// A rule without a value (is_empty) still serializes.
	group := models.NewFilterGroup()
	group.Rules = append(group.Rules, models.FilterRule{
		ID: "r1", Field: "city", Operator: models.OpIsEmpty, Logic: models.LogicAnd,
	})
	st = st.WithFilters([]models.FilterGroup{group})
	params = BuildParams(view, st)

	blob := params.Get("advanced_filters")
	if blob == "" {
		t.Fatal("advanced_filters missing")
	}
	var back []models.FilterGroup
	if err := json.Unmarshal([]byte(blob), &back); err != nil {
		t.Fatalf("advanced_filters is not valid JSON: %v", err)
	}
	if len(back) != 1 || len(back[0].Rules) != 1 {
		t.Fatalf("round trip = %+v, want 1 group with 1 rule", back)
	}
	if back[0].Rules[0].Operator != models.OpIsEmpty || back[0].Rules[0].Field != "city" {
		t.Errorf("round-tripped rule = %+v", back[0].Rules[0])
	}
}

func TestBuildParamsDateWindow(t *testing.T) {
	view := models.ViewConfig{ID: "v"}
	w := timeline.Window{Mode: timeline.ModeMonth, Anchor: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)}
	st := NewState(view, 25).WithWindow(w)

	params := BuildParams(view, st)
	if params.Get("start_date") != "2024-06-01" || params.Get("end_date") != "2024-06-30" {
		t.Errorf("window = %s..%s, want 2024-06-01..2024-06-30",
			params.Get("start_date"), params.Get("end_date"))
	}
}

func TestCacheKeyIsDeterministic(t *testing.T) {
	view := testView()
	group := models.NewFilterGroup()
	group.Rules = append(group.Rules, models.FilterRule{
		ID: "r1", Field: "title", Operator: models.OpContains, Value: "tape", Logic: models.LogicAnd,
	})
	st := NewState(view, 25).WithSearch("x").WithFilters([]models.FilterGroup{group})

	a := CacheKey("/newmedialog", BuildParams(view, st))
	b := CacheKey("/newmedialog", BuildParams(view, st))
	if a != b {
		t.Errorf("cache keys differ:\n%s\n%s", a, b)
	}

	c := CacheKey("/newmedialog", BuildParams(view, st.WithPage(2)))
	if a == c {
		t.Error("cache key unchanged across page change")
	}
}
