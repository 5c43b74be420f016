package query

import (
	"errors"
	"testing"

	"github.com/rebeliceyang/datadeck/internal/models"
)

func page(totalPages, totalItems int, titles ...string) *models.ListPage {
	records := make([]models.Record, len(titles))
	for i, title := range titles {
		records[i] = models.Record{"title": title}
	}
	return &models.ListPage{
		Data:       records,
		Pagination: models.Pagination{TotalPages: totalPages, TotalItems: totalItems},
	}
}

func newTestController() *Controller {
	return NewController("/newmedialog", models.ViewConfig{ID: "all", Name: "All"}, 25)
}

func TestFirstPlanIsLoading(t *testing.T) {
	c := newTestController()
	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %d, want idle", c.Phase())
	}

	req := c.Plan()
	if req == nil {
		t.Fatal("Plan returned nil, want first fetch")
	}
	if c.Phase() != PhaseLoading {
		t.Errorf("phase = %d, want loading", c.Phase())
	}

	c.Apply(Result{Seq: req.Seq, Key: req.Key, Page: page(3, 70, "a", "b")})
	if c.Phase() != PhaseReady {
		t.Errorf("phase = %d, want ready", c.Phase())
	}
	if len(c.Records()) != 2 || c.TotalPages() != 3 || c.TotalItems() != 70 {
		t.Errorf("page not applied: %d records, %d pages", len(c.Records()), c.TotalPages())
	}
}

func TestPlanDeduplicatesUnchangedKey(t *testing.T) {
	c := newTestController()
	req := c.Plan()
	c.Apply(Result{Seq: req.Seq, Key: req.Key, Page: page(1, 1, "a")})

	if again := c.Plan(); again != nil {
		t.Errorf("Plan after unchanged state = %+v, want nil", again)
	}

	// While a fetch for the same key is in flight, no duplicate is planned.
	c.SetPage(1)
	if again := c.Plan(); again != nil {
		t.Errorf("Plan for identical key = %+v, want nil", again)
	}

	// Manual refresh bypasses de-duplication.
	if c.Refresh() == nil {
		t.Error("Refresh returned nil, want forced request")
	}
}

func TestSearchChangeResetsPage(t *testing.T) {
	c := newTestController()
	req := c.Plan()
	c.Apply(Result{Seq: req.Seq, Key: req.Key, Page: page(5, 120, "a")})

	c.SetPage(4)
	req = c.Plan()
	if req.Params.Get("page") != "4" {
		t.Fatalf("page param = %s, want 4", req.Params.Get("page"))
	}
	c.Apply(Result{Seq: req.Seq, Key: req.Key, Page: page(5, 120, "d")})

	c.SetSearch("tape")
	req = c.Plan()
	if req.Params.Get("page") != "1" {
		t.Errorf("page after search change = %s, want 1", req.Params.Get("page"))
	}
}

func TestFilterAndViewChangesResetPage(t *testing.T) {
	c := newTestController()
	req := c.Plan()
	c.Apply(Result{Seq: req.Seq, Key: req.Key, Page: page(9, 200, "a")})
	c.SetPage(7)

	group := models.NewFilterGroup()
	group.Rules = append(group.Rules, models.FilterRule{
		ID: "r", Field: "city", Operator: models.OpContains, Value: "x", Logic: models.LogicAnd,
	})
	c.SetFilters([]models.FilterGroup{group})
	if c.State().Page != 1 {
		t.Errorf("page after filter change = %d, want 1", c.State().Page)
	}

	c.SetPage(3)
	c.SetView(models.ViewConfig{ID: "archived", Name: "Archived"})
	if c.State().Page != 1 {
		t.Errorf("page after view change = %d, want 1", c.State().Page)
	}

	// Filters carry over across the view switch; they are merged with, not
	// replaced by, the view's base filters.
	if !c.State().HasRules() {
		t.Error("advanced filters lost on view change")
	}
}

func TestLastIssuedRequestWins(t *testing.T) {
	c := newTestController()

	reqA := c.Plan()
	c.SetSearch("beta")
	reqB := c.Plan()
	if reqB == nil || reqB.Seq <= reqA.Seq {
		t.Fatalf("request B not issued after A: %+v", reqB)
	}

	// B resolves first and must stick.
	c.Apply(Result{Seq: reqB.Seq, Key: reqB.Key, Page: page(1, 1, "beta-result")})
	if got := c.Records()[0].DisplayString("title"); got != "beta-result" {
		t.Fatalf("displayed = %q, want beta-result", got)
	}

	// A's late arrival is discarded.
	c.Apply(Result{Seq: reqA.Seq, Key: reqA.Key, Page: page(1, 1, "alpha-result")})
	if got := c.Records()[0].DisplayString("title"); got != "beta-result" {
		t.Errorf("stale response overwrote state: displayed = %q", got)
	}
	if c.Phase() != PhaseReady {
		t.Errorf("phase = %d, want ready", c.Phase())
	}
}

func TestLeftoverResultFromRebuiltViewDiscarded(t *testing.T) {
	// A controller is torn down with a request still in flight, then the
	// same collection is reopened. The fresh controller restarts its
	// sequence counter, so the leftover response can collide on Seq with a
	// request the new instance issued for different parameters.
	old := newTestController()
	old.Plan()
	old.SetSearch("old")
	leftover := old.Plan()

	c := newTestController()
	c.Plan()
	c.SetSearch("new")
	req := c.Plan()
	if req.Seq != leftover.Seq {
		t.Fatalf("seq = %d and %d, want colliding counters", req.Seq, leftover.Seq)
	}
	c.Apply(Result{Seq: req.Seq, Key: req.Key, Page: page(1, 1, "new-result")})

	c.Apply(Result{Seq: leftover.Seq, Key: leftover.Key, Page: page(1, 1, "old-result")})
	if got := c.Records()[0].DisplayString("title"); got != "new-result" {
		t.Errorf("leftover response overwrote state: displayed = %q", got)
	}
}

func TestErrorKeepsPreviousData(t *testing.T) {
	c := newTestController()
	req := c.Plan()
	c.Apply(Result{Seq: req.Seq, Key: req.Key, Page: page(1, 2, "a", "b")})

	c.SetSearch("boom")
	req = c.Plan()
	if c.Phase() != PhaseRefetching {
		t.Fatalf("phase = %d, want refetching while data visible", c.Phase())
	}
	c.Apply(Result{Seq: req.Seq, Key: req.Key, Err: errors.New("api /newmedialog returned status 500: oops")})

	if c.Phase() != PhaseError {
		t.Errorf("phase = %d, want error", c.Phase())
	}
	if c.ErrText() == "" {
		t.Error("error text empty")
	}
	if len(c.Records()) != 2 {
		t.Errorf("previous records dropped on error: %d left", len(c.Records()))
	}

	// An error leaves the key unapplied, so the same parameters can be
	// retried by planning again.
	if c.Plan() == nil {
		t.Error("Plan after error = nil, want retry request")
	}
}

func TestSetPageClampsToKnownRange(t *testing.T) {
	c := newTestController()
	req := c.Plan()
	c.Apply(Result{Seq: req.Seq, Key: req.Key, Page: page(3, 70, "a")})

	c.SetPage(99)
	if c.State().Page != 3 {
		t.Errorf("page = %d, want clamp to 3", c.State().Page)
	}
	c.SetPage(0)
	if c.State().Page != 1 {
		t.Errorf("page = %d, want clamp to 1", c.State().Page)
	}
}
