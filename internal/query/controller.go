package query

import (
	"context"
	"net/url"

	"github.com/rebeliceyang/datadeck/internal/models"
	"github.com/rebeliceyang/datadeck/internal/timeline"
)

// Phase is the lifecycle state of a list view's data.
type Phase int

const (
	// PhaseIdle means no fetch has been planned yet.
	PhaseIdle Phase = iota
	// PhaseLoading means the first fetch is in flight and there is nothing
	// to show.
	PhaseLoading
	// PhaseReady means the current page is displayed.
	PhaseReady
	// PhaseRefetching means parameters changed; the previous page stays
	// visible (dimmed) until the new one arrives.
	PhaseRefetching
	// PhaseError means the last fetch failed; previous data is retained.
	PhaseError
)

// Fetcher issues list requests. *api.Client implements it.
type Fetcher interface {
	FetchList(ctx context.Context, endpoint string, params url.Values) (*models.ListPage, error)
}

// Request describes one planned fetch. Seq orders requests by issuance so
// late-arriving responses for superseded parameter sets can be discarded.
type Request struct {
	Seq      uint64
	Endpoint string
	Params   url.Values
	Key      string
}

// Result carries a fetch outcome back to the controller. Seq and Key echo
// the originating Request so the controller can match it against what it is
// currently waiting for.
type Result struct {
	Seq  uint64
	Key  string
	Page *models.ListPage
	Err  error
}

// Controller orchestrates fetch-on-parameter-change for one list view:
// pagination-reset rules, staleness, loading phases, and last-issued-wins
// response ordering. It holds no goroutines itself; the caller runs the
// requests it plans and feeds results back through Apply.
type Controller struct {
	endpoint string
	view     models.ViewConfig
	state    State

	phase   Phase
	page    *models.ListPage
	errText string

	seq        uint64
	pendingKey string
	appliedKey string
}

// NewController creates a controller for a view instance at its defaults.
func NewController(endpoint string, view models.ViewConfig, limit int) *Controller {
	return &Controller{
		endpoint: endpoint,
		view:     view,
		state:    NewState(view, limit),
		phase:    PhaseIdle,
	}
}

// State returns the current query state.
func (c *Controller) State() State { return c.state }

// View returns the active view config.
func (c *Controller) View() models.ViewConfig { return c.view }

// Endpoint returns the resource path this controller fetches.
func (c *Controller) Endpoint() string { return c.endpoint }

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Page returns the last successfully fetched page, if any.
func (c *Controller) Page() *models.ListPage { return c.page }

// Records returns the current page's records, or nil before the first fetch.
func (c *Controller) Records() []models.Record {
	if c.page == nil {
		return nil
	}
	return c.page.Data
}

// TotalPages returns the server-reported page count, minimum 1.
func (c *Controller) TotalPages() int {
	if c.page == nil || c.page.Pagination.TotalPages < 1 {
		return 1
	}
	return c.page.Pagination.TotalPages
}

// TotalItems returns the server-reported item count.
func (c *Controller) TotalItems() int {
	if c.page == nil {
		return 0
	}
	return c.page.Pagination.TotalItems
}

// ErrText returns the visible error message, empty when none.
func (c *Controller) ErrText() string { return c.errText }

// SetSearch updates the search term, resetting to page 1 on change.
func (c *Controller) SetSearch(term string) {
	if term == c.state.Search {
		return
	}
	c.state = c.state.WithSearch(term)
}

// SetView switches the active view preset, resetting to page 1.
func (c *Controller) SetView(view models.ViewConfig) {
	if view.ID == c.view.ID {
		return
	}
	c.view = view
	c.state = c.state.WithView(view)
}

// SetFilters replaces the advanced filter groups, resetting to page 1.
func (c *Controller) SetFilters(groups []models.FilterGroup) {
	c.state = c.state.WithFilters(groups)
}

// SetSort updates the sort column and direction.
func (c *Controller) SetSort(by, dir string) {
	c.state = c.state.WithSort(by, dir)
}

// SetPage moves to a 1-based page, clamped to the known page range.
func (c *Controller) SetPage(page int) {
	if page > c.TotalPages() {
		page = c.TotalPages()
	}
	c.state = c.state.WithPage(page)
}

// SetGroupBy changes client-side grouping. Grouping operates on the already
// fetched page, so no refetch is planned for it.
func (c *Controller) SetGroupBy(key, dir string) {
	c.state = c.state.WithGroupBy(key, dir)
}

// SetWindow applies a timeline date window, resetting to page 1.
func (c *Controller) SetWindow(w timeline.Window) {
	c.state = c.state.WithWindow(w)
}

// Plan returns the next fetch to run, or nil when the current data already
// matches the parameter set (simple request de-duplication). Each returned
// request supersedes all earlier ones.
func (c *Controller) Plan() *Request {
	params := BuildParams(c.view, c.state)
	key := CacheKey(c.endpoint, params)
	if key == c.appliedKey && c.page != nil && c.phase != PhaseError {
		return nil
	}
	if key == c.pendingKey && (c.phase == PhaseLoading || c.phase == PhaseRefetching) {
		return nil
	}
	return c.issue(params, key)
}

// Refresh forces a fetch of the current parameter set, bypassing
// de-duplication. Used for the manual refresh key.
func (c *Controller) Refresh() *Request {
	params := BuildParams(c.view, c.state)
	return c.issue(params, CacheKey(c.endpoint, params))
}

func (c *Controller) issue(params url.Values, key string) *Request {
	c.seq++
	c.pendingKey = key
	if c.page == nil {
		c.phase = PhaseLoading
	} else {
		c.phase = PhaseRefetching
	}
	return &Request{Seq: c.seq, Endpoint: c.endpoint, Params: params, Key: key}
}

// Apply feeds a fetch result back. Responses for any request other than the
// most recently issued one are discarded, so out-of-order completion never
// regresses displayed state. The parameter key is checked alongside the
// sequence number: sequence counters restart when a view is rebuilt, so a
// leftover response from a previous controller instance can collide on Seq
// while carrying a different parameter set. Errors keep the previous page
// visible.
func (c *Controller) Apply(res Result) {
	if res.Seq != c.seq || res.Key != c.pendingKey {
		return
	}
	if res.Err != nil {
		c.phase = PhaseError
		c.errText = res.Err.Error()
		return
	}
	c.page = res.Page
	c.appliedKey = c.pendingKey
	c.errText = ""
	c.phase = PhaseReady
}
