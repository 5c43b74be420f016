// Package query turns the interacting list-view controls (search, views,
// advanced filters, sort, timeline window, pagination) into API requests and
// keeps their states consistent.
package query

import (
	"github.com/rebeliceyang/datadeck/internal/models"
	"github.com/rebeliceyang/datadeck/internal/timeline"
)

// Sentinel values meaning "not set" for sort and group-by controls.
const (
	SortNone  = "none"
	GroupNone = "none"
)

// State is the full query state of one list-view instance. It is a value;
// the With* reducers return updated copies so the pagination-reset rules
// stay auditable in one place.
type State struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string
	Filters []models.FilterGroup
	ViewID  string
	GroupBy  string
	GroupDir string
	Window   timeline.Window
}

// NewState builds the mount-time state for a view: page 1, no search, no
// advanced filters, sort and grouping taken from the view's defaults.
func NewState(view models.ViewConfig, limit int) State {
	s := State{
		Page:     1,
		Limit:    limit,
		SortBy:   SortNone,
		SortDir:  "asc",
		ViewID:   view.ID,
		GroupBy:  GroupNone,
		GroupDir: "asc",
	}
	if view.SortBy != "" {
		s.SortBy = view.SortBy
		if view.SortDir != "" {
			s.SortDir = view.SortDir
		}
	}
	if view.GroupBy != "" {
		s.GroupBy = view.GroupBy
	}
	return s
}

// WithSearch sets the search term and resets to page 1.
func (s State) WithSearch(term string) State {
	s.Search = term
	s.Page = 1
	return s
}

// WithView switches the active view, adopting its defaults and resetting to
// page 1. Search, advanced filters, and the timeline window carry over.
func (s State) WithView(view models.ViewConfig) State {
	next := NewState(view, s.Limit)
	next.Search = s.Search
	next.Filters = s.Filters
	next.Window = s.Window
	return next
}

// WithFilters replaces the advanced filter groups and resets to page 1.
func (s State) WithFilters(groups []models.FilterGroup) State {
	s.Filters = groups
	s.Page = 1
	return s
}

// WithSort sets the sort column and direction. Pagination is kept: sorting
// reorders the same result set.
func (s State) WithSort(by, dir string) State {
	s.SortBy = by
	s.SortDir = dir
	return s
}

// WithPage moves to the given 1-based page.
func (s State) WithPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// WithGroupBy sets the client-side grouping of the current page.
func (s State) WithGroupBy(key, dir string) State {
	s.GroupBy = key
	s.GroupDir = dir
	return s
}

// WithWindow sets the timeline date window and resets to page 1, since the
// window changes which records qualify.
func (s State) WithWindow(w timeline.Window) State {
	s.Window = w
	s.Page = 1
	return s
}

// HasRules reports whether any advanced filter group carries rules.
func (s State) HasRules() bool {
	for _, g := range s.Filters {
		if len(g.Rules) > 0 {
			return true
		}
	}
	return false
}
