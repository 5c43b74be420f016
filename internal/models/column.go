package models

// Column describes one table column. Columns come from a static catalog, are
// discovered by sampling a live record, or are added by the user (IsCustom).
type Column struct {
	Key        string    `json:"key"`
	Label      string    `json:"label"`
	Type       FieldType `json:"type"`
	Sortable   bool      `json:"sortable"`
	Filterable bool      `json:"filterable"`
	IsCustom   bool      `json:"isCustom"`
}

// ViewConfig is a named filter/sort preset selectable as a tab. Base filters
// are merged with, not replaced by, ad-hoc advanced filters.
type ViewConfig struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	BaseFilters map[string]string `json:"baseFilters,omitempty"`
	SortBy      string            `json:"sortBy,omitempty"`
	SortDir     string            `json:"sortDir,omitempty"`
	GroupBy     string            `json:"groupBy,omitempty"`
}
