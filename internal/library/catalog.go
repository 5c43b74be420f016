// Package library declares the built-in collections of the data library:
// which endpoints exist, their static column catalogs, and their view
// presets. Process-wide read-only tables, initialized once.
package library

import "github.com/rebeliceyang/datadeck/internal/models"

// Collection binds an API endpoint to its column catalog and view presets.
type Collection struct {
	ID       string
	Name     string
	Endpoint string
	// IDKey is the field uniquely identifying a record in this collection.
	IDKey   string
	Columns []models.Column
	Views   []models.ViewConfig
	// DefaultVisible seeds the visible column order before the user saves
	// a layout of their own.
	DefaultVisible []string
	// Timeline enables the date-window controls for date-bearing data.
	Timeline bool
}

// Collections returns the built-in collections in sidebar order.
func Collections() []Collection {
	return []Collection{mediaLog(), events()}
}

// Find returns the collection with the given ID.
func Find(id string) (Collection, bool) {
	for _, c := range Collections() {
		if c.ID == id {
			return c, true
		}
	}
	return Collection{}, false
}

func mediaLog() Collection {
	return Collection{
		ID:       "medialog",
		Name:     "Media Log",
		Endpoint: "/newmedialog",
		IDKey:    "id",
		Columns: []models.Column{
			{Key: "title", Label: "Title", Type: models.FieldText, Sortable: true, Filterable: true},
			{Key: "media_type", Label: "Media Type", Type: models.FieldSelect, Sortable: true, Filterable: true},
			{Key: "status", Label: "Status", Type: models.FieldSelect, Sortable: true, Filterable: true},
			{Key: "city", Label: "City", Type: models.FieldText, Sortable: true, Filterable: true},
			{Key: "country", Label: "Country", Type: models.FieldText, Sortable: true, Filterable: true},
			{Key: "duration_min", Label: "Duration Min", Type: models.FieldNumber, Sortable: true, Filterable: true},
			{Key: "acquired_at", Label: "Acquired At", Type: models.FieldDate, Sortable: true, Filterable: true},
		},
		Views: []models.ViewConfig{
			{ID: "all", Name: "All"},
			{ID: "digitized", Name: "Digitized", BaseFilters: map[string]string{"status": "digitized"}},
			{ID: "pending", Name: "Pending", BaseFilters: map[string]string{"status": "pending"}, SortBy: "acquired_at", SortDir: "desc"},
			{ID: "archive", Name: "Archive", BaseFilters: map[string]string{"status": "archived"}, GroupBy: "country"},
		},
		DefaultVisible: []string{"title", "media_type", "status", "city", "acquired_at"},
		Timeline:       true,
	}
}

func events() Collection {
	return Collection{
		ID:       "events",
		Name:     "Events",
		Endpoint: "/events",
		IDKey:    "id",
		Columns: []models.Column{
			{Key: "name", Label: "Name", Type: models.FieldText, Sortable: true, Filterable: true},
			{Key: "category", Label: "Category", Type: models.FieldSelect, Sortable: true, Filterable: true},
			{Key: "venue", Label: "Venue", Type: models.FieldText, Sortable: true, Filterable: true},
			{Key: "attendees", Label: "Attendees", Type: models.FieldNumber, Sortable: true, Filterable: true},
			{Key: "starts_at", Label: "Starts At", Type: models.FieldDate, Sortable: true, Filterable: true},
		},
		Views: []models.ViewConfig{
			{ID: "all", Name: "All"},
			{ID: "upcoming", Name: "Upcoming", BaseFilters: map[string]string{"phase": "upcoming"}, SortBy: "starts_at", SortDir: "asc"},
			{ID: "past", Name: "Past", BaseFilters: map[string]string{"phase": "past"}, SortBy: "starts_at", SortDir: "desc"},
		},
		DefaultVisible: []string{"name", "category", "venue", "starts_at"},
		Timeline:       true,
	}
}

// SummaryEndpoint feeds the dashboard ticker.
const SummaryEndpoint = "/dashboard/summary"
