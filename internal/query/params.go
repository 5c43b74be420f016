package query

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/rebeliceyang/datadeck/internal/models"
)

// BuildParams serializes a view's base filters and the query state into the
// flat parameter set the API accepts. Given identical inputs the encoded
// output is byte-identical, so it doubles as the fetch cache key.
func BuildParams(view models.ViewConfig, st State) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(st.Page))
	params.Set("limit", strconv.Itoa(st.Limit))

	if st.Search != "" {
		params.Set("search", st.Search)
	}

	if st.SortBy != "" && st.SortBy != SortNone {
		params.Set("sortBy", st.SortBy)
		params.Set("sortDir", st.SortDir)
	}

	// View base filters are plain equality parameters. Empty values and the
	// "all" sentinel mean the filter is off.
	for field, value := range view.BaseFilters {
		if value == "" || value == "all" {
			continue
		}
		params.Set(field, value)
	}

	if st.HasRules() {
		if blob, err := json.Marshal(st.Filters); err == nil {
			params.Set("advanced_filters", string(blob))
		}
	}

	if st.Window.Active() {
		params.Set("start_date", st.Window.StartISO())
		params.Set("end_date", st.Window.EndISO())
	}

	return params
}

// CacheKey identifies one exact fetch. A fetch is issued whenever the key
// changes; responses are matched back against it.
func CacheKey(endpoint string, params url.Values) string {
	// url.Values.Encode sorts by key, so the key is deterministic.
	return endpoint + "?" + params.Encode()
}
