// Package present reduces an already-fetched page of records into the shape
// the table renders: buckets grouped by a field value. Grouping never spans
// pages; it operates only on the records handed to it.
package present

import (
	"sort"

	"github.com/rebeliceyang/datadeck/internal/models"
)

// GroupNone disables grouping.
const GroupNone = "none"

// UngroupedLabel is the bucket for records whose group field is missing or
// empty.
const UngroupedLabel = "Ungrouped"

// Group is one ordered bucket of records.
type Group struct {
	Label   string
	Records []models.Record
}

// GroupPage buckets records by the given field. With groupBy "none" or empty
// it returns a single unlabeled group preserving input order. Group labels
// sort lexicographically by direction ("asc"/"desc"); record order within a
// group is the input order.
func GroupPage(records []models.Record, groupBy, direction string) []Group {
	if groupBy == "" || groupBy == GroupNone {
		return []Group{{Label: "", Records: records}}
	}

	byLabel := make(map[string][]models.Record)
	var labels []string
	for _, r := range records {
		label := groupLabel(r, groupBy)
		if _, seen := byLabel[label]; !seen {
			labels = append(labels, label)
		}
		byLabel[label] = append(byLabel[label], r)
	}

	sort.Strings(labels)
	if direction == "desc" {
		for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
			labels[i], labels[j] = labels[j], labels[i]
		}
	}

	groups := make([]Group, 0, len(labels))
	for _, label := range labels {
		groups = append(groups, Group{Label: label, Records: byLabel[label]})
	}
	return groups
}

// groupLabel maps missing and falsy field values to the Ungrouped bucket.
func groupLabel(r models.Record, key string) string {
	v, ok := r.Field(key)
	if !ok || v == nil {
		return UngroupedLabel
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return UngroupedLabel
		}
		return val
	case bool:
		if !val {
			return UngroupedLabel
		}
		return "true"
	case float64:
		if val == 0 {
			return UngroupedLabel
		}
		return r.DisplayString(key)
	default:
		return r.DisplayString(key)
	}
}
