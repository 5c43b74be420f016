// Package filter evaluates advanced filter groups against in-memory records.
// It is the local counterpart of the backend's advanced_filters handling and
// must keep the same operator semantics, including inclusive "between"
// bounds. The backend side is opaque pass-through JSON, so equivalence
// cannot be verified from here; any divergence is a backend bug surface.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rebeliceyang/datadeck/internal/dateparse"
	"github.com/rebeliceyang/datadeck/internal/models"
)

// Evaluate returns the records matching the filter groups. Rules inside a
// group and groups against each other chain strictly left to right: the
// accumulated result is combined with the next predicate using that
// predicate's own AND/OR logic, with no precedence beyond the group/rule
// nesting. Groups without rules are skipped.
func Evaluate(records []models.Record, groups []models.FilterGroup) []models.Record {
	active := make([]models.FilterGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Rules) > 0 {
			active = append(active, g)
		}
	}
	if len(active) == 0 {
		return records
	}

	var out []models.Record
	for _, r := range records {
		if matchGroups(r, active) {
			out = append(out, r)
		}
	}
	return out
}

func matchGroups(r models.Record, groups []models.FilterGroup) bool {
	acc := matchGroup(r, groups[0])
	for _, g := range groups[1:] {
		m := matchGroup(r, g)
		if g.Logic == models.LogicOr {
			acc = acc || m
		} else {
			acc = acc && m
		}
	}
	return acc
}

func matchGroup(r models.Record, g models.FilterGroup) bool {
	acc := matchRule(r, g.Rules[0])
	for _, rule := range g.Rules[1:] {
		m := matchRule(r, rule)
		if rule.Logic == models.LogicOr {
			acc = acc || m
		} else {
			acc = acc && m
		}
	}
	return acc
}

func matchRule(r models.Record, rule models.FilterRule) bool {
	value, _ := r.Field(rule.Field)

	switch rule.Operator {
	case models.OpIsEmpty:
		return isEmpty(value)
	case models.OpIsNotEmpty:
		return !isEmpty(value)
	case models.OpContains:
		return strings.Contains(lower(value), lower(rule.Value))
	case models.OpNotContains:
		return !strings.Contains(lower(value), lower(rule.Value))
	case models.OpEquals:
		return equals(value, rule.Value)
	case models.OpNotEquals:
		return !equals(value, rule.Value)
	case models.OpStartsWith:
		return strings.HasPrefix(lower(value), lower(rule.Value))
	case models.OpEndsWith:
		return strings.HasSuffix(lower(value), lower(rule.Value))
	case models.OpIn:
		return inList(value, rule.Value)
	case models.OpNotIn:
		return !inList(value, rule.Value)
	case models.OpGreater:
		return compareNumbers(value, rule.Value, func(a, b float64) bool { return a > b })
	case models.OpGreaterEqual:
		return compareNumbers(value, rule.Value, func(a, b float64) bool { return a >= b })
	case models.OpLess:
		return compareNumbers(value, rule.Value, func(a, b float64) bool { return a < b })
	case models.OpLessEqual:
		return compareNumbers(value, rule.Value, func(a, b float64) bool { return a <= b })
	case models.OpBetween:
		return between(value, rule.Value)
	case models.OpBefore:
		return compareDates(value, rule.Value, func(a, b time.Time) bool { return a.Before(b) })
	case models.OpAfter:
		return compareDates(value, rule.Value, func(a, b time.Time) bool { return a.After(b) })
	default:
		return false
	}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func lower(v any) string {
	return strings.ToLower(asString(v))
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func equals(a, b any) bool {
	// Numeric equality when both sides parse as numbers; 5 equals "5".
	if fa, ok := asNumber(a); ok {
		if fb, ok := asNumber(b); ok {
			return fa == fb
		}
	}
	// Date equality compares calendar days when both sides parse as dates.
	if da, ok := dateparse.Parse(a); ok {
		if db, ok := dateparse.Parse(b); ok {
			return sameDay(da, db)
		}
	}
	return strings.EqualFold(asString(a), asString(b))
}

func inList(v any, listValue any) bool {
	for _, item := range asList(listValue) {
		if equals(v, item) {
			return true
		}
	}
	return false
}

// asList accepts the value shapes "in"/"not_in" and "between" arrive in:
// a decoded JSON array, a typed slice, or a comma-separated string.
func asList(v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case string:
		parts := strings.Split(val, ",")
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out
	default:
		return []any{val}
	}
}

func asNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func compareNumbers(a, b any, cmp func(a, b float64) bool) bool {
	fa, ok := asNumber(a)
	if !ok {
		return false
	}
	fb, ok := asNumber(b)
	if !ok {
		return false
	}
	return cmp(fa, fb)
}

// between matches numbers or dates with inclusive bounds on both ends.
func between(v any, boundsValue any) bool {
	bounds := asList(boundsValue)
	if len(bounds) != 2 {
		return false
	}
	if fv, ok := asNumber(v); ok {
		lo, okLo := asNumber(bounds[0])
		hi, okHi := asNumber(bounds[1])
		if okLo && okHi {
			return fv >= lo && fv <= hi
		}
	}
	dv, ok := dateparse.Parse(v)
	if !ok {
		return false
	}
	lo, okLo := dateparse.Parse(bounds[0])
	hi, okHi := dateparse.Parse(bounds[1])
	if !okLo || !okHi {
		return false
	}
	return !dv.Before(startOfDay(lo)) && !dv.After(endOfDay(hi))
}

// compareDates excludes records whose field does not parse as a date:
// unknown dates never satisfy a date-range predicate.
func compareDates(a, b any, cmp func(a, b time.Time) bool) bool {
	da, ok := dateparse.Parse(a)
	if !ok {
		return false
	}
	db, ok := dateparse.Parse(b)
	if !ok {
		return false
	}
	return cmp(da, db)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
