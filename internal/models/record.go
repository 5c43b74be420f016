package models

import (
	"fmt"
	"sort"
	"strconv"
)

// Record is one row returned by the API. Field shapes are only known at
// runtime, so values stay as decoded JSON (string, float64, bool, nil,
// []any, map[string]any) with typed accessors on top.
type Record map[string]any

// Field returns the raw value for a key.
func (r Record) Field(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// DisplayString formats a field for table cells. Missing and nil values
// render as an empty string.
func (r Record) DisplayString(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Number returns a field as float64 when it is numeric or a numeric string.
func (r Record) Number(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Keys returns the record's field keys sorted alphabetically.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Pagination is the paging envelope of a list response.
type Pagination struct {
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// ListPage is one page of a list endpoint response. It is replaced wholesale
// on every successful fetch.
type ListPage struct {
	Data       []Record   `json:"data"`
	Pagination Pagination `json:"pagination"`
}
