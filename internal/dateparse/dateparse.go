// Package dateparse normalizes the heterogeneous date representations found
// in library records: dd/mm/yyyy strings, ISO dates, and spreadsheet serial
// numbers. Unrecognized input degrades to a "no date" result, never an error.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// serialEpochOffset is the number of days between the spreadsheet epoch
// (1899-12-30) and the Unix epoch (1970-01-01).
const serialEpochOffset = 25569

const secondsPerDay = 86400

var (
	dmyPattern    = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})$`)
	isoPrefix     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	serialPattern = regexp.MustCompile(`^\d{5}$`)
)

// Parse converts a value of unknown provenance into a date. The boolean is
// false when the input does not represent a valid calendar date; callers must
// treat that as "unknown date" and exclude the record from date filtering.
func Parse(input any) (time.Time, bool) {
	switch v := input.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case float64:
		return fromSerial(v)
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case string:
		return parseString(v)
	default:
		return time.Time{}, false
	}
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// A bare 5-digit string is a spreadsheet serial, not a year or a day.
	if serialPattern.MatchString(s) {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, false
		}
		return fromSerial(n)
	}

	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		return fromDayMonthYear(m[1], m[2], m[3])
	}

	if isoPrefix.MatchString(s) {
		t, err := time.Parse("2006-01-02", s[:10])
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	return time.Time{}, false
}

func fromSerial(serial float64) (time.Time, bool) {
	secs := (serial - serialEpochOffset) * secondsPerDay
	t := time.Unix(int64(secs), 0).UTC()
	// Serial values outside a sane range produce timestamps nothing in the
	// library could have written.
	if t.Year() < 1900 || t.Year() > 9999 {
		return time.Time{}, false
	}
	return t, true
}

func fromDayMonthYear(dayStr, monthStr, yearStr string) (time.Time, bool) {
	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	if len(yearStr) <= 2 {
		year += 2000
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes rollover (31/02 becomes 02/03 or 03/03), so an
	// invalid calendar date is detected by reconstructing the components.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
