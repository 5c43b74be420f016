package dateparse

import (
	"testing"
	"time"
)

func TestParseDayMonthYear(t *testing.T) {
	cases := []struct {
		in    string
		year  int
		month time.Month
		day   int
	}{
		{"25/12/2024", 2024, time.December, 25},
		{"1/2/2024", 2024, time.February, 1},
		{"01-02-2024", 2024, time.February, 1},
		{"5.6.99", 2099, time.June, 5},
		{"31/01/24", 2024, time.January, 31},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		if !ok {
			t.Errorf("Parse(%q) not ok, want date", c.in)
			continue
		}
		if got.Year() != c.year || got.Month() != c.month || got.Day() != c.day {
			t.Errorf("Parse(%q) = %v, want %04d-%02d-%02d", c.in, got, c.year, c.month, c.day)
		}
	}
}

func TestParseRejectsInvalidCalendarDates(t *testing.T) {
	invalid := []string{
		"31/02/2024",
		"32/01/2024",
		"00/01/2024",
		"15/13/2024",
		"29/02/2023", // not a leap year
	}
	for _, in := range invalid {
		if _, ok := Parse(in); ok {
			t.Errorf("Parse(%q) ok, want rejection", in)
		}
	}
}

func TestParseISOPrefix(t *testing.T) {
	got, ok := Parse("2024-03-15T10:30:00Z")
	if !ok {
		t.Fatal("ISO timestamp not parsed")
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("got %v, want 2024-03-15", got)
	}

	if _, ok := Parse("2024-13-99"); ok {
		t.Error("invalid ISO date should be rejected")
	}
}

func TestParseSpreadsheetSerial(t *testing.T) {
	// 45292 days from 1899-12-30 is 2024-01-01.
	got, ok := Parse(45292.0)
	if !ok {
		t.Fatal("serial 45292 not parsed")
	}
	if got.Year() != 2024 || got.Month() != time.January || got.Day() != 1 {
		t.Errorf("serial 45292 = %v, want 2024-01-01", got)
	}

	// Same serial as a 5-digit string.
	got, ok = Parse("45292")
	if !ok {
		t.Fatal("serial string not parsed")
	}
	if got.Year() != 2024 {
		t.Errorf("serial string year = %d, want 2024", got.Year())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []any{nil, "", "not a date", "123", true, []string{"x"}} {
		if _, ok := Parse(in); ok {
			t.Errorf("Parse(%v) ok, want rejection", in)
		}
	}
}

func TestParsePassesThroughTime(t *testing.T) {
	want := time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)
	got, ok := Parse(want)
	if !ok || !got.Equal(want) {
		t.Errorf("Parse(time.Time) = %v ok=%v, want passthrough", got, ok)
	}
	if _, ok := Parse(time.Time{}); ok {
		t.Error("zero time should be rejected")
	}
}

func TestRoundTripDayMonthYear(t *testing.T) {
	for _, in := range []string{"07/04/2021", "29/02/2024", "31/12/99"} {
		got, ok := Parse(in)
		if !ok {
			t.Errorf("Parse(%q) not ok", in)
			continue
		}
		back := got.Format("02/01/2006")
		again, ok := Parse(back)
		if !ok || !again.Equal(got) {
			t.Errorf("round trip %q -> %q mismatch", in, back)
		}
	}
}
