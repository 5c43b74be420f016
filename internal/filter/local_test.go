package filter

import (
	"testing"

	"github.com/rebeliceyang/datadeck/internal/models"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{"city": "London", "country": "UK", "count": 10.0, "added": "01/03/2024"},
		{"city": "Lisbon", "country": "PT", "count": 25.0, "added": "15/03/2024"},
		{"city": "", "country": "DE", "count": 3.0, "added": "31/02/2024"}, // invalid date
		{"city": "Lyon", "country": "FR", "count": 40.0, "added": "2024-04-02"},
	}
}

func group(rules ...models.FilterRule) models.FilterGroup {
	g := models.NewFilterGroup()
	g.Rules = rules
	return g
}

func rule(field string, op models.FilterOperator, value any, logic models.FilterLogic) models.FilterRule {
	return models.FilterRule{ID: field + string(op), Field: field, Operator: op, Value: value, Logic: logic}
}

func cities(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.DisplayString("city")
	}
	return out
}

func TestEvaluateNoRulesPassesThrough(t *testing.T) {
	records := sampleRecords()
	got := Evaluate(records, []models.FilterGroup{models.NewFilterGroup()})
	if len(got) != len(records) {
		t.Errorf("empty group filtered records: %d of %d left", len(got), len(records))
	}
}

func TestTextOperators(t *testing.T) {
	records := sampleRecords()

	got := Evaluate(records, []models.FilterGroup{group(
		rule("city", models.OpContains, "on", models.LogicAnd),
	)})
	if len(got) != 3 { // London, Lisbon, Lyon
		t.Errorf("contains 'on' matched %v", cities(got))
	}

	got = Evaluate(records, []models.FilterGroup{group(
		rule("city", models.OpStartsWith, "li", models.LogicAnd),
	)})
	if len(got) != 1 || got[0].DisplayString("city") != "Lisbon" {
		t.Errorf("starts_with 'li' matched %v", cities(got))
	}

	got = Evaluate(records, []models.FilterGroup{group(
		rule("city", models.OpIsEmpty, nil, models.LogicAnd),
	)})
	if len(got) != 1 || got[0].DisplayString("country") != "DE" {
		t.Errorf("is_empty matched %v", cities(got))
	}
}

func TestNumberOperators(t *testing.T) {
	records := sampleRecords()

	got := Evaluate(records, []models.FilterGroup{group(
		rule("count", models.OpGreaterEqual, 25, models.LogicAnd),
	)})
	if len(got) != 2 {
		t.Errorf("count >= 25 matched %v", cities(got))
	}

	// between is inclusive on both bounds.
	got = Evaluate(records, []models.FilterGroup{group(
		rule("count", models.OpBetween, []any{10.0, 25.0}, models.LogicAnd),
	)})
	if len(got) != 2 {
		t.Errorf("count between [10,25] matched %v, want London and Lisbon", cities(got))
	}
}

func TestDateOperatorsExcludeUnknownDates(t *testing.T) {
	records := sampleRecords()

	// The 31/02 record has no parseable date and must never match a range.
	got := Evaluate(records, []models.FilterGroup{group(
		rule("added", models.OpAfter, "01/01/2024", models.LogicAnd),
	)})
	if len(got) != 3 {
		t.Errorf("after 01/01/2024 matched %v, want 3", cities(got))
	}

	got = Evaluate(records, []models.FilterGroup{group(
		rule("added", models.OpBetween, []any{"01/03/2024", "15/03/2024"}, models.LogicAnd),
	)})
	if len(got) != 2 {
		t.Errorf("date between matched %v, want London and Lisbon (inclusive bounds)", cities(got))
	}
}

func TestSequentialLeftToRightChaining(t *testing.T) {
	records := sampleRecords()

	// contains "L" AND country=UK OR count=40 evaluates as
	// ((contains AND country) OR count), not (contains AND (country OR count)).
	got := Evaluate(records, []models.FilterGroup{group(
		rule("city", models.OpContains, "l", models.LogicAnd),
		rule("country", models.OpEquals, "UK", models.LogicAnd),
		rule("count", models.OpEquals, 40, models.LogicOr),
	)})
	if len(got) != 2 {
		t.Fatalf("chained rules matched %v, want London and Lyon", cities(got))
	}
}

func TestGroupChaining(t *testing.T) {
	records := sampleRecords()

	g1 := group(rule("country", models.OpEquals, "UK", models.LogicAnd))
	g2 := group(rule("country", models.OpEquals, "PT", models.LogicAnd))
	g2.Logic = models.LogicOr

	got := Evaluate(records, []models.FilterGroup{g1, g2})
	if len(got) != 2 {
		t.Errorf("UK OR PT matched %v", cities(got))
	}

	g2.Logic = models.LogicAnd
	got = Evaluate(records, []models.FilterGroup{g1, g2})
	if len(got) != 0 {
		t.Errorf("UK AND PT matched %v, want none", cities(got))
	}
}

func TestInOperator(t *testing.T) {
	records := sampleRecords()

	got := Evaluate(records, []models.FilterGroup{group(
		rule("country", models.OpIn, []any{"UK", "FR"}, models.LogicAnd),
	)})
	if len(got) != 2 {
		t.Errorf("in [UK FR] matched %v", cities(got))
	}

	// Comma-separated string form is accepted too.
	got = Evaluate(records, []models.FilterGroup{group(
		rule("country", models.OpNotIn, "UK, FR", models.LogicAnd),
	)})
	if len(got) != 2 {
		t.Errorf("not_in UK,FR matched %v", cities(got))
	}
}

func TestEqualsCoercesNumbersAndCase(t *testing.T) {
	records := sampleRecords()

	got := Evaluate(records, []models.FilterGroup{group(
		rule("count", models.OpEquals, "10", models.LogicAnd),
	)})
	if len(got) != 1 || got[0].DisplayString("city") != "London" {
		t.Errorf("count equals \"10\" matched %v", cities(got))
	}

	got = Evaluate(records, []models.FilterGroup{group(
		rule("city", models.OpEquals, "london", models.LogicAnd),
	)})
	if len(got) != 1 {
		t.Errorf("city equals london (case-insensitive) matched %v", cities(got))
	}
}
