package models

import "github.com/google/uuid"

// FilterLogic joins a rule or group with the one before it.
type FilterLogic string

const (
	LogicAnd FilterLogic = "AND"
	LogicOr  FilterLogic = "OR"
)

// FilterOperator represents a filter comparison operator. The string values
// are the wire format used inside the advanced_filters query parameter.
type FilterOperator string

const (
	OpContains     FilterOperator = "contains"
	OpNotContains  FilterOperator = "not_contains"
	OpEquals       FilterOperator = "equals"
	OpNotEquals    FilterOperator = "not_equals"
	OpStartsWith   FilterOperator = "starts_with"
	OpEndsWith     FilterOperator = "ends_with"
	OpIsEmpty      FilterOperator = "is_empty"
	OpIsNotEmpty   FilterOperator = "is_not_empty"
	OpIn           FilterOperator = "in"
	OpNotIn        FilterOperator = "not_in"
	OpGreater      FilterOperator = "greater"
	OpGreaterEqual FilterOperator = "greater_equal"
	OpLess         FilterOperator = "less"
	OpLessEqual    FilterOperator = "less_equal"
	OpBetween      FilterOperator = "between"
	OpBefore       FilterOperator = "before"
	OpAfter        FilterOperator = "after"
)

// FieldType classifies a column for operator selection and value input.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldSelect FieldType = "select"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
)

// FilterRule is a single field/operator/value predicate. Logic joins the rule
// with the previous rule in the same group; the first rule's Logic is ignored.
type FilterRule struct {
	ID       string         `json:"id"`
	Field    string         `json:"field"`
	Operator FilterOperator `json:"operator"`
	Value    any            `json:"value"`
	Logic    FilterLogic    `json:"logic"`
}

// FilterGroup is an ordered list of rules. Logic joins the group with the
// previous group; the first group's Logic is ignored.
type FilterGroup struct {
	ID    string       `json:"id"`
	Rules []FilterRule `json:"rules"`
	Logic FilterLogic  `json:"logic"`
}

// OperatorsForType is the fixed operator compatibility table per field type.
func OperatorsForType(t FieldType) []FilterOperator {
	switch t {
	case FieldText:
		return []FilterOperator{
			OpContains, OpNotContains, OpEquals, OpNotEquals,
			OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
		}
	case FieldSelect:
		return []FilterOperator{OpEquals, OpNotEquals, OpIn, OpNotIn}
	case FieldNumber:
		return []FilterOperator{
			OpEquals, OpNotEquals, OpGreater, OpGreaterEqual,
			OpLess, OpLessEqual, OpBetween,
		}
	case FieldDate:
		return []FilterOperator{
			OpEquals, OpNotEquals, OpBefore, OpAfter,
			OpBetween, OpIsEmpty, OpIsNotEmpty,
		}
	default:
		return []FilterOperator{OpEquals, OpNotEquals}
	}
}

// DefaultOperator returns the operator a freshly selected field starts with.
func DefaultOperator(t FieldType) FilterOperator {
	return OperatorsForType(t)[0]
}

// OperatorNeedsValue reports whether the operator takes a value input at all.
func OperatorNeedsValue(op FilterOperator) bool {
	return op != OpIsEmpty && op != OpIsNotEmpty
}

// OperatorTakesPair reports whether the operator takes a [low, high] pair.
func OperatorTakesPair(op FilterOperator) bool {
	return op == OpBetween
}

// OperatorTakesList reports whether the operator takes a list of values.
func OperatorTakesList(op FilterOperator) bool {
	return op == OpIn || op == OpNotIn
}

// NewFilterRule creates a rule with the default operator for the field type.
func NewFilterRule(field string, t FieldType) FilterRule {
	return FilterRule{
		ID:       uuid.New().String(),
		Field:    field,
		Operator: DefaultOperator(t),
		Value:    nil,
		Logic:    LogicAnd,
	}
}

// NewFilterGroup creates an empty AND group.
func NewFilterGroup() FilterGroup {
	return FilterGroup{
		ID:    uuid.New().String(),
		Rules: []FilterRule{},
		Logic: LogicAnd,
	}
}
