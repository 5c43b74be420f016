package models

import "errors"

// ErrLastGroup is returned when removing the only remaining filter group.
var ErrLastGroup = errors.New("cannot remove the last filter group")

// RuleSet holds the ordered advanced-filter groups for one list view. It only
// mutates structure; predicate evaluation happens server-side (or in the
// local evaluator for in-memory data sets).
type RuleSet struct {
	groups []FilterGroup
}

// NewRuleSet creates a rule set containing one empty AND group.
func NewRuleSet() *RuleSet {
	return &RuleSet{groups: []FilterGroup{NewFilterGroup()}}
}

// Groups returns a copy of the current groups.
func (s *RuleSet) Groups() []FilterGroup {
	out := make([]FilterGroup, len(s.groups))
	for i, g := range s.groups {
		rules := make([]FilterRule, len(g.Rules))
		copy(rules, g.Rules)
		g.Rules = rules
		out[i] = g
	}
	return out
}

// RuleCount returns the total number of rules across all groups.
func (s *RuleSet) RuleCount() int {
	n := 0
	for _, g := range s.groups {
		n += len(g.Rules)
	}
	return n
}

// HasRules reports whether any group contains at least one rule.
func (s *RuleSet) HasRules() bool {
	return s.RuleCount() > 0
}

// AddRule appends a rule to the given group with the default operator for the
// field's type.
func (s *RuleSet) AddRule(groupID, field string, t FieldType) *FilterRule {
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			s.groups[i].Rules = append(s.groups[i].Rules, NewFilterRule(field, t))
			return &s.groups[i].Rules[len(s.groups[i].Rules)-1]
		}
	}
	return nil
}

// RemoveRule deletes a rule from its group.
func (s *RuleSet) RemoveRule(groupID, ruleID string) {
	for i := range s.groups {
		if s.groups[i].ID != groupID {
			continue
		}
		rules := s.groups[i].Rules
		for j := range rules {
			if rules[j].ID == ruleID {
				s.groups[i].Rules = append(rules[:j], rules[j+1:]...)
				return
			}
		}
	}
}

// SetRuleField changes a rule's field, resetting operator and value.
func (s *RuleSet) SetRuleField(groupID, ruleID, field string, t FieldType) {
	if r := s.findRule(groupID, ruleID); r != nil {
		r.Field = field
		r.Operator = DefaultOperator(t)
		r.Value = nil
	}
}

// SetRuleOperator changes a rule's operator, resetting its value.
func (s *RuleSet) SetRuleOperator(groupID, ruleID string, op FilterOperator) {
	if r := s.findRule(groupID, ruleID); r != nil {
		r.Operator = op
		r.Value = nil
	}
}

// SetRuleValue changes a rule's value.
func (s *RuleSet) SetRuleValue(groupID, ruleID string, value any) {
	if r := s.findRule(groupID, ruleID); r != nil {
		r.Value = value
	}
}

// SetRuleLogic changes the conjunction between a rule and its predecessor.
func (s *RuleSet) SetRuleLogic(groupID, ruleID string, logic FilterLogic) {
	if r := s.findRule(groupID, ruleID); r != nil {
		r.Logic = logic
	}
}

// AddGroup appends a new empty group joined to the previous group with OR.
func (s *RuleSet) AddGroup() *FilterGroup {
	g := NewFilterGroup()
	g.Logic = LogicOr
	s.groups = append(s.groups, g)
	return &s.groups[len(s.groups)-1]
}

// RemoveGroup deletes a group. Removing the only remaining group is rejected.
func (s *RuleSet) RemoveGroup(groupID string) error {
	if len(s.groups) == 1 {
		return ErrLastGroup
	}
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			return nil
		}
	}
	return nil
}

// SetGroupLogic changes the conjunction between a group and its predecessor.
func (s *RuleSet) SetGroupLogic(groupID string, logic FilterLogic) {
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			s.groups[i].Logic = logic
			return
		}
	}
}

// Restore replaces the set's groups wholesale, e.g. when applying a saved
// preset. An empty slice resets to a single empty group.
func (s *RuleSet) Restore(groups []FilterGroup) {
	if len(groups) == 0 {
		s.Clear()
		return
	}
	s.groups = make([]FilterGroup, len(groups))
	for i, g := range groups {
		rules := make([]FilterRule, len(g.Rules))
		copy(rules, g.Rules)
		g.Rules = rules
		s.groups[i] = g
	}
}

// Clear collapses the set back to a single empty AND group.
func (s *RuleSet) Clear() {
	s.groups = []FilterGroup{NewFilterGroup()}
}

func (s *RuleSet) findRule(groupID, ruleID string) *FilterRule {
	for i := range s.groups {
		if s.groups[i].ID != groupID {
			continue
		}
		for j := range s.groups[i].Rules {
			if s.groups[i].Rules[j].ID == ruleID {
				return &s.groups[i].Rules[j]
			}
		}
	}
	return nil
}
