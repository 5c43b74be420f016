// Package columns merges the static column catalog with columns discovered
// from a live record sample and tracks the ordered visible/hidden partition
// of a table.
package columns

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/rebeliceyang/datadeck/internal/models"
)

// ErrNoVisibleColumns rejects saving a layout that would hide everything.
var ErrNoVisibleColumns = errors.New("at least one column must stay visible")

// ErrNotCustom rejects removing a catalog or discovered column; those can
// only be hidden.
var ErrNotCustom = errors.New("only custom columns can be removed")

// Manager owns the merged catalog for one table and its visible ordering.
type Manager struct {
	catalog []models.Column
	visible []string
	hidden  []string
}

// NewManager merges the static catalog with fields discovered from a sampled
// record (nil when no live endpoint was available). The visible partition is
// seeded from visibleKeys filtered against the merged catalog; everything
// else starts hidden, sorted alphabetically by label.
func NewManager(static []models.Column, sample models.Record, visibleKeys []string) *Manager {
	m := &Manager{}
	seen := map[string]bool{}
	for _, col := range static {
		col.Key = m.uniqueKey(col.Key, seen)
		seen[col.Key] = true
		m.catalog = append(m.catalog, col)
	}

	// One sampled record reveals the backend's actual field set; keys the
	// static catalog doesn't know become discovered columns.
	if sample != nil {
		for _, key := range sample.Keys() {
			if seen[key] {
				continue
			}
			seen[key] = true
			m.catalog = append(m.catalog, models.Column{
				Key:        key,
				Label:      Humanize(key),
				Type:       guessType(sample[key]),
				Sortable:   true,
				Filterable: true,
				IsCustom:   false,
			})
		}
	}

	inCatalog := map[string]bool{}
	for _, col := range m.catalog {
		inCatalog[col.Key] = true
	}
	visible := map[string]bool{}
	for _, key := range visibleKeys {
		if inCatalog[key] && !visible[key] {
			m.visible = append(m.visible, key)
			visible[key] = true
		}
	}
	for _, col := range m.catalog {
		if !visible[col.Key] {
			m.hidden = append(m.hidden, col.Key)
		}
	}
	m.sortHidden()
	return m
}

// Catalog returns the merged catalog in creation order.
func (m *Manager) Catalog() []models.Column {
	out := make([]models.Column, len(m.catalog))
	copy(out, m.catalog)
	return out
}

// Visible returns the visible columns in display order.
func (m *Manager) Visible() []models.Column {
	out := make([]models.Column, 0, len(m.visible))
	for _, key := range m.visible {
		if col, ok := m.lookup(key); ok {
			out = append(out, col)
		}
	}
	return out
}

// Hidden returns the hidden columns sorted alphabetically by label.
func (m *Manager) Hidden() []models.Column {
	out := make([]models.Column, 0, len(m.hidden))
	for _, key := range m.hidden {
		if col, ok := m.lookup(key); ok {
			out = append(out, col)
		}
	}
	return out
}

// VisibleKeys returns the ordered visible key list, for persistence.
func (m *Manager) VisibleKeys() []string {
	out := make([]string, len(m.visible))
	copy(out, m.visible)
	return out
}

// Toggle moves a column between the visible and hidden partitions. Hiding
// appends nothing to an order; unhiding appends to the end of visible.
func (m *Manager) Toggle(key string) {
	for i, k := range m.visible {
		if k == key {
			m.visible = append(m.visible[:i], m.visible[i+1:]...)
			m.hidden = append(m.hidden, key)
			m.sortHidden()
			return
		}
	}
	for i, k := range m.hidden {
		if k == key {
			m.hidden = append(m.hidden[:i], m.hidden[i+1:]...)
			m.visible = append(m.visible, key)
			return
		}
	}
}

// Reorder moves a visible column from one position to another. Indices
// outside the visible partition are ignored; hidden columns are not drag
// targets.
func (m *Manager) Reorder(from, to int) {
	if from < 0 || from >= len(m.visible) || to < 0 || to >= len(m.visible) || from == to {
		return
	}
	key := m.visible[from]
	m.visible = append(m.visible[:from], m.visible[from+1:]...)
	m.visible = append(m.visible[:to], append([]string{key}, m.visible[to:]...)...)
}

// AddCustom creates a user-defined column from a label and returns its key.
// Key collisions are resolved by suffixing a counter.
func (m *Manager) AddCustom(label string) string {
	seen := map[string]bool{}
	for _, col := range m.catalog {
		seen[col.Key] = true
	}
	key := m.uniqueKey(slug(label), seen)
	m.catalog = append(m.catalog, models.Column{
		Key:      key,
		Label:    label,
		Type:     models.FieldText,
		IsCustom: true,
	})
	m.visible = append(m.visible, key)
	return key
}

// Remove deletes a custom column from the catalog entirely. Static and
// discovered columns can only be hidden.
func (m *Manager) Remove(key string) error {
	col, ok := m.lookup(key)
	if !ok {
		return nil
	}
	if !col.IsCustom {
		return ErrNotCustom
	}
	for i := range m.catalog {
		if m.catalog[i].Key == key {
			m.catalog = append(m.catalog[:i], m.catalog[i+1:]...)
			break
		}
	}
	for i, k := range m.visible {
		if k == key {
			m.visible = append(m.visible[:i], m.visible[i+1:]...)
			return nil
		}
	}
	for i, k := range m.hidden {
		if k == key {
			m.hidden = append(m.hidden[:i], m.hidden[i+1:]...)
			return nil
		}
	}
	return nil
}

// Validate checks the layout before saving. An empty visible partition is
// rejected with no state change.
func (m *Manager) Validate() error {
	if len(m.visible) == 0 {
		return ErrNoVisibleColumns
	}
	return nil
}

func (m *Manager) lookup(key string) (models.Column, bool) {
	for _, col := range m.catalog {
		if col.Key == key {
			return col, true
		}
	}
	return models.Column{}, false
}

func (m *Manager) sortHidden() {
	sort.Slice(m.hidden, func(i, j int) bool {
		a, _ := m.lookup(m.hidden[i])
		b, _ := m.lookup(m.hidden[j])
		return strings.ToLower(a.Label) < strings.ToLower(b.Label)
	})
}

func (m *Manager) uniqueKey(key string, seen map[string]bool) string {
	if !seen[key] {
		return key
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", key, i)
		if !seen[candidate] {
			return candidate
		}
	}
}

// Humanize turns a field key into a display label: underscores become
// spaces, a space is inserted before interior capitals, and each word is
// title-cased. "extra_field" and "extraField" both become "Extra Field".
func Humanize(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func slug(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	var b strings.Builder
	for _, r := range lower {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "custom"
	}
	return b.String()
}

func guessType(v any) models.FieldType {
	switch v.(type) {
	case float64:
		return models.FieldNumber
	default:
		return models.FieldText
	}
}
