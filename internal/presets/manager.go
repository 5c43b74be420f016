// Package presets persists named filter presets per collection so users can
// re-apply a rule set without rebuilding it.
package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rebeliceyang/datadeck/internal/models"
	"gopkg.in/yaml.v3"
)

// Preset is a saved filter state for one collection.
type Preset struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"description,omitempty"`
	Collection  string               `yaml:"collection"`
	Search      string               `yaml:"search,omitempty"`
	Groups      []models.FilterGroup `yaml:"groups"`
	CreatedAt   time.Time            `yaml:"created_at"`
	UpdatedAt   time.Time            `yaml:"updated_at"`
	UsageCount  int                  `yaml:"usage_count"`
	LastUsed    time.Time            `yaml:"last_used,omitempty"`
}

// Manager manages filter presets
type Manager struct {
	path    string
	presets []Preset
}

// NewManager creates a new preset manager
func NewManager(configDir string) (*Manager, error) {
	path := filepath.Join(configDir, "presets.yaml")

	m := &Manager{
		path:    path,
		presets: []Preset{},
	}

	// Load existing presets if file exists
	if _, err := os.Stat(path); err == nil {
		if err := m.Load(); err != nil {
			return nil, fmt.Errorf("failed to load presets: %w", err)
		}
	}

	return m, nil
}

// Load loads presets from YAML file
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("failed to read presets file: %w", err)
	}

	if err := yaml.Unmarshal(data, &m.presets); err != nil {
		return fmt.Errorf("failed to parse presets: %w", err)
	}

	return nil
}

// Save saves presets to YAML file
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.presets)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}

	return nil
}

// Add saves the given filter state under a new name
func (m *Manager) Add(name, description, collection, search string, groups []models.FilterGroup) (*Preset, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, fmt.Errorf("preset name cannot be empty")
	}
	if collection == "" {
		return nil, fmt.Errorf("preset collection cannot be empty")
	}
	hasRule := false
	for _, g := range groups {
		if len(g.Rules) > 0 {
			hasRule = true
			break
		}
	}
	if !hasRule && search == "" {
		return nil, fmt.Errorf("preset must contain a search term or at least one rule")
	}

	// Check for duplicate names within the collection (case-insensitive)
	for _, p := range m.presets {
		if p.Collection == collection && strings.EqualFold(p.Name, name) {
			return nil, fmt.Errorf("a preset named '%s' already exists for this collection", name)
		}
	}

	preset := Preset{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Collection:  collection,
		Search:      search,
		Groups:      groups,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	m.presets = append(m.presets, preset)

	if err := m.Save(); err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}

	return &preset, nil
}

// Delete deletes a preset by ID
func (m *Manager) Delete(id string) error {
	for i, p := range m.presets {
		if p.ID == id {
			m.presets = append(m.presets[:i], m.presets[i+1:]...)
			if err := m.Save(); err != nil {
				return fmt.Errorf("failed to save presets after deletion: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("preset with ID '%s' was not found", id)
}

// Get returns a preset by ID
func (m *Manager) Get(id string) (*Preset, error) {
	for _, p := range m.presets {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("preset with ID '%s' was not found", id)
}

// ForCollection returns the presets saved for one collection, most recently
// used first.
func (m *Manager) ForCollection(collection string) []Preset {
	var results []Preset
	for _, p := range m.presets {
		if p.Collection == collection {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].LastUsed.Equal(results[j].LastUsed) {
			return results[i].LastUsed.After(results[j].LastUsed)
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results
}

// Search narrows one collection's presets to those whose name or description
// contains the query, keeping the ForCollection ordering.
func (m *Manager) Search(collection, query string) []Preset {
	all := m.ForCollection(collection)
	if query == "" {
		return all
	}

	query = strings.ToLower(query)
	var results []Preset
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			results = append(results, p)
		}
	}
	return results
}

// RecordUsage updates usage statistics for a preset
func (m *Manager) RecordUsage(id string) error {
	for i, p := range m.presets {
		if p.ID == id {
			m.presets[i].UsageCount++
			m.presets[i].LastUsed = time.Now()
			if err := m.Save(); err != nil {
				return fmt.Errorf("failed to save usage statistics: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("preset with ID '%s' was not found", id)
}
