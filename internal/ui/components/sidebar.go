package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/datadeck/internal/library"
	"github.com/rebeliceyang/datadeck/internal/ui/theme"
)

// CollectionSelectedMsg is sent when a collection is chosen in the sidebar
type CollectionSelectedMsg struct {
	Collection library.Collection
}

// Sidebar lists the library's collections for navigation
type Sidebar struct {
	Theme  theme.Theme
	Width  int
	Height int

	collections []library.Collection
	cursor      int
	activeID    string
}

// NewSidebar creates the collection sidebar
func NewSidebar(collections []library.Collection, th theme.Theme) *Sidebar {
	s := &Sidebar{
		Theme:       th,
		collections: collections,
	}
	if len(collections) > 0 {
		s.activeID = collections[0].ID
	}
	return s
}

// Active returns the currently opened collection
func (s *Sidebar) Active() (library.Collection, bool) {
	for _, c := range s.collections {
		if c.ID == s.activeID {
			return c, true
		}
	}
	return library.Collection{}, false
}

// Select marks a collection active and moves the cursor to it. Unknown IDs
// leave the sidebar unchanged.
func (s *Sidebar) Select(id string) bool {
	for i, c := range s.collections {
		if c.ID == id {
			s.activeID = id
			s.cursor = i
			return true
		}
	}
	return false
}

// Update handles navigation keys
func (s *Sidebar) Update(msg tea.KeyMsg) (*Sidebar, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.collections)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor >= 0 && s.cursor < len(s.collections) {
			selected := s.collections[s.cursor]
			s.activeID = selected.ID
			return s, func() tea.Msg {
				return CollectionSelectedMsg{Collection: selected}
			}
		}
	}
	return s, nil
}

// View renders the sidebar
func (s *Sidebar) View() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(s.Theme.Info)
	b.WriteString(headerStyle.Render("Library"))
	b.WriteString("\n\n")

	for i, c := range s.collections {
		marker := "  "
		style := lipgloss.NewStyle().Foreground(s.Theme.CollectionInactive)
		if c.ID == s.activeID {
			marker = "● "
			style = lipgloss.NewStyle().Foreground(s.Theme.CollectionActive)
		}
		if i == s.cursor {
			style = style.Background(s.Theme.Selection).Bold(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s", marker, c.Name)))
		b.WriteString("\n")
	}

	return b.String()
}
