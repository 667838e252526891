package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SourceStatus is the state of one upstream source.
type SourceStatus struct {
	Name       string
	Healthy    bool
	Detail     string
	LastUpdate time.Time
}

// StatusComponent renders source status.
type StatusComponent struct {
	sources []SourceStatus
}

// NewStatusComponent creates a new status component.
func NewStatusComponent() *StatusComponent {
	return &StatusComponent{
		sources: make([]SourceStatus, 0),
	}
}

// Update updates a source's status.
func (s *StatusComponent) Update(status SourceStatus) {
	for i, src := range s.sources {
		if src.Name == status.Name {
			s.sources[i] = status
			return
		}
	}
	s.sources = append(s.sources, status)
}

// View renders the status component on one line.
func (s *StatusComponent) View() string {
	if len(s.sources) == 0 {
		return ""
	}

	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	bad := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	parts := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		part := ok.Render("● " + src.Name)
		if !src.Healthy {
			part = bad.Render("○ " + src.Name)
		}
		if src.Detail != "" {
			part += muted.Render(" " + src.Detail)
		}
		if !src.LastUpdate.IsZero() {
			part += muted.Render(fmt.Sprintf(" %s ago", time.Since(src.LastUpdate).Round(time.Second)))
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "  │  ")
}
