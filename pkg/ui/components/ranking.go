package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const barWidth = 20

// RankingRow is one ranked entity.
type RankingRow struct {
	Rank      int
	Entity    string
	Start     string
	End       string
	PctChange decimal.Decimal
}

// RankingComponent renders the trend ranking panel.
type RankingComponent struct {
	rows     []RankingRow
	source   string
	fallback bool
	skipped  int
	maxRows  int
	accent   lipgloss.Color
}

// NewRankingComponent creates a new ranking component.
func NewRankingComponent(maxRows int, accent lipgloss.Color) *RankingComponent {
	if maxRows <= 0 {
		maxRows = 10
	}
	return &RankingComponent{maxRows: maxRows, accent: accent}
}

// Update replaces the ranking.
func (r *RankingComponent) Update(source string, fallback bool, skipped int, rows []RankingRow) {
	r.source = source
	r.fallback = fallback
	r.skipped = skipped
	r.rows = rows
	if len(r.rows) > r.maxRows {
		r.rows = r.rows[:r.maxRows]
	}
}

// View renders the ranking component.
func (r *RankingComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(r.accent)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	upStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	downStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("TRENDS"))
	if r.source != "" {
		sb.WriteString(mutedStyle.Render(" · " + r.source))
	}
	if r.fallback {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Render(" (snapshot)"))
	}
	sb.WriteString("\n\n")

	if len(r.rows) == 0 {
		sb.WriteString(mutedStyle.Render("  No ranking yet..."))
		return sb.String()
	}

	maxAbs := decimal.Zero
	for _, row := range r.rows {
		if a := row.PctChange.Abs(); a.GreaterThan(maxAbs) {
			maxAbs = a
		}
	}

	for _, row := range r.rows {
		style := upStyle
		if row.PctChange.IsNegative() {
			style = downStyle
		}
		n := 0
		if maxAbs.IsPositive() {
			n = int(row.PctChange.Abs().Div(maxAbs).Mul(decimal.NewFromInt(barWidth)).Ceil().IntPart())
		}
		pct := row.PctChange.StringFixed(1)
		if row.PctChange.IsPositive() {
			pct = "+" + pct
		}
		fmt.Fprintf(&sb, "%2d. %-16s %s %s\n",
			row.Rank,
			truncate(row.Entity, 16),
			style.Render(fmt.Sprintf("%8s%%", pct)),
			style.Render(strings.Repeat("█", n)),
		)
	}

	if r.skipped > 0 {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("\n  %d entities skipped", r.skipped)))
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
