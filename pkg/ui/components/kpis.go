// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// KPIs holds the headline numbers of the current batch.
type KPIs struct {
	Category     string
	Records      int
	TotalFOB     decimal.Decimal
	MeanFOB      decimal.Decimal
	MedianFOB    decimal.Decimal
	MeanUnit     decimal.Decimal
	TotalWeight  decimal.Decimal
	Rate         decimal.Decimal
	RateFallback bool
	Degraded     bool
}

// KPIComponent renders the KPI strip.
type KPIComponent struct {
	kpis   KPIs
	accent lipgloss.Color
}

// NewKPIComponent creates a new KPI component.
func NewKPIComponent(accent lipgloss.Color) *KPIComponent {
	return &KPIComponent{accent: accent}
}

// Update replaces the displayed numbers.
func (k *KPIComponent) Update(kpis KPIs) {
	k.kpis = kpis
}

// View renders the KPI component.
func (k *KPIComponent) View() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	value := lipgloss.NewStyle().Foreground(k.accent).Bold(true)
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)

	cell := func(name, v string) string {
		return label.Render(name+" ") + value.Render(v)
	}

	rate := "R$ " + k.kpis.Rate.StringFixed(4)
	if k.kpis.RateFallback {
		rate += warn.Render(" (fallback)")
	}

	cells := []string{
		cell("Itens", fmt.Sprintf("%d", k.kpis.Records)),
		cell("FOB total", "US$ "+k.kpis.TotalFOB.StringFixed(2)),
		cell("FOB médio", "US$ "+k.kpis.MeanFOB.StringFixed(2)),
		cell("Mediana", "US$ "+k.kpis.MedianFOB.StringFixed(2)),
		cell("US$/kg", k.kpis.MeanUnit.StringFixed(2)),
		cell("Peso", k.kpis.TotalWeight.StringFixed(3)+" kg"),
		label.Render("Dólar ") + value.Render(rate),
	}

	out := strings.Join(cells, "  │  ")
	if k.kpis.Degraded {
		out += "\n" + warn.Render("⚠ listings unavailable, showing an empty batch")
	}
	return out
}
