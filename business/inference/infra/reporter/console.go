// Package reporter renders batches and rankings for the CLI and the TUI.
package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ChiaviniK/ComexioCase/business/inference/app"
	trendsApp "github.com/ChiaviniK/ComexioCase/business/trends/app"
	"github.com/ChiaviniK/ComexioCase/pkg/ui"
)

var _ app.Reporter = (*ConsoleReporter)(nil)

// ConsoleReporter implements app.Reporter for CLI output.
type ConsoleReporter struct {
	out     io.Writer
	variant ui.Variant
	header  lipgloss.Style
}

// NewConsoleReporter creates a ConsoleReporter writing to stdout.
func NewConsoleReporter(variant ui.Variant) *ConsoleReporter {
	return NewConsoleReporterTo(os.Stdout, variant)
}

// NewConsoleReporterTo creates a ConsoleReporter writing to out.
func NewConsoleReporterTo(out io.Writer, variant ui.Variant) *ConsoleReporter {
	return &ConsoleReporter{
		out:     out,
		variant: variant,
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(variant.Accent)),
	}
}

// Report prints a batch as a table followed by its KPIs.
func (r *ConsoleReporter) Report(b *app.Batch) error {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, r.header.Render(fmt.Sprintf("%s · %s", r.variant.Title, b.Category.ID)))
	fmt.Fprintf(r.out, "Batch:      %s\n", b.ID)
	fmt.Fprintf(r.out, "Created:    %s\n", b.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.out, "Rate:       %s\n", b.Rate.String())
	if b.Degraded {
		fmt.Fprintln(r.out, "Listings:   unavailable (empty batch)")
	}

	if b.IsEmpty() {
		fmt.Fprintln(r.out, "No records.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorBorder)).
		Headers(r.variant.Columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, rec := range b.Records {
		t.Row(r.variant.Row(rec)...)
	}
	fmt.Fprintln(r.out, t.Render())

	s := b.Summary
	fmt.Fprintf(r.out, "Records: %d  │  FOB total: US$ %s  │  FOB médio: US$ %s  │  Mediana: US$ %s  │  US$/kg médio: %s\n",
		s.Count, s.TotalFOB.StringFixed(2), s.MeanFOB.StringFixed(2), s.MedianFOB.StringFixed(2), s.MeanUnitValue.StringFixed(2))
	return nil
}

// ReportTrends prints a ranking.
func (r *ConsoleReporter) ReportTrends(rep *trendsApp.Report) error {
	title := "Trends · " + rep.Source
	if rep.FromFallback {
		title += " (snapshot)"
	}
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, r.header.Render(title))

	if len(rep.Results) == 0 {
		fmt.Fprintln(r.out, "No ranked entities.")
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorBorder)).
			Headers("#", "Entity", "From", "To", "Start", "End", "Change %")
		for _, res := range rep.Results {
			t.Row(
				fmt.Sprintf("%d", res.Rank),
				res.EntityKey,
				res.StartPeriod,
				res.EndPeriod,
				res.StartValue.StringFixed(2),
				res.EndValue.StringFixed(2),
				res.PctChange.StringFixed(2),
			)
		}
		fmt.Fprintln(r.out, t.Render())
	}

	for _, sk := range rep.Skipped {
		fmt.Fprintf(r.out, "skipped %s: %s\n", sk.EntityKey, sk.Reason)
	}
	return nil
}

// Artifact prints the path of a written file.
func (r *ConsoleReporter) Artifact(kind string, paths ...string) {
	for _, p := range paths {
		fmt.Fprintf(r.out, "%s written: %s\n", kind, p)
	}
}
