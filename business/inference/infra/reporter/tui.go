package reporter

import (
	"github.com/ChiaviniK/ComexioCase/business/inference/app"
	trendsApp "github.com/ChiaviniK/ComexioCase/business/trends/app"
	"github.com/ChiaviniK/ComexioCase/pkg/ui"
)

var _ app.Reporter = (*TUIReporter)(nil)

// TUIReporter implements app.Reporter for the Bubble Tea dashboard.
type TUIReporter struct {
	send func(msg any)
}

// NewTUIReporter creates a TUIReporter sending to the running program.
func NewTUIReporter() *TUIReporter {
	return &TUIReporter{send: func(msg any) { ui.Send(msg) }}
}

// Report sends a refreshed batch to the dashboard.
func (r *TUIReporter) Report(b *app.Batch) error {
	r.send(ui.BatchMsg{Batch: b})
	return nil
}

// ReportTrends sends a ranking to the dashboard.
func (r *TUIReporter) ReportTrends(rep *trendsApp.Report) error {
	r.send(ui.TrendsMsg{Report: rep})
	return nil
}

// Artifact reports written files.
func (r *TUIReporter) Artifact(kind string, paths ...string) {
	r.send(ui.ArtifactMsg{Kind: kind, Paths: paths})
}

// Error reports a failed action.
func (r *TUIReporter) Error(err error) {
	r.send(ui.ErrorMsg{Error: err})
}
