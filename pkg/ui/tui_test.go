package ui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	catalogDomain "github.com/ChiaviniK/ComexioCase/business/catalog/domain"
	inferenceApp "github.com/ChiaviniK/ComexioCase/business/inference/app"
	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	ratesDomain "github.com/ChiaviniK/ComexioCase/business/rates/domain"
	trendsApp "github.com/ChiaviniK/ComexioCase/business/trends/app"
	trendsDomain "github.com/ChiaviniK/ComexioCase/business/trends/domain"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
)

type recorder struct {
	mu        sync.Mutex
	refreshes []string
	trends    []string
	done      chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 16)}
}

func (r *recorder) actions() Actions {
	return Actions{
		Refresh: func(id string) {
			r.mu.Lock()
			r.refreshes = append(r.refreshes, id)
			r.mu.Unlock()
			r.done <- struct{}{}
		},
		Trends: func(src string) {
			r.mu.Lock()
			r.trends = append(r.trends, src)
			r.mu.Unlock()
			r.done <- struct{}{}
		},
	}
}

func (r *recorder) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.done:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for action %d", i+1)
		}
	}
}

func startedModel(t *testing.T, rec *recorder) Model {
	t.Helper()
	v, _ := LookupVariant("compact")
	m := New(v, []string{"smartphones", "drones"}, []string{"categories", "rates"}, rec.actions())
	m.phase = PhaseStartup

	var model tea.Model = m
	for _, step := range StartupOrder {
		model, _ = model.Update(StartupMsg{Step: step, Status: "done"})
	}
	return model.(Model)
}

func TestModel_StartupCompletesIntoDashboard(t *testing.T) {
	rec := newRecorder()
	m := startedModel(t, rec)

	if m.phase != PhaseDashboard {
		t.Fatalf("expected dashboard, got %s", m.phase)
	}
	rec.wait(t, 2)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.refreshes) != 1 || rec.refreshes[0] != "smartphones" {
		t.Errorf("expected initial refresh of smartphones, got %v", rec.refreshes)
	}
	if len(rec.trends) != 1 || rec.trends[0] != "categories" {
		t.Errorf("expected initial ranking of categories, got %v", rec.trends)
	}
}

func TestModel_BatchFillsTable(t *testing.T) {
	rec := newRecorder()
	m := startedModel(t, rec)
	rec.wait(t, 2)

	batch := &inferenceApp.Batch{
		Category: catalogDomain.CategoryProfile{ID: "smartphones"},
		Rate:     ratesDomain.Fallback(currency.USDBRL, decimal.RequireFromString("5.85"), time.Now()),
		Records: []domain.InferredImportRecord{
			{Title: "a", EstimatedFOB: decimal.NewFromInt(1)},
			{Title: "b", EstimatedFOB: decimal.NewFromInt(2)},
		},
		Summary: domain.Summary{Count: 2},
	}

	model, _ := m.Update(BatchMsg{Batch: batch})
	m = model.(Model)

	if got := len(m.table.Rows()); got != 2 {
		t.Errorf("expected 2 table rows, got %d", got)
	}
	if m.loading {
		t.Error("loading should clear once the batch arrives")
	}
	if !strings.Contains(m.View(), "fallback") {
		t.Error("expected fallback rate to be flagged")
	}
}

func TestModel_CategoryNavigationRefreshesUncached(t *testing.T) {
	rec := newRecorder()
	m := startedModel(t, rec)
	rec.wait(t, 2)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = model.(Model)
	rec.wait(t, 1)

	if m.currentCategory() != "drones" {
		t.Fatalf("expected drones selected, got %s", m.currentCategory())
	}
	rec.mu.Lock()
	last := rec.refreshes[len(rec.refreshes)-1]
	rec.mu.Unlock()
	if last != "drones" {
		t.Errorf("expected refresh of drones, got %s", last)
	}

	// Wraps around backwards.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := model.(Model).currentCategory(); got != "drones" {
		t.Errorf("expected wrap to drones, got %s", got)
	}
}

func TestModel_TrendsMsg(t *testing.T) {
	rec := newRecorder()
	m := startedModel(t, rec)
	rec.wait(t, 2)

	report := &trendsApp.Report{
		Source:       "snapshot",
		FromFallback: true,
		Results: []trendsDomain.TrendResult{
			{EntityKey: "scooters", PctChange: decimal.NewFromInt(200), Rank: 1},
		},
	}
	model, _ := m.Update(TrendsMsg{Report: report})

	view := model.(Model).View()
	if !strings.Contains(view, "scooters") || !strings.Contains(view, "+200.0%") {
		t.Errorf("expected ranking in view, got:\n%s", view)
	}
}
