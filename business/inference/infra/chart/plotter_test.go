package chart

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	catalogDomain "github.com/ChiaviniK/ComexioCase/business/catalog/domain"
	"github.com/ChiaviniK/ComexioCase/business/inference/app"
	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

var errChart = apperror.New(apperror.CodeChartFailed)

func pngMagic(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile %s: %v", path, err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Errorf("%s is not a PNG", path)
	}
}

func TestRenderer_Batch(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, nil)

	batch := &app.Batch{Category: catalogDomain.CategoryProfile{ID: "drones", Name: "Drones (DJI)"}}
	for i, fob := range []string{"120.50", "98.10", "250.00", "175.25"} {
		batch.Records = append(batch.Records, domain.InferredImportRecord{
			EstimatedFOB:      decimal.RequireFromString(fob),
			EstimatedWeightKg: decimal.RequireFromString("0.9").Add(decimal.NewFromFloat(0.01 * float64(i))),
		})
	}

	paths, err := r.Batch(batch)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	want := []string{
		filepath.Join(dir, "drones_scatter.png"),
		filepath.Join(dir, "drones_fob_hist.png"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d: got %s, want %s", i, paths[i], want[i])
		}
		pngMagic(t, paths[i])
	}
}

func TestRenderer_BatchEmpty(t *testing.T) {
	r := NewRenderer(t.TempDir(), nil)
	if _, err := r.Batch(&app.Batch{}); !errors.Is(err, errChart) {
		t.Errorf("expected CHART_FAILED, got %v", err)
	}
}

func TestRenderer_Ranking(t *testing.T) {
	r := NewRenderer(t.TempDir(), nil)

	path, err := r.Ranking("Tendencias", []string{"Scooters", "Drones"}, []float64{200, 50}, "ranking.png")
	if err != nil {
		t.Fatalf("Ranking: %v", err)
	}
	pngMagic(t, path)

	if _, err := r.Ranking("x", []string{"a"}, nil, "bad.png"); !errors.Is(err, errChart) {
		t.Errorf("expected CHART_FAILED for mismatched input, got %v", err)
	}
}
