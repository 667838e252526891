package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

func pt(entity, period, value string) TimeSeriesPoint {
	return TimeSeriesPoint{EntityKey: entity, Period: period, Value: decimal.RequireFromString(value)}
}

func TestRank_PercentChange(t *testing.T) {
	points := []TimeSeriesPoint{
		pt("Drones", "2026-01", "100"),
		pt("Drones", "2026-02", "120"),
		pt("Drones", "2026-03", "150"),
		pt("Patinetes", "2026-01", "10000"),
		pt("Patinetes", "2026-03", "30000"),
		pt("Consoles", "2026-01", "200"),
		pt("Consoles", "2026-03", "100"),
	}

	got, err := Rank(points, RankOptions{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(got.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got.Results))
	}

	want := []struct {
		key  string
		pct  string
		rank int
	}{
		{"Patinetes", "200", 1},
		{"Drones", "50", 2},
		{"Consoles", "-50", 3},
	}
	for i, w := range want {
		r := got.Results[i]
		if r.EntityKey != w.key || r.Rank != w.rank {
			t.Errorf("position %d: got %s rank %d, want %s rank %d", i, r.EntityKey, r.Rank, w.key, w.rank)
		}
		if !r.PctChange.Equal(decimal.RequireFromString(w.pct)) {
			t.Errorf("%s: pct got %s, want %s", r.EntityKey, r.PctChange, w.pct)
		}
	}

	drones := got.Results[1]
	if drones.StartPeriod != "2026-01" || drones.EndPeriod != "2026-03" {
		t.Errorf("expected 2026-01 → 2026-03, got %s → %s", drones.StartPeriod, drones.EndPeriod)
	}
	if !drones.StartValue.Equal(decimal.NewFromInt(100)) || !drones.EndValue.Equal(decimal.NewFromInt(150)) {
		t.Errorf("unexpected endpoints %s / %s", drones.StartValue, drones.EndValue)
	}
}

func TestRank_UnorderedInputUsesPeriodOrder(t *testing.T) {
	points := []TimeSeriesPoint{
		pt("A", "2026-03-03", "150"),
		pt("A", "2026-03-01", "100"),
		pt("A", "2026-03-02", "90"),
	}
	got, err := Rank(points, RankOptions{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if !got.Results[0].PctChange.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected 50, got %s", got.Results[0].PctChange)
	}
}

func TestRank_Errors(t *testing.T) {
	tests := []struct {
		name   string
		points []TimeSeriesPoint
		want   error
	}{
		{
			name:   "single_period",
			points: []TimeSeriesPoint{pt("A", "2026-01", "10"), pt("B", "2026-01", "5"), pt("B", "2026-02", "6")},
			want:   apperror.ErrInsufficientPeriods,
		},
		{
			name:   "zero_start",
			points: []TimeSeriesPoint{pt("A", "2026-01", "0"), pt("A", "2026-02", "10")},
			want:   apperror.ErrUndefinedChange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rank(tt.points, RankOptions{})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRank_SkipPolicies(t *testing.T) {
	points := []TimeSeriesPoint{
		pt("Zero", "2026-01", "0"),
		pt("Zero", "2026-02", "10"),
		pt("Lonely", "2026-01", "10"),
		pt("Ok", "2026-01", "10"),
		pt("Ok", "2026-02", "11"),
	}

	got, err := Rank(points, RankOptions{SkipUndefined: true, SkipInsufficient: true})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(got.Results) != 1 || got.Results[0].EntityKey != "Ok" {
		t.Fatalf("expected only Ok ranked, got %+v", got.Results)
	}
	if len(got.Skipped) != 2 {
		t.Fatalf("expected 2 skipped, got %+v", got.Skipped)
	}
	reasons := map[string]string{}
	for _, s := range got.Skipped {
		reasons[s.EntityKey] = s.Reason
	}
	if reasons["Zero"] != string(apperror.CodeUndefinedChange) {
		t.Errorf("Zero: got reason %q", reasons["Zero"])
	}
	if reasons["Lonely"] != string(apperror.CodeInsufficientPeriods) {
		t.Errorf("Lonely: got reason %q", reasons["Lonely"])
	}

	// Only the undefined policy is set, so the lonely entity still fails.
	_, err = Rank(points, RankOptions{SkipUndefined: true})
	if !errors.Is(err, apperror.ErrInsufficientPeriods) {
		t.Errorf("expected INSUFFICIENT_PERIODS, got %v", err)
	}
}

func TestRank_TiesBreakByKey(t *testing.T) {
	points := []TimeSeriesPoint{
		pt("b", "1", "10"), pt("b", "2", "20"),
		pt("a", "1", "5"), pt("a", "2", "10"),
		pt("c", "1", "1"), pt("c", "2", "2"),
	}
	got, err := Rank(points, RankOptions{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	for i, key := range []string{"a", "b", "c"} {
		if got.Results[i].EntityKey != key || got.Results[i].Rank != i+1 {
			t.Errorf("position %d: got %s (rank %d), want %s", i, got.Results[i].EntityKey, got.Results[i].Rank, key)
		}
	}
}

func TestRank_TopN(t *testing.T) {
	points := []TimeSeriesPoint{
		pt("a", "1", "10"), pt("a", "2", "11"),
		pt("b", "1", "10"), pt("b", "2", "15"),
		pt("c", "1", "10"), pt("c", "2", "30"),
	}
	got, err := Rank(points, RankOptions{TopN: 2})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(got.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got.Results))
	}
	if got.Results[0].EntityKey != "c" || got.Results[1].EntityKey != "b" {
		t.Errorf("unexpected order %v, %v", got.Results[0], got.Results[1])
	}
}

func TestRank_WindowKeepsLastPeriods(t *testing.T) {
	points := []TimeSeriesPoint{
		pt("a", "2026-03-01", "1"),
		pt("a", "2026-03-02", "100"),
		pt("a", "2026-03-03", "110"),
		pt("a", "2026-03-04", "120"),
	}
	got, err := Rank(points, RankOptions{WindowPeriods: 3})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	r := got.Results[0]
	if r.StartPeriod != "2026-03-02" || !r.PctChange.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected window from 2026-03-02 at 20%%, got %s at %s", r.StartPeriod, r.PctChange)
	}

	// A window of one period leaves nothing to compare.
	_, err = Rank(points, RankOptions{WindowPeriods: 1})
	if !errors.Is(err, apperror.ErrInsufficientPeriods) {
		t.Errorf("expected INSUFFICIENT_PERIODS, got %v", err)
	}
}

func TestRank_DuplicatePeriodsAreSummed(t *testing.T) {
	points := []TimeSeriesPoint{
		pt("a", "2026-03-01", "40"),
		pt("a", "2026-03-01", "60"),
		pt("a", "2026-03-02", "150"),
	}
	got, err := Rank(points, RankOptions{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if !got.Results[0].StartValue.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected summed start 100, got %s", got.Results[0].StartValue)
	}
	if !got.Results[0].PctChange.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected 50, got %s", got.Results[0].PctChange)
	}
}

func TestRank_EmptyAndInvalidOptions(t *testing.T) {
	got, err := Rank(nil, RankOptions{})
	if err != nil || len(got.Results) != 0 {
		t.Errorf("expected empty ranking, got %+v, %v", got, err)
	}

	_, err = Rank(nil, RankOptions{TopN: -1})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
