package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/business/trends/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

func TestRead(t *testing.T) {
	input := "entity,period,value\n" +
		"drones,2026-01,100\n" +
		"\n" +
		" drones , 2026-02 , 150.50\n"

	points, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[1].EntityKey != "drones" || points[1].Period != "2026-02" {
		t.Errorf("expected trimmed fields, got %+v", points[1])
	}
	if !points[1].Value.Equal(decimal.RequireFromString("150.50")) {
		t.Errorf("expected 150.50, got %s", points[1].Value)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong_header", "name,date,amount\na,1,2\n"},
		{"bad_value", "entity,period,value\na,2026-01,abc\n"},
		{"missing_column", "entity,period,value\na,2026-01\n"},
		{"empty_entity", "entity,period,value\n,2026-01,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if apperror.GetCode(err) != apperror.CodeInvalidFormat {
				t.Errorf("expected INVALID_FORMAT, got %v", err)
			}
		})
	}
}

func TestRead_Empty(t *testing.T) {
	points, err := Read(strings.NewReader(""))
	if err != nil || len(points) != 0 {
		t.Errorf("expected no points, got %v, %v", points, err)
	}
}

func TestSource_DefaultSnapshotRanks(t *testing.T) {
	src := NewSource("")
	points, err := src.Series(context.Background())
	if err != nil {
		t.Fatalf("Series: %v", err)
	}

	ranking, err := domain.Rank(points, domain.RankOptions{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	top := ranking.Results[0]
	if top.EntityKey != "scooters" || !top.PctChange.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected scooters at 200%%, got %s", top)
	}
}

func TestSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	if err := os.WriteFile(path, []byte("entity,period,value\nx,1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	points, err := NewSource(path).Series(context.Background())
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if len(points) != 1 || points[0].EntityKey != "x" {
		t.Errorf("unexpected points %+v", points)
	}

	_, err = NewSource(filepath.Join(t.TempDir(), "missing.csv")).Series(context.Background())
	if !errors.Is(err, &apperror.AppError{Code: apperror.CodeSeriesFetchFailed}) {
		t.Errorf("expected SERIES_FETCH_FAILED, got %v", err)
	}
}
