package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/internal/apperror"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
)

func TestNewExchangeRate(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		bid     string
		wantErr bool
	}{
		{"positive", "5.85", false},
		{"zero", "0", true},
		{"negative", "-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewExchangeRate(currency.USDBRL, decimal.RequireFromString(tt.bid), now, SourceRemote)
			if tt.wantErr {
				if !errors.Is(err, apperror.ErrInvalidInput) {
					t.Errorf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.IsFallback() {
				t.Error("remote rate reported as fallback")
			}
		})
	}
}

func TestExchangeRate_ToBase(t *testing.T) {
	r := Fallback(currency.USDBRL, decimal.RequireFromString("5"), time.Now())

	got, err := r.ToBase(decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("ToBase: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected 20, got %s", got)
	}
	if !r.IsFallback() {
		t.Error("expected fallback source")
	}

	if _, err := (ExchangeRate{}).ToBase(decimal.NewFromInt(1)); err == nil {
		t.Error("expected error for zero bid")
	}
}

func TestRatePoint_Period(t *testing.T) {
	p := RatePoint{Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}
	if p.Period() != "2026-01-05" {
		t.Errorf("expected 2026-01-05, got %s", p.Period())
	}
}
