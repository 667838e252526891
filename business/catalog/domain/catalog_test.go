package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

func TestCatalog_Lookup(t *testing.T) {
	c, err := NewCatalog(DefaultProfiles())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	tests := []struct {
		id         string
		wantCode   string
		wantWeight string
		wantMarkup string
		wantOrigin string
		wantErr    error
	}{
		{id: "smartphones", wantCode: "8517.13.00", wantWeight: "0.18", wantMarkup: "1.6", wantOrigin: "CHINA"},
		{id: "drones", wantCode: "8806.22.00", wantWeight: "0.9", wantMarkup: "1.8", wantOrigin: "CHINA"},
		{id: "headphones", wantCode: "8518.30.00", wantWeight: "0.05", wantMarkup: "2.5", wantOrigin: "ESTADOS UNIDOS"},
		{id: "consoles", wantCode: "9504.50.00", wantWeight: "4.5", wantMarkup: "1.4", wantOrigin: "ESTADOS UNIDOS"},
		{id: "smartwatches", wantCode: "8517.62.77", wantWeight: "0.1", wantMarkup: "2", wantOrigin: "ESTADOS UNIDOS"},
		{id: "bicycles", wantErr: apperror.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, err := c.Lookup(tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.CustomsCode != tt.wantCode {
				t.Errorf("customs code = %s, want %s", p.CustomsCode, tt.wantCode)
			}
			if !p.UnitWeightKg.Equal(decimal.RequireFromString(tt.wantWeight)) {
				t.Errorf("weight = %s, want %s", p.UnitWeightKg, tt.wantWeight)
			}
			if !p.MarkupFactor.Equal(decimal.RequireFromString(tt.wantMarkup)) {
				t.Errorf("markup = %s, want %s", p.MarkupFactor, tt.wantMarkup)
			}
			if p.DefaultOrigin != tt.wantOrigin {
				t.Errorf("origin = %s, want %s", p.DefaultOrigin, tt.wantOrigin)
			}
		})
	}
}

func TestCatalog_DefaultCategoryMakesLookupTotal(t *testing.T) {
	c, err := NewCatalog(DefaultProfiles(), WithDefaultCategory("smartwatches"))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	p, err := c.Lookup("bicycles")
	if err != nil {
		t.Fatalf("expected default profile, got %v", err)
	}
	if p.ID != "smartwatches" {
		t.Errorf("expected smartwatches default, got %s", p.ID)
	}

	if _, err := NewCatalog(DefaultProfiles(), WithDefaultCategory("nope")); !errors.Is(err, apperror.ErrUnknownCategory) {
		t.Errorf("expected unknown default to fail, got %v", err)
	}
}

func TestCatalog_RejectsInvalidProfiles(t *testing.T) {
	base := DefaultProfiles()[0]

	tests := []struct {
		name   string
		mutate func(*CategoryProfile)
	}{
		{"empty_id", func(p *CategoryProfile) { p.ID = "" }},
		{"bad_code", func(p *CategoryProfile) { p.CustomsCode = "85171300" }},
		{"zero_weight", func(p *CategoryProfile) { p.UnitWeightKg = decimal.Zero }},
		{"markup_one", func(p *CategoryProfile) { p.MarkupFactor = decimal.NewFromInt(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			if _, err := NewCatalog([]CategoryProfile{p}); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if _, err := NewCatalog([]CategoryProfile{base, base}); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestCatalog_IDsKeepOrder(t *testing.T) {
	c, err := NewCatalog(DefaultProfiles())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	want := []string{"smartphones", "drones", "headphones", "consoles", "smartwatches"}
	got := c.IDs()
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
