package ui

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	"github.com/ChiaviniK/ComexioCase/business/inference/infra/csvexport"
)

func TestLookupVariant(t *testing.T) {
	v, err := LookupVariant("")
	if err != nil || v.Name != DefaultVariant {
		t.Fatalf("expected default variant, got %+v, %v", v, err)
	}

	if _, err := LookupVariant("neon"); err == nil {
		t.Error("expected error for unknown variant")
	}

	for _, name := range VariantNames() {
		v, err := LookupVariant(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := v.validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestVariant_Row(t *testing.T) {
	rec := domain.InferredImportRecord{
		CustomsCode:       "8517.13.00",
		Title:             "Redmi Note 13",
		EstimatedFOB:      decimal.RequireFromString("90.14"),
		EstimatedWeightKg: decimal.RequireFromString("0.18"),
		UnitValuePerKg:    decimal.RequireFromString("500.78"),
		OriginCountry:     "CHINA",
		EntryPort:         "SANTOS",
		ObservedAt:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	compact, _ := LookupVariant("compact")
	got := compact.Row(rec)
	want := []string{"8517.13.00", "Redmi Note 13", "90.14", "CHINA"}
	if len(got) != len(want) {
		t.Fatalf("expected %d cells, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d: got %q, want %q", i, got[i], want[i])
		}
	}

	classic, _ := LookupVariant("classic")
	if n := len(classic.Row(rec)); n != len(csvexport.Header) {
		t.Errorf("classic should render every column, got %d", n)
	}
}

func TestVariant_ValidateRejectsUnknownColumn(t *testing.T) {
	v := Variant{Name: "typo", Columns: []string{"CO_NCM", "Valor_FOB"}}
	if err := v.validate(); err == nil {
		t.Fatal("expected error for misspelled column")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected registration to panic")
		}
	}()
	mustVariants(map[string]Variant{"typo": v})
}
