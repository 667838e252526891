// Package domain contains the reference data of the catalog context.
package domain

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

var customsCodePattern = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)

// CategoryProfile is the static reference data for one product category.
type CategoryProfile struct {
	ID            string
	Name          string
	CustomsCode   string // NCM, "NNNN.NN.NN"
	UnitWeightKg  decimal.Decimal
	MarkupFactor  decimal.Decimal
	SearchTerm    string
	DefaultOrigin string // empty = chosen per record
}

// Validate checks the profile invariants.
func (p CategoryProfile) Validate() error {
	switch {
	case p.ID == "":
		return apperror.New(apperror.CodeRequiredField, apperror.WithContext("category id"))
	case !customsCodePattern.MatchString(p.CustomsCode):
		return apperror.InvalidInput("customs_code", p.CustomsCode)
	case !p.UnitWeightKg.IsPositive():
		return apperror.InvalidInput("unit_weight_kg", p.UnitWeightKg)
	case p.MarkupFactor.LessThanOrEqual(decimal.NewFromInt(1)):
		return apperror.InvalidInput("markup_factor", p.MarkupFactor)
	}
	return nil
}

// DisplayName returns Name, or the id when unset.
func (p CategoryProfile) DisplayName() string {
	if p.Name == "" {
		return p.ID
	}
	return p.Name
}

// Query returns the marketplace search term, defaulting to the name.
func (p CategoryProfile) Query() string {
	if p.SearchTerm != "" {
		return p.SearchTerm
	}
	return p.DisplayName()
}

// DefaultProfiles returns the built-in catalog.
func DefaultProfiles() []CategoryProfile {
	return []CategoryProfile{
		{
			ID:            "smartphones",
			Name:          "Smartphones (Xiaomi/iPhone)",
			CustomsCode:   "8517.13.00",
			UnitWeightKg:  decimal.RequireFromString("0.18"),
			MarkupFactor:  decimal.RequireFromString("1.6"),
			SearchTerm:    "Xiaomi Redmi Note",
			DefaultOrigin: "CHINA",
		},
		{
			ID:            "drones",
			Name:          "Drones (DJI)",
			CustomsCode:   "8806.22.00",
			UnitWeightKg:  decimal.RequireFromString("0.90"),
			MarkupFactor:  decimal.RequireFromString("1.8"),
			SearchTerm:    "Drone DJI Mini",
			DefaultOrigin: "CHINA",
		},
		{
			ID:            "headphones",
			Name:          "Fones Bluetooth",
			CustomsCode:   "8518.30.00",
			UnitWeightKg:  decimal.RequireFromString("0.05"),
			MarkupFactor:  decimal.RequireFromString("2.5"),
			SearchTerm:    "Fone Bluetooth",
			DefaultOrigin: "ESTADOS UNIDOS",
		},
		{
			ID:            "consoles",
			Name:          "Consoles (PS5/Xbox)",
			CustomsCode:   "9504.50.00",
			UnitWeightKg:  decimal.RequireFromString("4.50"),
			MarkupFactor:  decimal.RequireFromString("1.4"),
			SearchTerm:    "Consoles",
			DefaultOrigin: "ESTADOS UNIDOS",
		},
		{
			ID:            "smartwatches",
			Name:          "Smartwatches",
			CustomsCode:   "8517.62.77",
			UnitWeightKg:  decimal.RequireFromString("0.10"),
			MarkupFactor:  decimal.RequireFromString("2.0"),
			SearchTerm:    "Smartwatches",
			DefaultOrigin: "ESTADOS UNIDOS",
		},
	}
}
