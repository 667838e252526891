// Package domain contains the import-cost estimation types and engine.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry ports records are attributed to. Listings carry no port data, so
// the port is an approximation picked from this list.
var Ports = []string{"SANTOS", "PARANAGUA", "ITAJAI", "VITORIA", "RIO DE JANEIRO"}

// Origin countries used when a category has no default origin.
var Origins = []string{"CHINA", "ESTADOS UNIDOS", "VIETNA", "TAIWAN"}

// InferredImportRecord is the estimated import declaration behind one
// retail listing. Monetary values are in the rate's base currency.
type InferredImportRecord struct {
	SourceID             string
	CategoryID           string
	CustomsCode          string
	Title                string
	EstimatedFOB         decimal.Decimal // 2dp, >= 0
	EstimatedWeightKg    decimal.Decimal // 3dp, > 0
	UnitValuePerKg       decimal.Decimal // round(fob / weight, 2)
	OriginCountry        string
	EntryPort            string
	RetailPriceReference decimal.Decimal
	ImageReference       string
	Permalink            string
	ObservedAt           time.Time
}

// Date returns the observation date as YYYY-MM-DD.
func (r InferredImportRecord) Date() string {
	return r.ObservedAt.Format(time.DateOnly)
}
