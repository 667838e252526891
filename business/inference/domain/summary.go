package domain

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the KPIs of a set of records.
type Summary struct {
	Count         int
	MeanFOB       decimal.Decimal
	TotalFOB      decimal.Decimal
	TotalWeightKg decimal.Decimal
	MeanUnitValue decimal.Decimal
	MedianFOB     decimal.Decimal
}

// Summarize computes the KPIs of records. Totals are exact; means and the
// median go through float64 and are rounded to 2dp.
func Summarize(records []InferredImportRecord) Summary {
	if len(records) == 0 {
		return Summary{
			MeanFOB:       decimal.Zero,
			TotalFOB:      decimal.Zero,
			TotalWeightKg: decimal.Zero,
			MeanUnitValue: decimal.Zero,
			MedianFOB:     decimal.Zero,
		}
	}

	fobs := make([]float64, len(records))
	units := make([]float64, len(records))
	totalFOB := decimal.Zero
	totalWeight := decimal.Zero
	for i, r := range records {
		fobs[i] = r.EstimatedFOB.InexactFloat64()
		units[i] = r.UnitValuePerKg.InexactFloat64()
		totalFOB = totalFOB.Add(r.EstimatedFOB)
		totalWeight = totalWeight.Add(r.EstimatedWeightKg)
	}

	sorted := make([]float64, len(fobs))
	copy(sorted, fobs)
	floats.Argsort(sorted, make([]int, len(sorted)))

	return Summary{
		Count:         len(records),
		MeanFOB:       decimal.NewFromFloat(stat.Mean(fobs, nil)).Round(2),
		TotalFOB:      totalFOB,
		TotalWeightKg: totalWeight,
		MeanUnitValue: decimal.NewFromFloat(stat.Mean(units, nil)).Round(2),
		MedianFOB:     decimal.NewFromFloat(stat.Quantile(0.5, stat.Empirical, sorted, nil)).Round(2),
	}
}
