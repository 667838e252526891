// Package domain contains the time series and growth ranking types.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TimeSeriesPoint is one observation of an entity. Period labels must sort
// chronologically as strings (ISO dates, "2026-03", ...).
type TimeSeriesPoint struct {
	EntityKey string
	Period    string
	Value     decimal.Decimal
}

// TrendResult is the growth of one entity between its first and last
// period in the window.
type TrendResult struct {
	EntityKey   string
	StartPeriod string
	EndPeriod   string
	StartValue  decimal.Decimal
	EndValue    decimal.Decimal
	PctChange   decimal.Decimal // can be negative
	Rank        int             // 1 = highest PctChange
}

func (r TrendResult) String() string {
	return fmt.Sprintf("#%d %s %s%% (%s → %s)", r.Rank, r.EntityKey, r.PctChange.StringFixed(2),
		r.StartPeriod, r.EndPeriod)
}

// SkippedEntity records an entity excluded from a ranking.
type SkippedEntity struct {
	EntityKey string
	Reason    string
	Err       error
}
