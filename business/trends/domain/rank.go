package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

var hundred = decimal.NewFromInt(100)

// RankOptions control Rank. The zero value ranks every entity over all of
// its periods and fails on the first entity it cannot rank.
type RankOptions struct {
	// TopN truncates the result; 0 keeps everything.
	TopN int
	// WindowPeriods keeps only the last N distinct periods of each entity;
	// 0 keeps all.
	WindowPeriods int
	// SkipUndefined excludes entities whose start value is zero instead of
	// failing with UNDEFINED_CHANGE.
	SkipUndefined bool
	// SkipInsufficient excludes entities with fewer than two periods
	// instead of failing with INSUFFICIENT_PERIODS.
	SkipInsufficient bool
}

// Ranking is the output of Rank.
type Ranking struct {
	Results []TrendResult
	Skipped []SkippedEntity
}

// Rank computes the percentage change of every entity from its first to its
// last period and orders entities by it, highest first. Values sharing an
// entity and period are summed. Entities are evaluated in key order, so the
// reported failure is deterministic.
func Rank(points []TimeSeriesPoint, opts RankOptions) (Ranking, error) {
	if opts.TopN < 0 || opts.WindowPeriods < 0 {
		return Ranking{}, apperror.InvalidInput("rank_options", fmt.Sprintf("%+v", opts))
	}

	grouped := make(map[string]map[string]decimal.Decimal)
	for _, p := range points {
		periods, ok := grouped[p.EntityKey]
		if !ok {
			periods = make(map[string]decimal.Decimal)
			grouped[p.EntityKey] = periods
		}
		periods[p.Period] = periods[p.Period].Add(p.Value)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var ranking Ranking
	for _, key := range keys {
		result, err := evaluate(key, grouped[key], opts.WindowPeriods)
		if err == nil {
			ranking.Results = append(ranking.Results, result)
			continue
		}

		skip := (opts.SkipUndefined && apperror.GetCode(err) == apperror.CodeUndefinedChange) ||
			(opts.SkipInsufficient && apperror.GetCode(err) == apperror.CodeInsufficientPeriods)
		if !skip {
			return Ranking{}, err
		}
		ranking.Skipped = append(ranking.Skipped, SkippedEntity{
			EntityKey: key,
			Reason:    string(apperror.GetCode(err)),
			Err:       err,
		})
	}

	sort.SliceStable(ranking.Results, func(i, j int) bool {
		a, b := ranking.Results[i], ranking.Results[j]
		if c := a.PctChange.Cmp(b.PctChange); c != 0 {
			return c > 0
		}
		return a.EntityKey < b.EntityKey
	})
	for i := range ranking.Results {
		ranking.Results[i].Rank = i + 1
	}
	if opts.TopN > 0 && len(ranking.Results) > opts.TopN {
		ranking.Results = ranking.Results[:opts.TopN]
	}

	return ranking, nil
}

func evaluate(key string, values map[string]decimal.Decimal, window int) (TrendResult, error) {
	periods := make([]string, 0, len(values))
	for p := range values {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	if window > 0 && len(periods) > window {
		periods = periods[len(periods)-window:]
	}

	if len(periods) < 2 {
		return TrendResult{}, apperror.New(apperror.CodeInsufficientPeriods,
			apperror.WithContext(fmt.Sprintf("entity=%q periods=%d", key, len(periods))))
	}

	first, last := periods[0], periods[len(periods)-1]
	start, end := values[first], values[last]
	if start.IsZero() {
		return TrendResult{}, apperror.New(apperror.CodeUndefinedChange,
			apperror.WithContext(fmt.Sprintf("entity=%q start_period=%s", key, first)))
	}

	return TrendResult{
		EntityKey:   key,
		StartPeriod: first,
		EndPeriod:   last,
		StartValue:  start,
		EndValue:    end,
		PctChange:   end.Sub(start).Div(start).Mul(hundred),
	}, nil
}
