package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	inferenceApp "github.com/ChiaviniK/ComexioCase/business/inference/app"
	ratesDomain "github.com/ChiaviniK/ComexioCase/business/rates/domain"
	"github.com/ChiaviniK/ComexioCase/business/trends/domain"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
)

const (
	SourceRates      = "rates"
	SourceCategories = "categories"
)

// HistoryProvider returns the daily history of a currency pair.
type HistoryProvider interface {
	History(ctx context.Context, pair currency.Pair, days int) ([]ratesDomain.RatePoint, error)
}

// RateHistorySource ranks currency pairs by their change over the last days.
type RateHistorySource struct {
	history HistoryProvider
	pairs   []currency.Pair
	days    int
}

// NewRateHistorySource creates a RateHistorySource.
func NewRateHistorySource(history HistoryProvider, pairs []currency.Pair, days int) *RateHistorySource {
	return &RateHistorySource{history: history, pairs: pairs, days: days}
}

func (s *RateHistorySource) Name() string { return SourceRates }

// Series fetches every pair concurrently; any failing pair fails the series.
func (s *RateHistorySource) Series(ctx context.Context) ([]domain.TimeSeriesPoint, error) {
	perPair := make([][]domain.TimeSeriesPoint, len(s.pairs))

	g, ctx := errgroup.WithContext(ctx)
	for i, pair := range s.pairs {
		g.Go(func() error {
			points, err := s.history.History(ctx, pair, s.days)
			if err != nil {
				return err
			}
			series := make([]domain.TimeSeriesPoint, 0, len(points))
			for _, p := range points {
				series = append(series, domain.TimeSeriesPoint{
					EntityKey: pair.String(),
					Period:    p.Period(),
					Value:     p.Bid,
				})
			}
			perPair[i] = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.TimeSeriesPoint
	for _, series := range perPair {
		out = append(out, series...)
	}
	return out, nil
}

// DailyTotalsProvider exposes per-category FOB totals by observation date.
type DailyTotalsProvider interface {
	DailyTotals() []inferenceApp.DailyTotal
}

// CategoryTotalsSource ranks categories by the growth of their estimated
// FOB totals across refreshes.
type CategoryTotalsSource struct {
	totals DailyTotalsProvider
}

// NewCategoryTotalsSource creates a CategoryTotalsSource.
func NewCategoryTotalsSource(totals DailyTotalsProvider) *CategoryTotalsSource {
	return &CategoryTotalsSource{totals: totals}
}

func (s *CategoryTotalsSource) Name() string { return SourceCategories }

func (s *CategoryTotalsSource) Series(ctx context.Context) ([]domain.TimeSeriesPoint, error) {
	totals := s.totals.DailyTotals()
	out := make([]domain.TimeSeriesPoint, 0, len(totals))
	for _, t := range totals {
		out = append(out, domain.TimeSeriesPoint{
			EntityKey: t.CategoryID,
			Period:    t.Date,
			Value:     t.TotalFOB,
		})
	}
	return out, nil
}
