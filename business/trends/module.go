// Package trends implements the growth ranking bounded context.
package trends

import (
	"context"

	inferenceDI "github.com/ChiaviniK/ComexioCase/business/inference/di"
	ratesDI "github.com/ChiaviniK/ComexioCase/business/rates/di"
	"github.com/ChiaviniK/ComexioCase/business/trends/app"
	trendsDI "github.com/ChiaviniK/ComexioCase/business/trends/di"
	"github.com/ChiaviniK/ComexioCase/business/trends/domain"
	"github.com/ChiaviniK/ComexioCase/business/trends/infra/snapshot"
	"github.com/ChiaviniK/ComexioCase/internal/config"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
	"github.com/ChiaviniK/ComexioCase/internal/di"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
	"github.com/ChiaviniK/ComexioCase/internal/monolith"
)

// Module implements the trends bounded context.
type Module struct{}

// RegisterServices registers all trends services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, trendsDI.Snapshot, func(sr di.ServiceRegistry) app.SeriesSource {
		cfg := sr.Get("config").(*config.Config)
		return snapshot.NewSource(cfg.Trends.SnapshotFile)
	})

	di.RegisterToken(c, trendsDI.TrendService, func(sr di.ServiceRegistry) *app.TrendService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		pairs := make([]currency.Pair, 0, len(cfg.Rates.HistoryPairs))
		for _, p := range cfg.Rates.HistoryPairs {
			pair, err := currency.ParsePair(p)
			if err != nil {
				panic("invalid history pair: " + err.Error())
			}
			pairs = append(pairs, pair)
		}

		return app.NewTrendService(
			RankOptions(cfg.Trends),
			trendsDI.GetSnapshot(sr),
			log,
			app.NewCategoryTotalsSource(inferenceDI.GetBatchHistory(sr)),
			app.NewRateHistorySource(ratesDI.GetRateService(sr), pairs, cfg.Rates.HistoryDays),
		)
	})

	return nil
}

// Startup checks that the fallback snapshot can be ranked.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	svc := trendsDI.GetTrendService(mono.Services())

	points, err := trendsDI.GetSnapshot(mono.Services()).Series(ctx)
	if err != nil {
		return err
	}
	log.Info(ctx, "trends module started",
		"sources", svc.Sources(),
		"snapshot_points", len(points),
		"window_periods", mono.Config().Trends.WindowPeriods)
	return nil
}

// RankOptions converts the configured ranking parameters.
func RankOptions(cfg config.TrendsConfig) domain.RankOptions {
	return domain.RankOptions{
		TopN:             cfg.TopN,
		WindowPeriods:    cfg.WindowPeriods,
		SkipUndefined:    cfg.SkipUndefined,
		SkipInsufficient: cfg.SkipInsufficient,
	}
}
