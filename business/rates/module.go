// Package rates implements the exchange rate bounded context.
package rates

import (
	"context"

	"github.com/ChiaviniK/ComexioCase/business/rates/app"
	ratesDI "github.com/ChiaviniK/ComexioCase/business/rates/di"
	"github.com/ChiaviniK/ComexioCase/business/rates/infra/awesomeapi"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
	"github.com/ChiaviniK/ComexioCase/internal/config"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
	"github.com/ChiaviniK/ComexioCase/internal/di"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
	"github.com/ChiaviniK/ComexioCase/internal/monolith"
)

// Module implements the rates bounded context.
type Module struct{}

// RegisterServices registers all rates services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, ratesDI.RateSource, func(sr di.ServiceRegistry) app.RateSource {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := awesomeapi.NewClient(awesomeapi.Config{
			BaseURL: cfg.Rates.BaseURL,
			Timeout: cfg.Rates.Timeout,
		}, log)
		if err != nil {
			panic("failed to create awesomeapi client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, ratesDI.RateService, func(sr di.ServiceRegistry) *app.RateService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewRateService(ratesDI.GetRateSource(sr), app.ServiceConfig{
			TTL:         cfg.Rates.TTL,
			Timeout:     cfg.Rates.Timeout,
			FallbackBid: cfg.Rates.FallbackBidDecimal(),
		}, log)
	})

	return nil
}

// Startup warms the cache and registers the rate source health check.
// A failing source does not stop startup; the fallback covers it.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	svc := ratesDI.GetRateService(mono.Services())

	pair, err := mono.Config().Rates.CurrencyPair()
	if err != nil {
		return err
	}
	if err := mono.Currencies().Supports(pair); err != nil {
		return apperror.InvalidInput("rates.pair", pair.String())
	}
	for _, s := range mono.Config().Rates.HistoryPairs {
		hp, err := currency.ParsePair(s)
		if err != nil || mono.Currencies().Supports(hp) != nil {
			return apperror.InvalidInput("rates.history_pairs", s)
		}
	}

	rate := svc.GetRate(ctx, pair)
	if rate.IsFallback() {
		log.Warn(ctx, "rates module started degraded", "pair", pair.String(), "bid", rate.Bid.String())
	} else {
		log.Info(ctx, "rates module started", "pair", pair.String(), "bid", rate.Bid.String())
	}

	mono.Health().RegisterCheck("rate_source", func(ctx context.Context) (bool, string) {
		if svc.Degraded() {
			return false, "using fallback rate"
		}
		return true, ""
	})
	return nil
}
