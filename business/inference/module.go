// Package inference implements the import estimation bounded context.
package inference

import (
	"context"

	"github.com/shopspring/decimal"

	catalogDI "github.com/ChiaviniK/ComexioCase/business/catalog/di"
	"github.com/ChiaviniK/ComexioCase/business/inference/app"
	inferenceDI "github.com/ChiaviniK/ComexioCase/business/inference/di"
	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	"github.com/ChiaviniK/ComexioCase/business/inference/infra/chart"
	listingDI "github.com/ChiaviniK/ComexioCase/business/listing/di"
	ratesDI "github.com/ChiaviniK/ComexioCase/business/rates/di"
	"github.com/ChiaviniK/ComexioCase/internal/config"
	"github.com/ChiaviniK/ComexioCase/internal/di"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
	"github.com/ChiaviniK/ComexioCase/internal/monolith"
	"github.com/ChiaviniK/ComexioCase/pkg/ui"
)

// Module implements the inference bounded context.
type Module struct{}

// RegisterServices registers all inference services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, inferenceDI.Engine, func(sr di.ServiceRegistry) *domain.Engine {
		cfg := sr.Get("config").(*config.Config)
		return domain.NewEngine(EngineConfig(cfg.Inference), domain.NewSeededRandomness(cfg.Inference.Seed))
	})

	di.RegisterToken(c, inferenceDI.BatchHistory, func(sr di.ServiceRegistry) *app.BatchHistory {
		return app.NewBatchHistory(0)
	})

	di.RegisterToken(c, inferenceDI.ImportService, func(sr di.ServiceRegistry) *app.ImportService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		pair, err := cfg.Rates.CurrencyPair()
		if err != nil {
			panic("invalid rates pair: " + err.Error())
		}

		return app.NewImportService(
			catalogDI.GetCatalog(sr),
			ratesDI.GetRateService(sr),
			listingDI.GetListingService(sr),
			inferenceDI.GetEngine(sr),
			inferenceDI.GetBatchHistory(sr),
			pair,
			log,
		)
	})

	di.RegisterToken(c, inferenceDI.ChartRenderer, func(sr di.ServiceRegistry) *chart.Renderer {
		cfg := sr.Get("config").(*config.Config)

		variant, err := ui.LookupVariant(cfg.Presentation.Variant)
		if err != nil {
			panic("failed to resolve presentation variant: " + err.Error())
		}
		return chart.NewRenderer(cfg.Export.ChartsDir, variant.AccentColor())
	})

	return nil
}

// Startup resolves the import service so wiring errors surface at boot.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	svc := inferenceDI.GetImportService(mono.Services())
	cfg := mono.Config().Inference

	mono.Logger().Info(ctx, "inference module started",
		"pair", svc.Pair().String(),
		"tax_multiplier", cfg.TaxMultiplier,
		"deterministic", cfg.Deterministic)
	return nil
}

// EngineConfig converts the configured parameters.
func EngineConfig(cfg config.InferenceConfig) domain.EngineConfig {
	return domain.EngineConfig{
		TaxMultiplier: cfg.TaxMultiplierDecimal(),
		JitterMin:     cfg.JitterMin,
		JitterMax:     cfg.JitterMax,
		Deterministic: cfg.Deterministic,
		WeightFloorKg: decimal.NewFromFloat(cfg.WeightFloorKg),
	}
}
