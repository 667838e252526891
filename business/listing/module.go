// Package listing implements the marketplace listing bounded context.
package listing

import (
	"context"

	"github.com/ChiaviniK/ComexioCase/business/listing/app"
	listingDI "github.com/ChiaviniK/ComexioCase/business/listing/di"
	"github.com/ChiaviniK/ComexioCase/business/listing/infra/mercadolivre"
	"github.com/ChiaviniK/ComexioCase/internal/config"
	"github.com/ChiaviniK/ComexioCase/internal/di"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
	"github.com/ChiaviniK/ComexioCase/internal/monolith"
)

// Module implements the listing bounded context.
type Module struct{}

// RegisterServices registers all listing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, listingDI.ListingSource, func(sr di.ServiceRegistry) app.ListingSource {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := mercadolivre.NewClient(mercadolivre.Config{
			BaseURL:           cfg.Listings.BaseURL,
			Site:              cfg.Listings.Site,
			Timeout:           cfg.Listings.Timeout,
			RequestsPerMinute: cfg.Listings.RequestsPerMinute,
			AccessToken:       cfg.Listings.AccessToken,
		}, log)
		if err != nil {
			panic("failed to create mercadolivre client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, listingDI.ListingService, func(sr di.ServiceRegistry) *app.ListingService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewListingService(listingDI.GetListingSource(sr), cfg.Listings.CacheTTL, cfg.Listings.Limit, log)
	})

	return nil
}

// Startup initializes the listing module. Searches are lazy.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	listingDI.GetListingService(mono.Services())
	mono.Logger().Info(ctx, "listing module started",
		"site", mono.Config().Listings.Site,
		"limit", mono.Config().Listings.Limit)
	return nil
}
