// Package catalog implements the category reference-data context.
package catalog

import (
	"context"

	catalogDI "github.com/ChiaviniK/ComexioCase/business/catalog/di"
	"github.com/ChiaviniK/ComexioCase/business/catalog/domain"
	"github.com/ChiaviniK/ComexioCase/business/catalog/infra/yamlfile"
	"github.com/ChiaviniK/ComexioCase/internal/config"
	"github.com/ChiaviniK/ComexioCase/internal/di"
	"github.com/ChiaviniK/ComexioCase/internal/monolith"
)

// Module implements the catalog bounded context.
type Module struct{}

// RegisterServices registers the catalog with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, catalogDI.Catalog, func(sr di.ServiceRegistry) *domain.Catalog {
		cfg := sr.Get("config").(*config.Config)

		cat, err := Build(cfg.Catalog)
		if err != nil {
			panic("failed to build catalog: " + err.Error())
		}
		return cat
	})
	return nil
}

// Startup resolves the catalog eagerly so file errors surface at boot.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cat := catalogDI.GetCatalog(mono.Services())
	mono.Logger().Info(ctx, "catalog module started", "categories", len(cat.IDs()))
	return nil
}

// Build creates the catalog from the configured YAML file, or the built-in
// profiles when no file is set.
func Build(cfg config.CatalogConfig) (*domain.Catalog, error) {
	profiles := domain.DefaultProfiles()
	if cfg.File != "" {
		loaded, err := yamlfile.Load(cfg.File)
		if err != nil {
			return nil, err
		}
		profiles = loaded
	}

	var opts []domain.CatalogOption
	if cfg.DefaultCategory != "" {
		opts = append(opts, domain.WithDefaultCategory(cfg.DefaultCategory))
	}
	return domain.NewCatalog(profiles, opts...)
}
