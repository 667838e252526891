// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/ChiaviniK/ComexioCase/internal/config"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
	"github.com/ChiaviniK/ComexioCase/internal/di"
	"github.com/ChiaviniK/ComexioCase/internal/health"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
)

// Monolith is the application container shared by all modules.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	Currencies() *currency.Registry
	Health() *health.Server
	Services() di.ServiceRegistry
}

// Module is a bounded context that registers services and then starts up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

type app struct {
	config     *config.Config
	logger     logger.LoggerInterface
	currencies *currency.Registry
	health     *health.Server
	container  di.Container
}

// New creates the container and registers the global services.
func New(cfg *config.Config, log logger.LoggerInterface, healthServer *health.Server) *app {
	currencies := currency.DefaultRegistry()
	container := di.NewContainer()

	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("currencies", currencies)

	return &app{
		config:     cfg,
		logger:     log,
		currencies: currencies,
		health:     healthServer,
		container:  container,
	}
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) Currencies() *currency.Registry {
	return a.currencies
}

// Health returns the health server, which may be nil.
func (a *app) Health() *health.Server {
	return a.health
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts modules in order.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
