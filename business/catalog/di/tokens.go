// Package di contains dependency injection tokens for the catalog context.
package di

import (
	"github.com/ChiaviniK/ComexioCase/business/catalog/domain"
	"github.com/ChiaviniK/ComexioCase/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Catalog = di.NewToken[*domain.Catalog]("catalog.Catalog")
)

func GetCatalog(c di.ServiceRegistry) *domain.Catalog {
	return di.GetToken(c, Catalog)
}
