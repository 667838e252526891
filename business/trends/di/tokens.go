// Package di contains dependency injection tokens for the trends context.
package di

import (
	"github.com/ChiaviniK/ComexioCase/business/trends/app"
	"github.com/ChiaviniK/ComexioCase/internal/di"
)

// Public service tokens - exposed to other modules
var (
	TrendService = di.NewToken[*app.TrendService]("trends.TrendService")
)

// Private service tokens - internal to trends module
var (
	Snapshot = di.NewToken[app.SeriesSource]("trends:snapshot")
)

func GetTrendService(c di.ServiceRegistry) *app.TrendService {
	return di.GetToken(c, TrendService)
}

func GetSnapshot(c di.ServiceRegistry) app.SeriesSource {
	return di.GetToken(c, Snapshot)
}
