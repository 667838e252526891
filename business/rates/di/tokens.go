// Package di contains dependency injection tokens for the rates context.
package di

import (
	"github.com/ChiaviniK/ComexioCase/business/rates/app"
	"github.com/ChiaviniK/ComexioCase/internal/di"
)

// Public service tokens - exposed to other modules
var (
	RateService = di.NewToken[*app.RateService]("rates.RateService")
)

// Private dependency tokens - internal to rates module
var (
	RateSource = di.NewToken[app.RateSource]("rates:rateSource")
)

func GetRateService(c di.ServiceRegistry) *app.RateService {
	return di.GetToken(c, RateService)
}

func GetRateSource(c di.ServiceRegistry) app.RateSource {
	return di.GetToken(c, RateSource)
}
