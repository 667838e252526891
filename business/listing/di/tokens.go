// Package di contains dependency injection tokens for the listing context.
package di

import (
	"github.com/ChiaviniK/ComexioCase/business/listing/app"
	"github.com/ChiaviniK/ComexioCase/internal/di"
)

// Public service tokens - exposed to other modules
var (
	ListingService = di.NewToken[*app.ListingService]("listing.ListingService")
)

// Private dependency tokens - internal to listing module
var (
	ListingSource = di.NewToken[app.ListingSource]("listing:listingSource")
)

func GetListingService(c di.ServiceRegistry) *app.ListingService {
	return di.GetToken(c, ListingService)
}

func GetListingSource(c di.ServiceRegistry) app.ListingSource {
	return di.GetToken(c, ListingSource)
}
