// Package app contains application services and port definitions for the inference context.
package app

import (
	"context"

	catalogDomain "github.com/ChiaviniK/ComexioCase/business/catalog/domain"
	listingDomain "github.com/ChiaviniK/ComexioCase/business/listing/domain"
	ratesDomain "github.com/ChiaviniK/ComexioCase/business/rates/domain"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
)

// CategoryLookup resolves category ids to profiles.
type CategoryLookup interface {
	Lookup(id string) (catalogDomain.CategoryProfile, error)
}

// RateProvider returns the current exchange rate. It never fails.
type RateProvider interface {
	GetRate(ctx context.Context, pair currency.Pair) ratesDomain.ExchangeRate
}

// ListingProvider returns the current offers for a category.
type ListingProvider interface {
	Listings(ctx context.Context, categoryID, term string) ([]listingDomain.ListingRecord, error)
}

// Reporter renders refreshed batches.
type Reporter interface {
	// Report outputs one batch.
	Report(batch *Batch) error
}
