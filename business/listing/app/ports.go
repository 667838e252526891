// Package app contains application services and port definitions for the listing context.
package app

import (
	"context"

	"github.com/ChiaviniK/ComexioCase/business/listing/domain"
)

// Query selects listings for one category.
type Query struct {
	CategoryID string
	Term       string
	Limit      int
}

// ListingSource is a remote marketplace search.
type ListingSource interface {
	// Search returns up to q.Limit listings matching q.Term, tagged with
	// q.CategoryID. Offers without a usable price are dropped.
	Search(ctx context.Context, q Query) ([]domain.ListingRecord, error)
}
