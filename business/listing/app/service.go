package app

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ChiaviniK/ComexioCase/business/listing/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
)

const defaultLimit = 30

// ListingService fronts the listing source with a short-lived cache.
type ListingService struct {
	source ListingSource
	cache  *cache.Cache
	ttl    time.Duration
	limit  int
	logger logger.LoggerInterface
	tracer trace.Tracer
}

// NewListingService creates a ListingService. A ttl of zero disables caching.
func NewListingService(source ListingSource, ttl time.Duration, limit int, log logger.LoggerInterface) *ListingService {
	if limit <= 0 {
		limit = defaultLimit
	}
	cleanup := 2 * ttl
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &ListingService{
		source: source,
		cache:  cache.New(ttl, cleanup),
		ttl:    ttl,
		limit:  limit,
		logger: log,
		tracer: otel.Tracer("comexio/listing"),
	}
}

// Listings returns the current offers for a category. Errors are coded
// LISTING_FETCH_FAILED unless the source already coded them.
func (s *ListingService) Listings(ctx context.Context, categoryID, term string) ([]domain.ListingRecord, error) {
	ctx, span := s.tracer.Start(ctx, "listing.listings",
		trace.WithAttributes(attribute.String("category", categoryID), attribute.String("term", term)))
	defer span.End()

	key := fmt.Sprintf("%s|%s|%d", categoryID, term, s.limit)
	if v, ok := s.cache.Get(key); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return v.([]domain.ListingRecord), nil
	}

	records, err := s.source.Search(ctx, Query{CategoryID: categoryID, Term: term, Limit: s.limit})
	if err != nil {
		span.RecordError(err)
		return nil, apperror.Wrap(err, apperror.CodeListingFetchFailed, categoryID)
	}

	if s.ttl > 0 {
		s.cache.Set(key, records, s.ttl)
	}
	span.SetAttributes(attribute.Int("records", len(records)))
	s.logger.Debug(ctx, "listings fetched", "category", categoryID, "records", len(records))
	return records, nil
}

// Flush drops every cached search.
func (s *ListingService) Flush() {
	s.cache.Flush()
}
