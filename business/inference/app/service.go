package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
)

const instrumentationName = "comexio/inference"

// ImportService runs the rate → catalog → listings → inference pipeline.
type ImportService struct {
	catalog  CategoryLookup
	rates    RateProvider
	listings ListingProvider
	engine   *domain.Engine
	history  *BatchHistory
	pair     currency.Pair
	logger   logger.LoggerInterface
	tracer   trace.Tracer
	now      func() time.Time

	recordsInferred metric.Int64Counter
	recordsSkipped  metric.Int64Counter
}

// NewImportService creates an ImportService.
func NewImportService(
	catalog CategoryLookup,
	rates RateProvider,
	listings ListingProvider,
	engine *domain.Engine,
	history *BatchHistory,
	pair currency.Pair,
	log logger.LoggerInterface,
) *ImportService {
	meter := otel.Meter(instrumentationName)
	inferred, _ := meter.Int64Counter("records_inferred_total",
		metric.WithDescription("Import records estimated from listings"))
	skipped, _ := meter.Int64Counter("records_skipped_total",
		metric.WithDescription("Listings rejected by the inference engine"))

	if history == nil {
		history = NewBatchHistory(0)
	}

	return &ImportService{
		catalog:         catalog,
		rates:           rates,
		listings:        listings,
		engine:          engine,
		history:         history,
		pair:            pair,
		logger:          log,
		tracer:          otel.Tracer(instrumentationName),
		now:             time.Now,
		recordsInferred: inferred,
		recordsSkipped:  skipped,
	}
}

// Refresh builds a new batch for categoryID. An unknown category is an
// error; a listing failure yields an empty, degraded batch.
func (s *ImportService) Refresh(ctx context.Context, categoryID string) (*Batch, error) {
	ctx, span := s.tracer.Start(ctx, "inference.refresh",
		trace.WithAttributes(attribute.String("category", categoryID)))
	defer span.End()

	profile, err := s.catalog.Lookup(categoryID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	rate := s.rates.GetRate(ctx, s.pair)
	createdAt := s.now()

	batch := &Batch{
		ID:        uuid.NewString(),
		Category:  profile,
		Rate:      rate,
		CreatedAt: createdAt,
	}

	listings, err := s.listings.Listings(ctx, profile.ID, profile.Query())
	if err != nil {
		span.RecordError(err)
		batch.Degraded = true
		kv := []any{"category", profile.ID, "error", err.Error()}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			kv = append(appErr.ToLog(), "category", profile.ID)
		}
		s.logger.Warn(ctx, "listings unavailable, returning empty batch", kv...)
	}

	attrs := metric.WithAttributes(attribute.String("category", profile.ID))
	opts := domain.InferOptions{ObservedAt: createdAt}
	records := make([]domain.InferredImportRecord, 0, len(listings))
	for _, l := range listings {
		rec, err := s.engine.Infer(l, profile, rate, opts)
		if err != nil {
			s.recordsSkipped.Add(ctx, 1, attrs)
			s.logger.Debug(ctx, "listing skipped", "source_id", l.SourceID, "error", err.Error())
			continue
		}
		records = append(records, rec)
	}
	s.recordsInferred.Add(ctx, int64(len(records)), attrs)

	batch.Records = records
	batch.Summary = domain.Summarize(records)
	s.history.Add(batch)

	span.SetAttributes(
		attribute.String("batch_id", batch.ID),
		attribute.Int("records", len(records)),
		attribute.Bool("rate_fallback", rate.IsFallback()),
	)
	s.logger.Info(ctx, "batch refreshed",
		"batch_id", batch.ID,
		"category", profile.ID,
		"records", len(records),
		"rate", rate.Bid.String(),
		"rate_source", string(rate.Source))

	return batch, nil
}

// History returns the batch history.
func (s *ImportService) History() *BatchHistory {
	return s.history
}

// Pair returns the conversion pair used for refreshes.
func (s *ImportService) Pair() currency.Pair {
	return s.pair
}
