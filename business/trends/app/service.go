package app

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ChiaviniK/ComexioCase/business/trends/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
)

const instrumentationName = "comexio/trends"

// Report is a ranking together with where its data came from.
type Report struct {
	Source       string
	Results      []domain.TrendResult
	Skipped      []domain.SkippedEntity
	FromFallback bool
	GeneratedAt  time.Time
}

// TrendService ranks the series of its named sources. When a source fails
// or has no data, the fallback snapshot is ranked instead.
type TrendService struct {
	sources  map[string]SeriesSource
	fallback SeriesSource
	options  domain.RankOptions
	logger   logger.LoggerInterface
	tracer   trace.Tracer
	now      func() time.Time

	fallbacks metric.Int64Counter
}

// NewTrendService creates a TrendService. fallback may be nil, in which
// case source failures are returned to the caller.
func NewTrendService(
	options domain.RankOptions,
	fallback SeriesSource,
	log logger.LoggerInterface,
	sources ...SeriesSource,
) *TrendService {
	fallbacks, _ := otel.Meter(instrumentationName).Int64Counter("trend_fallbacks_total",
		metric.WithDescription("Rankings computed from the fallback snapshot"))

	byName := make(map[string]SeriesSource, len(sources))
	for _, src := range sources {
		byName[src.Name()] = src
	}

	return &TrendService{
		sources:   byName,
		fallback:  fallback,
		options:   options,
		logger:    log,
		tracer:    otel.Tracer(instrumentationName),
		now:       time.Now,
		fallbacks: fallbacks,
	}
}

// Sources lists the registered source names.
func (s *TrendService) Sources() []string {
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rank ranks the series of the named source.
func (s *TrendService) Rank(ctx context.Context, sourceName string) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "trends.rank",
		trace.WithAttributes(attribute.String("source", sourceName)))
	defer span.End()

	src, ok := s.sources[sourceName]
	if !ok {
		return nil, apperror.InvalidInput("trend_source", sourceName)
	}

	report := &Report{Source: src.Name(), GeneratedAt: s.now()}

	points, err := src.Series(ctx)
	if err != nil || len(points) == 0 {
		if s.fallback == nil {
			if err == nil {
				return report, nil
			}
			span.RecordError(err)
			return nil, apperror.Wrap(err, apperror.CodeSeriesFetchFailed, sourceName)
		}

		kv := []any{"source", sourceName, "fallback", s.fallback.Name()}
		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			kv = append(kv, appErr.ToLog()...)
		case err != nil:
			kv = append(kv, "error", err.Error())
		}
		s.logger.Warn(ctx, "trend source unavailable, ranking fallback snapshot", kv...)
		s.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("source", sourceName)))

		points, err = s.fallback.Series(ctx)
		if err != nil {
			span.RecordError(err)
			return nil, apperror.Wrap(err, apperror.CodeSeriesFetchFailed, s.fallback.Name())
		}
		report.Source = s.fallback.Name()
		report.FromFallback = true
	}

	ranking, err := domain.Rank(points, s.options)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	report.Results = ranking.Results
	report.Skipped = ranking.Skipped

	for _, sk := range ranking.Skipped {
		s.logger.Debug(ctx, "entity skipped", "entity", sk.EntityKey, "reason", sk.Reason)
	}
	span.SetAttributes(
		attribute.Int("points", len(points)),
		attribute.Int("results", len(report.Results)),
		attribute.Bool("fallback", report.FromFallback),
	)
	s.logger.Info(ctx, "trends ranked",
		"source", report.Source,
		"points", len(points),
		"results", len(report.Results),
		"skipped", len(report.Skipped))

	return report, nil
}
