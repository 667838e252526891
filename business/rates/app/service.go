package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ChiaviniK/ComexioCase/business/rates/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
)

const instrumentationName = "comexio/rates"

// ServiceConfig holds RateService settings.
type ServiceConfig struct {
	TTL         time.Duration   // cache validity window
	Timeout     time.Duration   // bound on one remote fetch
	FallbackBid decimal.Decimal // returned when the source fails
}

// RateService serves exchange rates with caching and a constant fallback.
type RateService struct {
	source   RateSource
	cache    *RateCache
	config   ServiceConfig
	logger   logger.LoggerInterface
	tracer   trace.Tracer
	now      func() time.Time
	degraded atomic.Bool

	cacheHits metric.Int64Counter
	fallbacks metric.Int64Counter
}

// NewRateService creates a RateService.
func NewRateService(source RateSource, cfg ServiceConfig, log logger.LoggerInterface) *RateService {
	meter := otel.Meter(instrumentationName)
	cacheHits, _ := meter.Int64Counter("rate_cache_hits_total",
		metric.WithDescription("Exchange rate lookups served from cache"))
	fallbacks, _ := meter.Int64Counter("rate_fallback_total",
		metric.WithDescription("Exchange rate lookups answered with the fallback constant"))

	return &RateService{
		source:    source,
		cache:     NewRateCache(cfg.TTL),
		config:    cfg,
		logger:    log,
		tracer:    otel.Tracer(instrumentationName),
		now:       time.Now,
		cacheHits: cacheHits,
		fallbacks: fallbacks,
	}
}

// GetRate returns the rate for pair. It never fails: any remote problem
// yields the fallback constant, which is cached like a fetched value.
func (s *RateService) GetRate(ctx context.Context, pair currency.Pair) domain.ExchangeRate {
	ctx, span := s.tracer.Start(ctx, "rates.get_rate",
		trace.WithAttributes(attribute.String("pair", pair.String())))
	defer span.End()

	// The load outlives a cancelled caller: its result is cached and shared
	// with every waiter.
	loadCtx := context.WithoutCancel(ctx)
	rate, hit := s.cache.GetOrLoad(pair.String(), func() domain.ExchangeRate {
		return s.fetch(loadCtx, pair)
	})

	attrs := metric.WithAttributes(attribute.String("pair", pair.String()))
	if hit && s.cacheHits != nil {
		s.cacheHits.Add(ctx, 1, attrs)
	}

	span.SetAttributes(
		attribute.Bool("cache_hit", hit),
		attribute.String("source", string(rate.Source)),
		attribute.String("bid", rate.Bid.String()),
	)
	return rate
}

func (s *RateService) fetch(ctx context.Context, pair currency.Pair) domain.ExchangeRate {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	rate, err := s.source.FetchRate(ctx, pair)
	if err == nil && !rate.Bid.IsPositive() {
		err = apperror.InvalidInput("bid_rate", rate.Bid)
	}
	if err != nil {
		s.degraded.Store(true)
		if s.fallbacks != nil {
			s.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("pair", pair.String())))
		}
		unavailable := apperror.New(apperror.CodeRemoteUnavailable,
			apperror.WithCause(err),
			apperror.WithContext(pair.String()))
		s.logger.Warn(ctx, "rate source unavailable, using fallback",
			append(unavailable.ToLog(), "fallback_bid", s.config.FallbackBid.String())...)
		return domain.Fallback(pair, s.config.FallbackBid, s.now())
	}

	s.degraded.Store(false)
	s.logger.Debug(ctx, "rate fetched", "pair", pair.String(), "bid", rate.Bid.String())
	return rate
}

// History returns daily closes for pair. Unlike GetRate, failures are
// returned so callers can choose their own fallback series.
func (s *RateService) History(ctx context.Context, pair currency.Pair, days int) ([]domain.RatePoint, error) {
	ctx, span := s.tracer.Start(ctx, "rates.history",
		trace.WithAttributes(attribute.String("pair", pair.String()), attribute.Int("days", days)))
	defer span.End()

	points, err := s.source.FetchHistory(ctx, pair, days)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.Wrap(err, apperror.CodeSeriesFetchFailed, pair.String())
	}
	return points, nil
}

// Degraded reports whether the most recent remote fetch fell back.
func (s *RateService) Degraded() bool {
	return s.degraded.Load()
}

// CacheTTL returns the configured validity window.
func (s *RateService) CacheTTL() time.Duration {
	return s.cache.TTL()
}
