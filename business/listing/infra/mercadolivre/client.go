// Package mercadolivre implements the listing source against the public
// MercadoLivre search API.
package mercadolivre

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ChiaviniK/ComexioCase/business/listing/app"
	"github.com/ChiaviniK/ComexioCase/business/listing/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
	"github.com/ChiaviniK/ComexioCase/internal/circuitbreaker"
	"github.com/ChiaviniK/ComexioCase/internal/httpclient"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
	"github.com/ChiaviniK/ComexioCase/internal/ratelimit"
)

const (
	BaseAPIURL  = "https://api.mercadolibre.com"
	DefaultSite = "MLB"

	searchEndpoint = "/sites/{site}/search"

	// The search API caps a page at 50 results.
	maxLimit = 50

	defaultTimeout = 5 * time.Second
	tracerName     = "comexio/listing/mercadolivre"
)

var _ app.ListingSource = (*Client)(nil)

// Config holds client settings.
type Config struct {
	BaseURL           string
	Site              string
	Timeout           time.Duration
	RequestsPerMinute int
	AccessToken       string
}

// Client searches MercadoLivre.
type Client struct {
	http    httpclient.Client
	breaker *circuitbreaker.CircuitBreaker[*httpclient.Response]
	limiter *ratelimit.Limiter
	site    string
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

// NewClient creates a Client.
func NewClient(cfg Config, log logger.LoggerInterface) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseAPIURL
	}
	site := cfg.Site
	if site == "" {
		site = DefaultSite
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	tracer := otel.Tracer(tracerName)
	hc, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("mercadolivre"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(tracer),
		httpclient.WithJSON(),
		httpclient.WithBearerToken(cfg.AccessToken),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	breakerCfg := circuitbreaker.DefaultConfig("mercadolivre")
	breakerCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "circuit breaker state changed",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		http:    hc,
		breaker: circuitbreaker.New[*httpclient.Response](breakerCfg),
		limiter: ratelimit.New(cfg.RequestsPerMinute),
		site:    site,
		logger:  log,
		tracer:  tracer,
	}, nil
}

// searchResponse is the subset of the search payload we read.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Price     json.Number `json:"price"`
	Thumbnail string      `json:"thumbnail"`
	Permalink string      `json:"permalink"`
}

// Search returns listings for q. Results with a missing or non-positive
// price are skipped.
func (c *Client) Search(ctx context.Context, q app.Query) ([]domain.ListingRecord, error) {
	ctx, span := c.tracer.Start(ctx, "mercadolivre.search",
		trace.WithAttributes(
			attribute.String("site", c.site),
			attribute.String("term", q.Term),
			attribute.Int("limit", q.Limit),
		),
	)
	defer span.End()

	limit := q.Limit
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperror.New(apperror.CodeRateLimitExceeded, apperror.WithCause(err))
	}

	resp, err := c.breaker.Execute(func() (*httpclient.Response, error) {
		return c.http.NewRequest(
			httpclient.WithEndpoint("search"),
			httpclient.WithLabel("site", c.site),
			httpclient.WithResponseErrorHandler(errorHandler),
		).
			SetPathParam("site", c.site).
			SetQueryParam("q", q.Term).
			SetQueryParam("limit", strconv.Itoa(limit)).
			Get(ctx, searchEndpoint)
	})
	if err != nil {
		span.RecordError(err)
		if apperror.GetCode(err) == apperror.CodeCircuitOpen {
			return nil, err
		}
		return nil, apperror.New(apperror.CodeListingFetchFailed,
			apperror.WithCause(err), apperror.WithContext(q.Term))
	}

	var payload searchResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, apperror.New(apperror.CodeListingFetchFailed,
			apperror.WithCause(err), apperror.WithContext("malformed search payload"))
	}

	records := make([]domain.ListingRecord, 0, len(payload.Results))
	skipped := 0
	for _, r := range payload.Results {
		price, err := decimal.NewFromString(r.Price.String())
		if err != nil {
			skipped++
			continue
		}
		rec, err := domain.NewListingRecord(r.ID, r.Title, price, q.CategoryID, r.Thumbnail, r.Permalink)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	span.SetAttributes(attribute.Int("records", len(records)), attribute.Int("skipped", skipped))
	c.logger.Debug(ctx, "searched listings",
		"term", q.Term,
		"records", len(records),
		"skipped", skipped)

	return records, nil
}

// errorHandler parses MercadoLivre error bodies: {"message","error","status"}.
func errorHandler(statusCode int, body []byte) error {
	if statusCode < 400 {
		return nil
	}
	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Status  int    `json:"status"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("mercadolivre %d %s: %s", statusCode, apiErr.Error, apiErr.Message)
	}
	return fmt.Errorf("HTTP %d: %s", statusCode, string(body))
}
