// Package awesomeapi implements the rate source against the public
// AwesomeAPI currency quote service.
package awesomeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ChiaviniK/ComexioCase/business/rates/app"
	"github.com/ChiaviniK/ComexioCase/business/rates/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
	"github.com/ChiaviniK/ComexioCase/internal/circuitbreaker"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
	"github.com/ChiaviniK/ComexioCase/internal/httpclient"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
)

const (
	BaseAPIURL = "https://economia.awesomeapi.com.br"

	lastEndpoint  = "/last/{pair}"
	dailyEndpoint = "/json/daily/{pair}/{days}"

	defaultTimeout = 2 * time.Second
	tracerName     = "comexio/rates/awesomeapi"
)

var _ app.RateSource = (*Client)(nil)

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches quotes from AwesomeAPI.
type Client struct {
	http    httpclient.Client
	breaker *circuitbreaker.CircuitBreaker[*httpclient.Response]
	logger  logger.LoggerInterface
	tracer  trace.Tracer
	now     func() time.Time
}

// NewClient creates a Client.
func NewClient(cfg Config, log logger.LoggerInterface) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseAPIURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	tracer := otel.Tracer(tracerName)
	hc, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("awesomeapi"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(tracer, httpclient.TraceResponse),
		httpclient.WithJSON(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	breakerCfg := circuitbreaker.DefaultConfig("awesomeapi")
	breakerCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "circuit breaker state changed",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		http:    hc,
		breaker: circuitbreaker.New[*httpclient.Response](breakerCfg),
		logger:  log,
		tracer:  tracer,
		now:     time.Now,
	}, nil
}

// quote is one entry of the AwesomeAPI payload. Numbers arrive as strings.
type quote struct {
	Code      string `json:"code"`
	CodeIn    string `json:"codein"`
	Bid       string `json:"bid"`
	Timestamp string `json:"timestamp"`
}

// FetchRate returns the latest bid for pair.
func (c *Client) FetchRate(ctx context.Context, pair currency.Pair) (domain.ExchangeRate, error) {
	ctx, span := c.tracer.Start(ctx, "awesomeapi.fetch_rate",
		trace.WithAttributes(attribute.String("pair", pair.String())))
	defer span.End()

	resp, err := c.get(ctx, lastEndpoint, "last", map[string]string{"pair": pair.String()})
	if err != nil {
		span.RecordError(err)
		return domain.ExchangeRate{}, err
	}

	var payload map[string]quote
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return domain.ExchangeRate{}, apperror.New(apperror.CodeInvalidRatePayload,
			apperror.WithCause(err), apperror.WithContext(pair.String()))
	}
	q, ok := payload[pair.Key()]
	if !ok {
		return domain.ExchangeRate{}, apperror.New(apperror.CodeInvalidRatePayload,
			apperror.WithContext(fmt.Sprintf("missing key %s", pair.Key())))
	}

	bid, observedAt, err := c.parseQuote(q)
	if err != nil {
		return domain.ExchangeRate{}, err
	}

	rate, err := domain.NewExchangeRate(pair, bid, observedAt, domain.SourceRemote)
	if err != nil {
		return domain.ExchangeRate{}, apperror.New(apperror.CodeInvalidRatePayload,
			apperror.WithCause(err), apperror.WithContext(pair.String()))
	}

	span.SetAttributes(attribute.String("bid", bid.String()))
	c.logger.Debug(ctx, "fetched rate", "pair", pair.String(), "bid", bid.String())
	return rate, nil
}

// FetchHistory returns up to days daily bids, oldest first, one per day.
func (c *Client) FetchHistory(ctx context.Context, pair currency.Pair, days int) ([]domain.RatePoint, error) {
	if days <= 0 {
		return nil, apperror.InvalidInput("days", days)
	}

	ctx, span := c.tracer.Start(ctx, "awesomeapi.fetch_history",
		trace.WithAttributes(attribute.String("pair", pair.String()), attribute.Int("days", days)))
	defer span.End()

	resp, err := c.get(ctx, dailyEndpoint, "daily", map[string]string{
		"pair": pair.String(),
		"days": strconv.Itoa(days),
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var payload []quote
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, apperror.New(apperror.CodeInvalidRatePayload,
			apperror.WithCause(err), apperror.WithContext(pair.String()))
	}

	// The service returns newest first and may repeat a day.
	byDay := make(map[string]domain.RatePoint, len(payload))
	for _, q := range payload {
		bid, observedAt, err := c.parseQuote(q)
		if err != nil {
			c.logger.Debug(ctx, "skipping malformed history entry", "pair", pair.String(), "error", err.Error())
			continue
		}
		day := time.Date(observedAt.Year(), observedAt.Month(), observedAt.Day(), 0, 0, 0, 0, time.UTC)
		p := domain.RatePoint{Date: day, Bid: bid}
		if _, seen := byDay[p.Period()]; !seen {
			byDay[p.Period()] = p
		}
	}

	points := make([]domain.RatePoint, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	span.SetAttributes(attribute.Int("points", len(points)))
	return points, nil
}

func (c *Client) get(ctx context.Context, path, endpoint string, params map[string]string) (*httpclient.Response, error) {
	resp, err := c.breaker.Execute(func() (*httpclient.Response, error) {
		req := c.http.NewRequest(
			httpclient.WithEndpoint(endpoint),
			httpclient.WithResponseErrorHandler(errorHandler),
		)
		for k, v := range params {
			req = req.SetPathParam(k, v)
		}
		return req.Get(ctx, path)
	})
	if err != nil {
		if apperror.GetCode(err) == apperror.CodeCircuitOpen {
			return nil, err
		}
		return nil, apperror.New(apperror.CodeRateFetchFailed,
			apperror.WithCause(err), apperror.WithContext(endpoint))
	}
	return resp, nil
}

func (c *Client) parseQuote(q quote) (decimal.Decimal, time.Time, error) {
	bid, err := decimal.NewFromString(q.Bid)
	if err != nil {
		return decimal.Zero, time.Time{}, apperror.New(apperror.CodeInvalidRatePayload,
			apperror.WithCause(err), apperror.WithContext("bid"))
	}

	observedAt := c.now()
	if q.Timestamp != "" {
		secs, err := strconv.ParseInt(q.Timestamp, 10, 64)
		if err != nil {
			return decimal.Zero, time.Time{}, apperror.New(apperror.CodeInvalidRatePayload,
				apperror.WithCause(err), apperror.WithContext("timestamp"))
		}
		observedAt = time.Unix(secs, 0).UTC()
	}
	return bid, observedAt, nil
}

// errorHandler turns non-2xx statuses into errors. AwesomeAPI answers
// unknown pairs with 404 and a JSON body carrying a message.
func errorHandler(statusCode int, body []byte) error {
	if statusCode < 400 {
		return nil
	}
	var apiErr struct {
		Status  int    `json:"status"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("awesomeapi %d %s: %s", statusCode, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("HTTP %d: %s", statusCode, string(body))
}
