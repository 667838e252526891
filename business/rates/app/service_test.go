package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/business/rates/domain"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
)

// mockLogger implements logger.LoggerInterface for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = (*mockLogger)(nil)

// fakeSource returns successive bids and counts calls.
type fakeSource struct {
	calls atomic.Int32
	bids  []string
	err   error
	delay time.Duration
}

func (f *fakeSource) FetchRate(ctx context.Context, pair currency.Pair) (domain.ExchangeRate, error) {
	n := int(f.calls.Add(1)) - 1
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return domain.ExchangeRate{}, f.err
	}
	bid := f.bids[n%len(f.bids)]
	return domain.NewExchangeRate(pair, decimal.RequireFromString(bid), time.Now(), domain.SourceRemote)
}

func (f *fakeSource) FetchHistory(ctx context.Context, pair currency.Pair, days int) ([]domain.RatePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.RatePoint{{Bid: decimal.RequireFromString(f.bids[0])}}, nil
}

func newService(src RateSource, ttl time.Duration) *RateService {
	return NewRateService(src, ServiceConfig{
		TTL:         ttl,
		Timeout:     time.Second,
		FallbackBid: decimal.RequireFromString("5.85"),
	}, &mockLogger{})
}

func TestRateService_CachesWithinWindow(t *testing.T) {
	src := &fakeSource{bids: []string{"5.10", "5.20"}}
	svc := newService(src, time.Minute)
	ctx := context.Background()

	first := svc.GetRate(ctx, currency.USDBRL)
	second := svc.GetRate(ctx, currency.USDBRL)

	if src.calls.Load() != 1 {
		t.Errorf("expected 1 remote call within window, got %d", src.calls.Load())
	}
	if !first.Bid.Equal(second.Bid) || !first.ObservedAt.Equal(second.ObservedAt) || first.Source != second.Source {
		t.Errorf("expected identical cached rates, got %v and %v", first, second)
	}
}

func TestRateService_RefetchesAfterExpiry(t *testing.T) {
	src := &fakeSource{bids: []string{"5.10", "5.20"}}
	svc := newService(src, 20*time.Millisecond)
	ctx := context.Background()

	first := svc.GetRate(ctx, currency.USDBRL)
	time.Sleep(40 * time.Millisecond)
	second := svc.GetRate(ctx, currency.USDBRL)

	if src.calls.Load() != 2 {
		t.Fatalf("expected a refetch after expiry, got %d calls", src.calls.Load())
	}
	if first.Bid.Equal(second.Bid) {
		t.Errorf("expected a new value after expiry, both were %s", first.Bid)
	}
}

func TestRateService_FallbackOnFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	svc := newService(src, time.Minute)

	rate := svc.GetRate(context.Background(), currency.USDBRL)

	if !rate.IsFallback() {
		t.Error("expected fallback source")
	}
	if !rate.Bid.Equal(decimal.RequireFromString("5.85")) {
		t.Errorf("expected fallback bid 5.85, got %s", rate.Bid)
	}
	if !svc.Degraded() {
		t.Error("expected service to report degraded")
	}
}

func TestRateService_KeysByPair(t *testing.T) {
	src := &fakeSource{bids: []string{"5.10"}}
	svc := newService(src, time.Minute)
	ctx := context.Background()

	eur, _ := currency.ParsePair("EUR-BRL")
	svc.GetRate(ctx, currency.USDBRL)
	svc.GetRate(ctx, eur)
	svc.GetRate(ctx, eur)

	if src.calls.Load() != 2 {
		t.Errorf("expected one fetch per pair, got %d", src.calls.Load())
	}
}

func TestRateService_ConcurrentRefreshIsSingleFlight(t *testing.T) {
	src := &fakeSource{bids: []string{"5.10", "5.20", "5.30"}, delay: 30 * time.Millisecond}
	svc := newService(src, time.Minute)
	ctx := context.Background()

	const workers = 16
	results := make([]domain.ExchangeRate, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.GetRate(ctx, currency.USDBRL)
		}(i)
	}
	wg.Wait()

	if src.calls.Load() != 1 {
		t.Errorf("expected a single remote call, got %d", src.calls.Load())
	}
	for i, r := range results {
		if !r.Bid.Equal(results[0].Bid) {
			t.Errorf("worker %d saw %s, worker 0 saw %s", i, r.Bid, results[0].Bid)
		}
	}
}

func TestRateService_HistoryPropagatesErrors(t *testing.T) {
	svc := newService(&fakeSource{err: errors.New("boom")}, time.Minute)

	if _, err := svc.History(context.Background(), currency.USDBRL, 30); err == nil {
		t.Error("expected history error to propagate")
	}
}

// ctxSource fails like a real client once ctx is done.
type ctxSource struct {
	calls atomic.Int32
}

func (c *ctxSource) FetchRate(ctx context.Context, pair currency.Pair) (domain.ExchangeRate, error) {
	c.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return domain.ExchangeRate{}, err
	}
	return domain.NewExchangeRate(pair, decimal.RequireFromString("5.30"), time.Now(), domain.SourceRemote)
}

func (c *ctxSource) FetchHistory(ctx context.Context, pair currency.Pair, days int) ([]domain.RatePoint, error) {
	return nil, ctx.Err()
}

func TestRateService_CancelledCallerDoesNotCacheFallback(t *testing.T) {
	src := &ctxSource{}
	svc := newService(src, time.Minute)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	first := svc.GetRate(cancelled, currency.USDBRL)
	if first.IsFallback() {
		t.Fatalf("expected remote rate despite cancelled caller, got %v", first)
	}

	second := svc.GetRate(context.Background(), currency.USDBRL)
	if second.IsFallback() || !second.Bid.Equal(decimal.RequireFromString("5.30")) {
		t.Errorf("expected cached remote rate, got %v", second)
	}
	if src.calls.Load() != 1 {
		t.Errorf("expected 1 remote call, got %d", src.calls.Load())
	}
	if svc.Degraded() {
		t.Error("service should not be degraded")
	}
}
