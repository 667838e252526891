package awesomeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/business/rates/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
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

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(Config{BaseURL: server.URL, Timeout: timeout}, &mockLogger{})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestClient_FetchRate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/last/USD-BRL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"USDBRL":{"code":"USD","codein":"BRL","bid":"5.4321","timestamp":"1767225600"}}`))
	}, time.Second)

	rate, err := c.FetchRate(context.Background(), currency.USDBRL)
	if err != nil {
		t.Fatalf("FetchRate: %v", err)
	}
	if !rate.Bid.Equal(decimal.RequireFromString("5.4321")) {
		t.Errorf("expected bid 5.4321, got %s", rate.Bid)
	}
	if rate.Source != domain.SourceRemote {
		t.Errorf("expected remote source, got %s", rate.Source)
	}
	if want := time.Unix(1767225600, 0).UTC(); !rate.ObservedAt.Equal(want) {
		t.Errorf("expected observed at %s, got %s", want, rate.ObservedAt)
	}
}

func TestClient_FetchRateErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperror.Code
	}{
		{"server error", http.StatusInternalServerError, `oops`, apperror.CodeRateFetchFailed},
		{"unknown pair", http.StatusNotFound, `{"status":404,"code":"CoinNotExists","message":"moeda nao encontrada"}`, apperror.CodeRateFetchFailed},
		{"malformed json", http.StatusOK, `{"USDBRL":`, apperror.CodeInvalidRatePayload},
		{"missing key", http.StatusOK, `{"EURBRL":{"bid":"6.1"}}`, apperror.CodeInvalidRatePayload},
		{"bad bid", http.StatusOK, `{"USDBRL":{"bid":"abc"}}`, apperror.CodeInvalidRatePayload},
		{"zero bid", http.StatusOK, `{"USDBRL":{"bid":"0"}}`, apperror.CodeInvalidRatePayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, time.Second)

			_, err := c.FetchRate(context.Background(), currency.USDBRL)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperror.GetCode(err); got != tt.wantCode {
				t.Errorf("expected code %s, got %s (%v)", tt.wantCode, got, err)
			}
		})
	}
}

func TestClient_FetchRateTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)

	_, err := c.FetchRate(context.Background(), currency.USDBRL)
	if apperror.GetCode(err) != apperror.CodeRateFetchFailed {
		t.Errorf("expected RATE_FETCH_FAILED on timeout, got %v", err)
	}
}

func TestClient_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, time.Second)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		c.FetchRate(ctx, currency.USDBRL)
	}

	_, err := c.FetchRate(ctx, currency.USDBRL)
	if !errors.Is(err, apperror.New(apperror.CodeCircuitOpen)) {
		t.Errorf("expected CIRCUIT_OPEN, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected open breaker to stop remote calls at 3, got %d", calls.Load())
	}
}

func TestClient_FetchHistory(t *testing.T) {
	// Newest first, with a repeated day and one malformed row.
	body := `[
		{"code":"USD","codein":"BRL","bid":"5.30","timestamp":"1767398400"},
		{"bid":"5.20","timestamp":"1767312000"},
		{"bid":"5.25","timestamp":"1767315600"},
		{"bid":"x","timestamp":"1767300000"},
		{"bid":"5.10","timestamp":"1767225600"}
	]`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/daily/USD-BRL/3" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(body))
	}, time.Second)

	points, err := c.FetchHistory(context.Background(), currency.USDBRL, 3)
	if err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}

	want := []struct {
		period string
		bid    string
	}{
		{"2026-01-01", "5.10"},
		{"2026-01-02", "5.20"},
		{"2026-01-03", "5.30"},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i, w := range want {
		if points[i].Period() != w.period {
			t.Errorf("point %d: expected period %s, got %s", i, w.period, points[i].Period())
		}
		if !points[i].Bid.Equal(decimal.RequireFromString(w.bid)) {
			t.Errorf("point %d: expected bid %s, got %s", i, w.bid, points[i].Bid)
		}
	}
}

func TestClient_FetchHistoryRejectsNonPositiveDays(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, time.Second)

	if _, err := c.FetchHistory(context.Background(), currency.USDBRL, 0); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
