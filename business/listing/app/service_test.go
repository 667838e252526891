package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/business/listing/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
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

type fakeSource struct {
	calls   int
	lastQ   Query
	records []domain.ListingRecord
	err     error
}

func (f *fakeSource) Search(ctx context.Context, q Query) ([]domain.ListingRecord, error) {
	f.calls++
	f.lastQ = q
	return f.records, f.err
}

func TestListingService_CachesSearches(t *testing.T) {
	rec, _ := domain.NewListingRecord("MLB1", "Redmi", decimal.NewFromInt(1350), "smartphones", "", "")
	src := &fakeSource{records: []domain.ListingRecord{rec}}
	svc := NewListingService(src, time.Minute, 0, &mockLogger{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := svc.Listings(ctx, "smartphones", "Xiaomi Redmi Note")
		if err != nil {
			t.Fatalf("Listings: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
	}
	if src.calls != 1 {
		t.Errorf("expected 1 source call, got %d", src.calls)
	}
	if src.lastQ.Limit != defaultLimit {
		t.Errorf("expected default limit %d, got %d", defaultLimit, src.lastQ.Limit)
	}

	svc.Listings(ctx, "drones", "Drone DJI Mini")
	if src.calls != 2 {
		t.Errorf("expected a new call for another category, got %d", src.calls)
	}

	svc.Flush()
	svc.Listings(ctx, "smartphones", "Xiaomi Redmi Note")
	if src.calls != 3 {
		t.Errorf("expected a refetch after flush, got %d", src.calls)
	}
}

func TestListingService_CodesFailures(t *testing.T) {
	src := &fakeSource{err: errors.New("connection reset")}
	svc := NewListingService(src, time.Minute, 10, &mockLogger{})

	_, err := svc.Listings(context.Background(), "drones", "Drone")
	if apperror.GetCode(err) != apperror.CodeListingFetchFailed {
		t.Errorf("expected LISTING_FETCH_FAILED, got %v", err)
	}

	// Failures are not cached.
	svc.Listings(context.Background(), "drones", "Drone")
	if src.calls != 2 {
		t.Errorf("expected failures to be retried, got %d calls", src.calls)
	}
}
