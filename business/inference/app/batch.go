package app

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	catalogDomain "github.com/ChiaviniK/ComexioCase/business/catalog/domain"
	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	ratesDomain "github.com/ChiaviniK/ComexioCase/business/rates/domain"
)

// Batch is the result of one refresh of a category.
type Batch struct {
	ID        string
	Category  catalogDomain.CategoryProfile
	Rate      ratesDomain.ExchangeRate
	Records   []domain.InferredImportRecord
	Summary   domain.Summary
	CreatedAt time.Time
	// Degraded is set when listings could not be fetched.
	Degraded bool
}

// IsEmpty reports whether the batch holds no records.
func (b *Batch) IsEmpty() bool {
	return b == nil || len(b.Records) == 0
}

// DailyTotal is the FOB sum of one category on one observation date.
type DailyTotal struct {
	CategoryID string
	Date       string // YYYY-MM-DD
	TotalFOB   decimal.Decimal
}

const defaultHistorySize = 256

// BatchHistory keeps the most recent batches in memory.
type BatchHistory struct {
	mu      sync.RWMutex
	batches []*Batch
	max     int
}

// NewBatchHistory creates a history holding up to max batches.
func NewBatchHistory(max int) *BatchHistory {
	if max <= 0 {
		max = defaultHistorySize
	}
	return &BatchHistory{max: max}
}

// Add appends b, evicting the oldest batch when full.
func (h *BatchHistory) Add(b *Batch) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batches = append(h.batches, b)
	if len(h.batches) > h.max {
		h.batches = h.batches[len(h.batches)-h.max:]
	}
}

// Latest returns the newest batch for categoryID.
func (h *BatchHistory) Latest(categoryID string) (*Batch, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for i := len(h.batches) - 1; i >= 0; i-- {
		if h.batches[i].Category.ID == categoryID {
			return h.batches[i], true
		}
	}
	return nil, false
}

// Len returns the number of batches held.
func (h *BatchHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.batches)
}

// DailyTotals sums record FOB per category and observation date. When a
// category was refreshed several times on one date only the latest batch
// counts, so repeated refreshes do not inflate the total.
func (h *BatchHistory) DailyTotals() []DailyTotal {
	h.mu.RLock()
	defer h.mu.RUnlock()

	type key struct{ category, date string }
	latest := make(map[key]*Batch)
	for _, b := range h.batches {
		if b.IsEmpty() {
			continue
		}
		latest[key{b.Category.ID, b.CreatedAt.Format(time.DateOnly)}] = b
	}

	totals := make([]DailyTotal, 0, len(latest))
	for k, b := range latest {
		sum := decimal.Zero
		for _, r := range b.Records {
			sum = sum.Add(r.EstimatedFOB)
		}
		totals = append(totals, DailyTotal{CategoryID: k.category, Date: k.date, TotalFOB: sum})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].CategoryID != totals[j].CategoryID {
			return totals[i].CategoryID < totals[j].CategoryID
		}
		return totals[i].Date < totals[j].Date
	})
	return totals
}
