package app

import (
	"context"

	"github.com/ChiaviniK/ComexioCase/business/trends/domain"
)

// SeriesSource supplies the points a ranking is computed over.
type SeriesSource interface {
	Name() string
	Series(ctx context.Context) ([]domain.TimeSeriesPoint, error)
}
