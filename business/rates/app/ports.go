// Package app contains application services and port definitions for the rates context.
package app

import (
	"context"

	"github.com/ChiaviniK/ComexioCase/business/rates/domain"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
)

// RateSource is a remote quote provider.
type RateSource interface {
	// FetchRate returns the latest bid for pair.
	FetchRate(ctx context.Context, pair currency.Pair) (domain.ExchangeRate, error)

	// FetchHistory returns up to days daily closes for pair, oldest first.
	FetchHistory(ctx context.Context, pair currency.Pair, days int) ([]domain.RatePoint, error)
}
