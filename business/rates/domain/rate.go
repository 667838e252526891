// Package domain contains the core domain types for the rates context.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/internal/apperror"
	"github.com/ChiaviniK/ComexioCase/internal/currency"
)

// Source tells where a rate came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// ExchangeRate is a bid quote: one unit of Pair.Base costs Bid units of
// Pair.Quote. Values are replaced wholesale, never mutated.
type ExchangeRate struct {
	Pair       currency.Pair
	Bid        decimal.Decimal
	ObservedAt time.Time
	Source     Source
}

// NewExchangeRate validates bid > 0.
func NewExchangeRate(pair currency.Pair, bid decimal.Decimal, observedAt time.Time, source Source) (ExchangeRate, error) {
	if !bid.IsPositive() {
		return ExchangeRate{}, apperror.InvalidInput("bid_rate", bid)
	}
	return ExchangeRate{
		Pair:       pair,
		Bid:        bid,
		ObservedAt: observedAt,
		Source:     source,
	}, nil
}

// Fallback builds the configured constant rate.
func Fallback(pair currency.Pair, bid decimal.Decimal, now time.Time) ExchangeRate {
	return ExchangeRate{Pair: pair, Bid: bid, ObservedAt: now, Source: SourceFallback}
}

// IsFallback reports whether the rate is the configured constant.
func (r ExchangeRate) IsFallback() bool {
	return r.Source == SourceFallback
}

// ToBase converts an amount in the quote currency into the base currency.
func (r ExchangeRate) ToBase(quoteAmount decimal.Decimal) (decimal.Decimal, error) {
	if !r.Bid.IsPositive() {
		return decimal.Zero, apperror.InvalidInput("bid_rate", r.Bid)
	}
	return quoteAmount.Div(r.Bid), nil
}

func (r ExchangeRate) String() string {
	return fmt.Sprintf("%s %s (%s)", r.Pair, r.Bid.StringFixed(4), r.Source)
}

// RatePoint is one day of a rate history.
type RatePoint struct {
	Date time.Time // midnight UTC
	Bid  decimal.Decimal
}

// Period returns the ISO date label of the point.
func (p RatePoint) Period() string {
	return p.Date.Format(time.DateOnly)
}
