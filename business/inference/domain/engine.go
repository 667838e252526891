package domain

import (
	"time"

	"github.com/shopspring/decimal"

	catalogDomain "github.com/ChiaviniK/ComexioCase/business/catalog/domain"
	listingDomain "github.com/ChiaviniK/ComexioCase/business/listing/domain"
	ratesDomain "github.com/ChiaviniK/ComexioCase/business/rates/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

var (
	// DefaultTaxMultiplier approximates import duties and taxes on top of
	// the seller's markup.
	DefaultTaxMultiplier = decimal.RequireFromString("1.6")
	DefaultWeightFloorKg = decimal.RequireFromString("0.001")
)

// EngineConfig holds the estimation parameters.
type EngineConfig struct {
	TaxMultiplier decimal.Decimal
	JitterMin     float64
	JitterMax     float64
	Deterministic bool // weight factor exactly 1.0, first origin and port
	WeightFloorKg decimal.Decimal
}

// DefaultEngineConfig returns the stock parameters.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TaxMultiplier: DefaultTaxMultiplier,
		JitterMin:     0.9,
		JitterMax:     1.1,
		WeightFloorKg: DefaultWeightFloorKg,
	}
}

// InferOptions are per-call overrides. Empty fields are chosen by the engine.
type InferOptions struct {
	Origin     string
	Port       string
	ObservedAt time.Time
}

// Engine turns a retail listing into an estimated import record.
type Engine struct {
	config EngineConfig
	rnd    Randomness
	now    func() time.Time
}

// NewEngine creates an Engine. A nil rnd falls back to a clock-seeded source.
// A deterministic config ignores rnd so Infer depends only on its inputs.
func NewEngine(cfg EngineConfig, rnd Randomness) *Engine {
	if cfg.WeightFloorKg.IsZero() {
		cfg.WeightFloorKg = DefaultWeightFloorKg
	}
	switch {
	case cfg.Deterministic:
		rnd = FixedRandomness{Factor: 1}
	case rnd == nil:
		rnd = NewSeededRandomness(0)
	}
	return &Engine{config: cfg, rnd: rnd, now: time.Now}
}

// Infer estimates the import record for listing:
//
//	reduction = markup * tax multiplier
//	fob       = round2(price / reduction / bid)
//	weight    = max(round3(unit weight * jitter), floor)
//	unit      = round2(fob / weight)
func (e *Engine) Infer(
	listing listingDomain.ListingRecord,
	profile catalogDomain.CategoryProfile,
	rate ratesDomain.ExchangeRate,
	opts InferOptions,
) (InferredImportRecord, error) {
	if !listing.RetailPrice.IsPositive() {
		return InferredImportRecord{}, apperror.InvalidInput("retail_price", listing.RetailPrice)
	}
	if !rate.Bid.IsPositive() {
		return InferredImportRecord{}, apperror.InvalidInput("bid_rate", rate.Bid)
	}
	reduction := profile.MarkupFactor.Mul(e.config.TaxMultiplier)
	if !reduction.IsPositive() {
		return InferredImportRecord{}, apperror.InvalidInput("reduction_factor", reduction)
	}

	fob := listing.RetailPrice.Div(reduction).Div(rate.Bid).Round(2)
	weight := e.weight(profile.UnitWeightKg)
	unit := fob.Div(weight).Round(2)

	observedAt := opts.ObservedAt
	if observedAt.IsZero() {
		observedAt = e.now()
	}

	return InferredImportRecord{
		SourceID:             listing.SourceID,
		CategoryID:           profile.ID,
		CustomsCode:          profile.CustomsCode,
		Title:                listing.Title,
		EstimatedFOB:         fob,
		EstimatedWeightKg:    weight,
		UnitValuePerKg:       unit,
		OriginCountry:        e.origin(profile, opts.Origin),
		EntryPort:            e.port(opts.Port),
		RetailPriceReference: listing.RetailPrice,
		ImageReference:       listing.ImageReference,
		Permalink:            listing.Permalink,
		ObservedAt:           observedAt,
	}, nil
}

func (e *Engine) weight(expected decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1)
	if !e.config.Deterministic {
		factor = decimal.NewFromFloat(e.rnd.Jitter(e.config.JitterMin, e.config.JitterMax))
	}
	w := expected.Mul(factor).Round(3)
	if w.LessThan(e.config.WeightFloorKg) {
		return e.config.WeightFloorKg
	}
	return w
}

func (e *Engine) origin(profile catalogDomain.CategoryProfile, override string) string {
	switch {
	case override != "":
		return override
	case profile.DefaultOrigin != "":
		return profile.DefaultOrigin
	}
	return Origins[e.rnd.Pick(len(Origins))]
}

func (e *Engine) port(override string) string {
	if override != "" {
		return override
	}
	return Ports[e.rnd.Pick(len(Ports))]
}
