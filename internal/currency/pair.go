package currency

import (
	"fmt"
	"strings"
)

// Pair is a conversion direction: one unit of Base costs bid units of Quote.
type Pair struct {
	Base  *Currency
	Quote *Currency
}

// NewPair creates a pair.
func NewPair(base, quote *Currency) Pair {
	if base == nil || quote == nil {
		panic("currency: nil currency in pair")
	}
	return Pair{Base: base, Quote: quote}
}

// ParsePair parses "USD-BRL". Unknown codes are accepted and created on the
// fly so that any pair the rate source supports can be configured.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 || len(parts[0]) != 3 || len(parts[1]) != 3 {
		return Pair{}, fmt.Errorf("currency: pair %q must look like USD-BRL", s)
	}
	if strings.EqualFold(parts[0], parts[1]) {
		return Pair{}, fmt.Errorf("currency: pair %q has identical sides", s)
	}
	return NewPair(Lookup(parts[0]), Lookup(parts[1])), nil
}

// String returns the dashed form, "USD-BRL".
func (p Pair) String() string {
	return p.Base.Code() + "-" + p.Quote.Code()
}

// Key returns the concatenated form, "USDBRL".
func (p Pair) Key() string {
	return p.Base.Code() + p.Quote.Code()
}

// Invert returns the opposite direction.
func (p Pair) Invert() Pair {
	return Pair{Base: p.Quote, Quote: p.Base}
}
