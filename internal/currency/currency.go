// Package currency models fiat currencies and quote pairs.
package currency

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 fiat currency. The code is its identity; name and
// decimals are display metadata.
type Currency struct {
	code     string
	name     string
	decimals int32
}

// New creates a Currency. Codes are normalised to upper case.
func New(code, name string, decimals int32) *Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		panic(fmt.Sprintf("currency: invalid code %q", code))
	}
	return &Currency{code: code, name: name, decimals: decimals}
}

// Code returns the three letter code, e.g. "BRL".
func (c *Currency) Code() string {
	return c.code
}

// Name returns the human-readable name, falling back to the code.
func (c *Currency) Name() string {
	if c.name == "" {
		return c.code
	}
	return c.name
}

// Decimals returns the number of minor-unit digits.
func (c *Currency) Decimals() int32 {
	return c.decimals
}

func (c *Currency) String() string {
	return c.code
}

// Equals compares two currencies by code.
func (c *Currency) Equals(other *Currency) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.code == other.code
}
