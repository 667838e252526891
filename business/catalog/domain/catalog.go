package domain

import (
	"fmt"

	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

// Catalog is an immutable category id -> profile mapping.
type Catalog struct {
	profiles map[string]CategoryProfile
	order    []string
	fallback *CategoryProfile
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog) error

// WithDefaultCategory makes Lookup total: unknown ids resolve to the profile
// registered under id.
func WithDefaultCategory(id string) CatalogOption {
	return func(c *Catalog) error {
		p, ok := c.profiles[id]
		if !ok {
			return apperror.UnknownCategory(id)
		}
		c.fallback = &p
		return nil
	}
}

// NewCatalog validates profiles and builds a Catalog. Ids must be unique.
func NewCatalog(profiles []CategoryProfile, opts ...CatalogOption) (*Catalog, error) {
	c := &Catalog{
		profiles: make(map[string]CategoryProfile, len(profiles)),
		order:    make([]string, 0, len(profiles)),
	}

	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.profiles[p.ID]; dup {
			return nil, apperror.New(apperror.CodeValidationError,
				apperror.WithContext(fmt.Sprintf("duplicate category id %q", p.ID)))
		}
		c.profiles[p.ID] = p
		c.order = append(c.order, p.ID)
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Lookup returns the profile for id, the default profile when one is
// configured, or an UNKNOWN_CATEGORY error.
func (c *Catalog) Lookup(id string) (CategoryProfile, error) {
	if p, ok := c.profiles[id]; ok {
		return p, nil
	}
	if c.fallback != nil {
		return *c.fallback, nil
	}
	return CategoryProfile{}, apperror.UnknownCategory(id)
}

// IDs returns category ids in registration order, for selection controls.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Profiles returns all profiles in registration order.
func (c *Catalog) Profiles() []CategoryProfile {
	out := make([]CategoryProfile, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.profiles[id])
	}
	return out
}
