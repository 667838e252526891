package currency

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is a thread-safe set of known currencies.
type Registry struct {
	byCode map[string]*Currency
	mu     sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byCode: make(map[string]*Currency)}
}

// Register adds c. Panics on duplicates.
func (r *Registry) Register(c *Currency) {
	if c == nil {
		panic("currency: cannot register nil currency")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[c.Code()]; exists {
		panic(fmt.Sprintf("currency: %s already registered", c.Code()))
	}
	r.byCode[c.Code()] = c
}

// Get retrieves a currency by code, case-insensitively.
func (r *Registry) Get(code string) (*Currency, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byCode[strings.ToUpper(code)]
	return c, ok
}

// All returns registered currencies ordered by code.
func (r *Registry) All() []*Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Currency, 0, len(r.byCode))
	for _, c := range r.byCode {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code() < result[j].Code() })
	return result
}

// Count returns the number of registered currencies.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCode)
}

// Supports returns an error naming the first side of p that is not
// registered.
func (r *Registry) Supports(p Pair) error {
	for _, c := range []*Currency{p.Base, p.Quote} {
		if c == nil {
			return fmt.Errorf("currency: incomplete pair")
		}
		if _, ok := r.Get(c.Code()); !ok {
			return fmt.Errorf("currency: %s is not supported", c.Code())
		}
	}
	return nil
}
