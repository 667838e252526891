package currency

// Well-known currencies
var (
	BRL = New("BRL", "Real brasileiro", 2)
	USD = New("USD", "US Dollar", 2)
	EUR = New("EUR", "Euro", 2)
	CNY = New("CNY", "Chinese Yuan", 2)
	JPY = New("JPY", "Japanese Yen", 0)
	TWD = New("TWD", "New Taiwan Dollar", 2)
)

// USDBRL is the default conversion pair.
var USDBRL = NewPair(USD, BRL)

var defaultRegistry = DefaultRegistry()

// DefaultRegistry returns a registry pre-populated with well-known currencies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(BRL)
	r.Register(USD)
	r.Register(EUR)
	r.Register(CNY)
	r.Register(JPY)
	r.Register(TWD)
	return r
}

// Lookup returns the well-known currency for code, or a new two-decimal
// currency when the code is not registered.
func Lookup(code string) *Currency {
	if c, ok := defaultRegistry.Get(code); ok {
		return c
	}
	return New(code, "", 2)
}
