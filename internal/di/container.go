// Package di provides a small lazy dependency injection container with
// typed tokens.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry resolves services by name.
type ServiceRegistry interface {
	Get(name string) any
	Has(name string) bool
}

// Container is a ServiceRegistry that also accepts registrations.
type Container interface {
	ServiceRegistry
	Register(name string, service any)
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

type entry struct {
	factory  func(ServiceRegistry) any
	instance any
	built    bool
}

type container struct {
	entries  map[string]*entry
	building map[string]bool
	mu       sync.Mutex
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		entries:  make(map[string]*entry),
		building: make(map[string]bool),
	}
}

// Register stores an already built service.
func (c *container) Register(name string, service any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = &entry{instance: service, built: true}
}

// RegisterFactory stores a factory invoked on first Get. Instances are singletons.
func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = &entry{factory: factory}
}

// Has reports whether name was registered.
func (c *container) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[name]
	return ok
}

// Get resolves name, building it on first use. Panics on unknown names and
// on dependency cycles; both are wiring bugs.
func (c *container) Get(name string) any {
	c.mu.Lock()
	e, ok := c.entries[name]
	if !ok {
		c.mu.Unlock()
		panic(fmt.Sprintf("di: service %q not registered", name))
	}
	if e.built {
		c.mu.Unlock()
		return e.instance
	}
	if c.building[name] {
		c.mu.Unlock()
		panic(fmt.Sprintf("di: dependency cycle while building %q", name))
	}
	c.building[name] = true
	c.mu.Unlock()

	// Factories may call Get recursively, so the lock is released here.
	instance := e.factory(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.building, name)
	if !e.built {
		e.instance = instance
		e.built = true
	}
	return e.instance
}
