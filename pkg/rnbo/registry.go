package rnbo

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownEngine is returned by New for an id nobody registered.
var ErrUnknownEngine = errors.New("rnbo: unknown engine")

// Factory creates a fresh engine instance.
type Factory func() (Patch, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes an engine available under id. Export packages call it from
// init. Registering the same id twice panics.
func Register(id string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	if f == nil {
		panic("rnbo: Register factory is nil")
	}
	if _, dup := factories[id]; dup {
		panic("rnbo: Register called twice for engine " + id)
	}
	factories[id] = f
}

// New creates an engine registered under id.
func New(id string) (Patch, error) {
	factoriesMu.RLock()
	f, ok := factories[id]
	factoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEngine, id)
	}
	p, err := f()
	if err != nil {
		return nil, fmt.Errorf("rnbo: create engine %q: %w", id, err)
	}
	return p, nil
}

// Registered returns the sorted ids of all registered engines.
func Registered() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
