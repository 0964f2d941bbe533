package filter

import (
	"fmt"
	"slices"
	"sync"
)

// Constructor creates a filter from options.
type Constructor func(opts Options) (Filter, error)

// Factory creates filters by name.
type Factory interface {
	New(name string, opts Options) (Filter, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(name string, opts Options) (Filter, error)

// New calls f(name, opts).
func (f FactoryFunc) New(name string, opts Options) (Filter, error) {
	return f(name, opts)
}

// registry holds registered constructors.
var (
	registryMu   sync.RWMutex
	constructors = make(map[string]Constructor)
)

// Default is the Factory backed by the package registry.
var Default Factory = FactoryFunc(New)

// Register registers a constructor under name.
// If a constructor with the same name is already registered, it is replaced.
func Register(name string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	constructors[name] = c
}

// Unregister removes a constructor from the registry.
// This is useful for testing degraded pipelines.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(constructors, name)
}

// Available returns the sorted names of registered filters.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a filter with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := constructors[name]
	return ok
}

// New creates a filter by name from the package registry.
// Returns ErrUnknownFilter if nothing is registered under name.
func New(name string, opts Options) (Filter, error) {
	registryMu.RLock()
	c, ok := constructors[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	f, err := c(opts)
	if err != nil {
		return nil, fmt.Errorf("filter: create %q: %w", name, err)
	}
	return f, nil
}

func init() {
	Register(NameColorCube, newColorCube)
	Register(NameColorControls, newColorControls)
	Register(NameGaussianBlur, newGaussianBlur)
	Register(NameLinearFocus, newLinearFocus)
	Register(NameRadialFocus, newRadialFocus)
	Register(NameAutoLevels, newAutoLevels)
	Register(NameAutoVibrance, newAutoVibrance)
	for name, fn := range photoEffects {
		Register(name, photoEffectConstructor(name, fn))
	}
}
