// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sort"
	"sync"
)

// Factory creates a surface of the given size.
type Factory func(width, height int) (Surface, error)

// registry maps backend names to factories.
var registry = struct {
	mu        sync.RWMutex
	factories map[string]Factory
}{factories: make(map[string]Factory)}

// Register makes a backend available to Open under name. Registering an
// existing name replaces it.
func Register(name string, f Factory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.factories[name] = f
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates a surface with the named backend.
func Open(name string, width, height int) (Surface, error) {
	registry.mu.RLock()
	f, ok := registry.factories[name]
	registry.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	return f(width, height)
}

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

func init() {
	Register("gg", func(width, height int) (Surface, error) {
		c, err := NewContext(width, height)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
	Register("record", func(width, height int) (Surface, error) {
		return NewRecorder(width, height, nil), nil
	})
}
