// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"errors"
	"sort"
	"sync"
)

// RegistryEntry represents a registered layer backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: GPU backends
	//   - 10: pure software backends
	Priority int

	// Allocator creates layers for this backend.
	Allocator Allocator

	// Available reports if the backend is usable on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered layer backends.
//
// The registry enables backend packages to register themselves without the
// core importing them. Hosts either pick the best available backend or pin
// one by name.
//
// Example registration:
//
//	func init() {
//	    ink.Register("wgpu", 100, allocator, gpuAvailable)
//	}
//
// Example usage:
//
//	a, err := ink.NewAllocatorByName("wgpu")
//	// or auto-select best available:
//	a, err := ink.NewAllocator()
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// Register adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, allocator Allocator, available func() bool) {
	globalRegistry.Register(name, priority, allocator, available)
	propagateLogger(allocator, Logger())
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// Backends returns all registered backend names sorted by priority
// (highest first).
func Backends() []string {
	return globalRegistry.List()
}

// AvailableBackends returns names of all available backends sorted by
// priority.
func AvailableBackends() []string {
	return globalRegistry.Available()
}

// NewAllocator returns the allocator of the best available backend.
// Returns an error if no backends are available.
func NewAllocator() (Allocator, error) {
	return globalRegistry.NewAllocator()
}

// NewAllocatorByName returns the allocator of a specific named backend.
func NewAllocatorByName(name string) (Allocator, error) {
	return globalRegistry.NewAllocatorByName(name)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, allocator Allocator, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Allocator: allocator,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// NewAllocator returns the best available backend's allocator.
func (r *Registry) NewAllocator() (Allocator, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}
	return r.NewAllocatorByName(available[0])
}

// NewAllocatorByName returns a specific backend's allocator.
func (r *Registry) NewAllocatorByName(name string) (Allocator, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	return entry.Allocator, nil
}

// snapshot returns the registered allocators for logger propagation.
func (r *Registry) snapshot() []Allocator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allocators := make([]Allocator, 0, len(r.entries))
	for _, e := range r.entries {
		allocators = append(allocators, e.Allocator)
	}
	return allocators
}

// sortedNames returns backend names sorted by priority (highest first).
// If onlyAvailable is true, filters to available backends only.
// Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no layer backends are
	// registered or available on the current system.
	ErrNoBackendAvailable = errors.New("ink: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "ink: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "ink: backend unavailable: " + e.Name
}
