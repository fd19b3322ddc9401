// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package algorithmregistry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/nadi-gis/nadiproc/internal/processing"
)

var (
	// ErrUnknownAlgorithm is returned when an algorithm name is not registered.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrDuplicateAlgorithm is returned when two algorithms share a name.
	ErrDuplicateAlgorithm = errors.New("duplicate algorithm name")
	// ErrNoRegistryInContext is returned when the context carries no registry.
	ErrNoRegistryInContext = errors.New("no algorithm registry in context")
)

// ContextKey is the context key under which the registry travels to
// the CLI commands.
type ContextKey struct{}

// FromContext returns the registry stored in ctx.
func FromContext(ctx context.Context) (*Registry, error) {
	r, ok := ctx.Value(ContextKey{}).(*Registry)
	if !ok || r == nil {
		return nil, ErrNoRegistryInContext
	}

	return r, nil
}

// Registry holds the available algorithms, keyed by name.
type Registry struct {
	algorithms map[string]processing.Algorithm
}

// New creates a registry from the given algorithms.
func New(algs ...processing.Algorithm) (*Registry, error) {
	r := &Registry{
		algorithms: make(map[string]processing.Algorithm, len(algs)),
	}

	for _, alg := range algs {
		if _, exists := r.algorithms[alg.Name()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAlgorithm, alg.Name())
		}

		r.algorithms[alg.Name()] = alg
	}

	return r, nil
}

// Get returns the algorithm registered under name.
func (r *Registry) Get(name string) (processing.Algorithm, error) {
	alg, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}

	return alg, nil
}

// All returns every registered algorithm, sorted by name so listings
// are stable.
func (r *Registry) All() []processing.Algorithm {
	all := make([]processing.Algorithm, 0, len(r.algorithms))
	for _, alg := range r.algorithms {
		all = append(all, alg)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name() < all[j].Name()
	})

	return all
}
