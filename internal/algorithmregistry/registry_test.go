// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package algorithmregistry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadi-gis/nadiproc/internal/feedback"
	"github.com/nadi-gis/nadiproc/internal/processing"
)

type namedAlgorithm struct {
	name string
}

func (n *namedAlgorithm) Name() string                       { return n.name }
func (n *namedAlgorithm) DisplayName() string                { return n.name }
func (n *namedAlgorithm) Group() string                      { return "Testing" }
func (n *namedAlgorithm) GroupID() string                    { return "testing" }
func (n *namedAlgorithm) Parameters() []processing.Parameter { return nil }

func (n *namedAlgorithm) Run(
	context.Context, processing.Parameters, feedback.Feedback,
) (processing.Outputs, error) {
	return processing.Outputs{}, nil
}

func TestRegistryGet(t *testing.T) {
	t.Parallel()

	reg, err := New(&namedAlgorithm{name: "connection"})
	require.NoError(t, err)

	alg, err := reg.Get("connection")

	require.NoError(t, err)
	assert.Equal(t, "connection", alg.Name())
}

func TestRegistryGetUnknown(t *testing.T) {
	t.Parallel()

	reg, err := New()
	require.NoError(t, err)

	_, err = reg.Get("nope")

	require.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.ErrorContains(t, err, "nope")
}

func TestRegistryDuplicate(t *testing.T) {
	t.Parallel()

	_, err := New(
		&namedAlgorithm{name: "connection"},
		&namedAlgorithm{name: "connection"},
	)

	require.ErrorIs(t, err, ErrDuplicateAlgorithm)
}

func TestRegistryAllSorted(t *testing.T) {
	t.Parallel()

	reg, err := New(
		&namedAlgorithm{name: "zeta"},
		&namedAlgorithm{name: "alpha"},
		&namedAlgorithm{name: "mid"},
	)
	require.NoError(t, err)

	var names []string
	for _, alg := range reg.All() {
		names = append(names, alg.Name())
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}
