// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package processing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadi-gis/nadiproc/internal/feedback"
)

type fakeAlgorithm struct {
	params []Parameter
}

func (f *fakeAlgorithm) Name() string            { return "fake" }
func (f *fakeAlgorithm) DisplayName() string     { return "Fake" }
func (f *fakeAlgorithm) Group() string           { return "Testing" }
func (f *fakeAlgorithm) GroupID() string         { return "testing" }
func (f *fakeAlgorithm) Parameters() []Parameter { return f.params }

func (f *fakeAlgorithm) Run(context.Context, Parameters, feedback.Feedback) (Outputs, error) {
	return Outputs{}, nil
}

func newFakeAlgorithm() *fakeAlgorithm {
	return &fakeAlgorithm{
		params: []Parameter{
			{Name: "POINTS", Kind: KindFeatureSource, Geometry: GeometryPoint},
			{Name: "POINTS_ID", Kind: KindField, Optional: true, Source: "POINTS"},
			{Name: "SIMPLIFY", Kind: KindBoolean, Default: true},
			{Name: "OUTPUT", Kind: KindFeatureSink},
		},
	}
}

func TestValidateAcceptsCompleteParameters(t *testing.T) {
	t.Parallel()

	err := Validate(newFakeAlgorithm(), Parameters{
		"POINTS":   "data/points.gpkg:outlets",
		"SIMPLIFY": false,
		"OUTPUT":   "out.gpkg",
	})

	require.NoError(t, err)
}

func TestValidateAllowsOmittedOptionalAndBoolean(t *testing.T) {
	t.Parallel()

	err := Validate(newFakeAlgorithm(), Parameters{
		"POINTS": "data/points.gpkg",
		"OUTPUT": "out.gpkg",
	})

	require.NoError(t, err)
}

func TestValidateReportsAllProblems(t *testing.T) {
	t.Parallel()

	err := Validate(newFakeAlgorithm(), Parameters{
		"SIMPLIFY": "not-a-bool",
		"MYSTERY":  "value",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.ErrorIs(t, err, ErrUnknownParameter)
	assert.ErrorIs(t, err, ErrWrongParameterType)
	assert.ErrorContains(t, err, "POINTS")
	assert.ErrorContains(t, err, "OUTPUT")
	assert.ErrorContains(t, err, "MYSTERY")
}

func TestParametersString(t *testing.T) {
	t.Parallel()

	p := Parameters{"OUTPUT": "out.gpkg", "SIMPLIFY": true}

	got, err := p.String("OUTPUT")
	require.NoError(t, err)
	assert.Equal(t, "out.gpkg", got)

	_, err = p.String("MISSING")
	require.ErrorIs(t, err, ErrMissingParameter)

	_, err = p.String("SIMPLIFY")
	require.ErrorIs(t, err, ErrWrongParameterType)
}

func TestParametersOptionalString(t *testing.T) {
	t.Parallel()

	p := Parameters{"POINTS_ID": "station"}

	got, err := p.OptionalString("POINTS_ID")
	require.NoError(t, err)
	assert.Equal(t, "station", got)

	got, err = p.OptionalString("STREAMS_ID")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParametersBool(t *testing.T) {
	t.Parallel()

	p := Parameters{
		"NATIVE": true,
		"PARSED": "false",
		"BAD":    "maybe",
	}

	got, err := p.Bool("NATIVE", false)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = p.Bool("PARSED", true)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = p.Bool("ABSENT", true)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = p.Bool("BAD", false)
	require.ErrorIs(t, err, ErrWrongParameterType)
}

func TestParametersLayerRef(t *testing.T) {
	t.Parallel()

	p := Parameters{"POINTS": "data/points.gpkg:outlets"}

	ref, err := p.LayerRef("POINTS")

	require.NoError(t, err)
	assert.Equal(t, LayerRef{Path: "data/points.gpkg", Layer: "outlets"}, ref)
}
