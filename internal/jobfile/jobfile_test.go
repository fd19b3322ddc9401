// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package jobfile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadi-gis/nadiproc/internal/processing"
)

const yamlJob = `algorithm: connection
parameters:
  POINTS: data/points.gpkg:outlets
  STREAMS: data/streams.gpkg:rivers
  SIMPLIFY: true
  CONNECTIONS: out/connections.gpkg
`

const hclJob = `algorithm = "connection"

parameters = {
  POINTS      = "data/points.gpkg:outlets"
  STREAMS     = "data/streams.gpkg:rivers"
  SIMPLIFY    = true
  CONNECTIONS = "out/connections.gpkg"
}
`

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "job.yaml", []byte(yamlJob), 0o644))

	job, err := Load(fs, "job.yaml")

	require.NoError(t, err)
	assert.Equal(t, "connection", job.Algorithm)
	assert.Equal(t, processing.Parameters{
		"POINTS":      "data/points.gpkg:outlets",
		"STREAMS":     "data/streams.gpkg:rivers",
		"SIMPLIFY":    true,
		"CONNECTIONS": "out/connections.gpkg",
	}, job.Parameters)
}

func TestLoadHCL(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "job.hcl", []byte(hclJob), 0o644))

	job, err := Load(fs, "job.hcl")

	require.NoError(t, err)
	assert.Equal(t, "connection", job.Algorithm)
	assert.Equal(t, "data/points.gpkg:outlets", job.Parameters["POINTS"])
	assert.Equal(t, true, job.Parameters["SIMPLIFY"])
}

func TestLoadUnsupportedExtension(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "job.toml", []byte("x = 1"), 0o644))

	_, err := Load(fs, "job.toml")

	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(afero.NewMemMapFs(), "nope.yaml")

	require.Error(t, err)
	assert.ErrorContains(t, err, "nope.yaml")
}

func TestDecodeYAMLNoAlgorithm(t *testing.T) {
	t.Parallel()

	_, err := DecodeYAML([]byte("parameters:\n  POINTS: a.gpkg\n"))

	require.ErrorIs(t, err, ErrNoAlgorithm)
}

func TestDecodeYAMLUnknownKey(t *testing.T) {
	t.Parallel()

	src := []byte("algorithm: connection\nparameterz:\n  POINTS: a.gpkg\n")

	_, err := DecodeYAML(src)

	require.ErrorIs(t, err, ErrInvalidJobFile)
	assert.ErrorContains(t, err, "parameterz")
}

func TestDecodeYAMLMalformed(t *testing.T) {
	t.Parallel()

	_, err := DecodeYAML([]byte("algorithm: [\n"))

	require.ErrorIs(t, err, ErrInvalidJobFile)
}

func TestDecodeHCLNoAlgorithm(t *testing.T) {
	t.Parallel()

	_, err := DecodeHCL([]byte(`parameters = {}`), "job.hcl")

	require.ErrorIs(t, err, ErrNoAlgorithm)
}

func TestDecodeHCLUnexpectedAttribute(t *testing.T) {
	t.Parallel()

	src := []byte("algorithm = \"connection\"\nextra = 1\n")

	_, err := DecodeHCL(src, "job.hcl")

	require.ErrorIs(t, err, ErrInvalidJobFile)
	assert.ErrorContains(t, err, "extra")
}

func TestDecodeHCLMalformed(t *testing.T) {
	t.Parallel()

	_, err := DecodeHCL([]byte(`algorithm = `), "job.hcl")

	require.ErrorIs(t, err, ErrInvalidJobFile)
}
