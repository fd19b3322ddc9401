// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package jobfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/nadi-gis/nadiproc/internal/processing"
)

var (
	// ErrInvalidJobFile is returned when a job file cannot be decoded.
	ErrInvalidJobFile = errors.New("invalid job file")
	// ErrNoAlgorithm is returned when a job file does not name an algorithm.
	ErrNoAlgorithm = errors.New("job file does not name an algorithm")
	// ErrUnsupportedFormat is returned for job file extensions that are
	// neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("unsupported job file format")
)

// Job is a decoded job definition: the algorithm to run and the
// parameter values to run it with.
type Job struct {
	Algorithm  string                `yaml:"algorithm"`
	Parameters processing.Parameters `yaml:"parameters"`
}

// Load reads and decodes the job file at path. The format is chosen by
// extension: ".hcl" is decoded as HCL, ".yaml" and ".yml" as YAML.
func Load(fs afero.Fs, path string) (*Job, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}

	return Decode(src, path)
}

// Decode decodes a job definition, choosing the format by the
// extension of name.
func Decode(src []byte, name string) (*Job, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hcl":
		return DecodeHCL(src, name)
	case ".yaml", ".yml":
		return DecodeYAML(src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// DecodeYAML decodes a YAML job definition. Unknown top-level keys
// are rejected rather than silently dropped, so a mistyped
// "parameters" key cannot yield an empty parameter set.
func DecodeYAML(src []byte) (*Job, error) {
	var job Job
	if err := yaml.UnmarshalWithOptions(src, &job, yaml.Strict()); err != nil {
		return nil, errors.Join(ErrInvalidJobFile, err)
	}

	if job.Algorithm == "" {
		return nil, ErrNoAlgorithm
	}

	if job.Parameters == nil {
		job.Parameters = processing.Parameters{}
	}

	return &job, nil
}
