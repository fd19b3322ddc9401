// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package processing

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrMissingParameter is returned when a required parameter has no value.
	ErrMissingParameter = errors.New("missing required parameter")
	// ErrUnknownParameter is returned when a value is supplied for an undeclared parameter.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrWrongParameterType is returned when a parameter value has an unusable type.
	ErrWrongParameterType = errors.New("wrong parameter type")
)

// ParameterKind identifies what a declared parameter accepts.
type ParameterKind int

const (
	// KindFeatureSource is an input vector layer, given as "path[:layer]".
	KindFeatureSource ParameterKind = iota
	// KindField is the name of an attribute field of a source layer.
	KindField
	// KindBoolean is a true/false flag.
	KindBoolean
	// KindFeatureSink is an output vector layer destination.
	KindFeatureSink
)

// String implements the Stringer interface for ParameterKind.
func (k ParameterKind) String() string {
	switch k {
	case KindFeatureSource:
		return "source"
	case KindField:
		return "field"
	case KindBoolean:
		return "boolean"
	case KindFeatureSink:
		return "sink"
	default:
		return "unknown"
	}
}

// GeometryKind restricts the geometry of a feature-source parameter.
type GeometryKind int

const (
	// GeometryAny places no restriction on the layer geometry.
	GeometryAny GeometryKind = iota
	// GeometryPoint requires a point layer.
	GeometryPoint
	// GeometryLine requires a line layer.
	GeometryLine
	// GeometryPolygon requires a polygon layer.
	GeometryPolygon
)

// String implements the Stringer interface for GeometryKind.
func (g GeometryKind) String() string {
	switch g {
	case GeometryPoint:
		return "point"
	case GeometryLine:
		return "line"
	case GeometryPolygon:
		return "polygon"
	default:
		return "any"
	}
}

// Parameter declares one input or output of an algorithm.
type Parameter struct {
	// Name is the key under which a value is supplied.
	Name string
	// Description is the human-readable parameter description.
	Description string
	// Kind identifies what the parameter accepts.
	Kind ParameterKind
	// Optional marks parameters that may be omitted.
	Optional bool
	// Default is the value assumed when an optional boolean is omitted.
	Default bool
	// Source names the feature-source parameter a field parameter
	// belongs to.
	Source string
	// Geometry restricts the geometry of a feature-source parameter.
	Geometry GeometryKind
}

// Parameters holds the values supplied for a run, keyed by parameter name.
type Parameters map[string]any

// String returns the string value for key.
func (p Parameters) String(key string) (string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s: expected string, got %T", ErrWrongParameterType, key, v)
	}

	return s, nil
}

// OptionalString returns the string value for key, or "" when absent.
func (p Parameters) OptionalString(key string) (string, error) {
	if v, ok := p[key]; !ok || v == nil {
		return "", nil
	}

	return p.String(key)
}

// Bool returns the boolean value for key, or def when absent. String
// values that strconv.ParseBool accepts are recognized so that values
// may come from command-line overrides.
func (p Parameters) Bool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}

	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("%w: %s: %q is not a boolean", ErrWrongParameterType, key, b)
		}

		return parsed, nil
	default:
		return false, fmt.Errorf("%w: %s: expected bool, got %T", ErrWrongParameterType, key, v)
	}
}

// LayerRef returns the parsed layer reference for key.
func (p Parameters) LayerRef(key string) (LayerRef, error) {
	s, err := p.String(key)
	if err != nil {
		return LayerRef{}, err
	}

	ref, err := ParseLayerRef(s)
	if err != nil {
		return LayerRef{}, fmt.Errorf("%s: %w", key, err)
	}

	return ref, nil
}

// Validate checks the supplied values against the declared parameters
// of alg. All problems are reported, aggregated into one error.
func Validate(alg Algorithm, params Parameters) error {
	declared := make(map[string]Parameter, len(alg.Parameters()))
	for _, d := range alg.Parameters() {
		declared[d.Name] = d
	}

	var result *multierror.Error

	for key := range params {
		if _, ok := declared[key]; !ok {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrUnknownParameter, key))
		}
	}

	for _, d := range alg.Parameters() {
		v, present := params[d.Name]

		if !present || v == nil {
			if !d.Optional && d.Kind != KindBoolean {
				result = multierror.Append(result, fmt.Errorf("%w: %s", ErrMissingParameter, d.Name))
			}

			continue
		}

		switch d.Kind {
		case KindBoolean:
			if _, err := params.Bool(d.Name, d.Default); err != nil {
				result = multierror.Append(result, err)
			}
		case KindFeatureSource:
			if _, err := params.LayerRef(d.Name); err != nil {
				result = multierror.Append(result, err)
			}
		case KindField, KindFeatureSink:
			if _, err := params.String(d.Name); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}

	return result.ErrorOrNil()
}
