// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package processing

import (
	"errors"
	"strings"
)

// ErrEmptyLayerSpec is returned when a layer specification is empty.
var ErrEmptyLayerSpec = errors.New("empty layer specification")

// LayerRef identifies a vector layer inside a dataset file, written as
// "path:layer". The layer name is optional; single-layer files need
// only the path.
type LayerRef struct {
	Path  string
	Layer string
}

// ParseLayerRef parses a "path[:layer]" specification. A colon that is
// part of a Windows drive letter or is followed by a path separator is
// treated as part of the path.
func ParseLayerRef(spec string) (LayerRef, error) {
	if spec == "" {
		return LayerRef{}, ErrEmptyLayerSpec
	}

	i := strings.LastIndexByte(spec, ':')
	if i <= 1 || strings.ContainsAny(spec[i+1:], `/\`) {
		return LayerRef{Path: spec}, nil
	}

	return LayerRef{Path: spec[:i], Layer: spec[i+1:]}, nil
}

// Spec renders the reference back to "path[:layer]" form, the shape
// the nadi command line accepts.
func (l LayerRef) Spec() string {
	if l.Layer == "" {
		return l.Path
	}

	return l.Path + ":" + l.Layer
}
