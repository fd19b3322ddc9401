// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package jobfile

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/nadi-gis/nadiproc/internal/processing"
)

// DecodeHCL decodes an HCL job definition of the form:
//
//	algorithm  = "connection"
//	parameters = {
//	  POINTS = "data/points.gpkg:outlets"
//	}
func DecodeHCL(src []byte, filename string) (*Job, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJobFile, diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJobFile, diags.Error())
	}

	job := &Job{Parameters: processing.Parameters{}}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidJobFile, diags.Error())
		}

		switch name {
		case "algorithm":
			if val.Type() != cty.String {
				return nil, fmt.Errorf("%w: algorithm must be a string", ErrInvalidJobFile)
			}

			job.Algorithm = val.AsString()
		case "parameters":
			params, err := ctyToGo(val)
			if err != nil {
				return nil, errors.Join(ErrInvalidJobFile, err)
			}

			obj, ok := params.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: parameters must be an object", ErrInvalidJobFile)
			}

			job.Parameters = obj
		default:
			return nil, fmt.Errorf("%w: unexpected attribute %q in %s", ErrInvalidJobFile, name, filename)
		}
	}

	if job.Algorithm == "" {
		return nil, ErrNoAlgorithm
	}

	return job, nil
}

// ctyToGo converts a cty value to its natural Go counterpart. Numbers
// become float64, objects become map[string]any.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("failed to convert number: %w", err)
		}

		return f, nil

	case ty.IsListType() || ty.IsTupleType():
		var out []any

		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()

			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}

			out = append(out, gv)
		}

		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)

		for it := v.ElementIterator(); it.Next(); {
			key, ev := it.Element()

			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %w", key.AsString(), err)
			}

			out[key.AsString()] = gv
		}

		return out, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
