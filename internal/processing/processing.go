// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package processing

import (
	"context"

	"github.com/nadi-gis/nadiproc/internal/feedback"
)

// Algorithm is a processing unit with declared parameters and a run
// entry point. Implementations wrap a long-running operation, report
// progress and messages through the feedback channel, and return a
// mapping from their declared output names to resolved destinations.
type Algorithm interface {
	// Name returns the identifier of the algorithm. It must be unique
	// within the registry and contain lowercase alphanumeric characters
	// only.
	Name() string
	// DisplayName returns the human-readable algorithm name.
	DisplayName() string
	// Group returns the human-readable name of the group this algorithm
	// belongs to.
	Group() string
	// GroupID returns the unique identifier of the group.
	GroupID() string
	// Parameters returns the declared parameters of the algorithm.
	Parameters() []Parameter
	// Run executes the algorithm. Failures local to the run (bad output
	// destination, tool exit status) are reported through fb and do not
	// produce a Go error; the error return is reserved for conditions
	// that prevent the run from proceeding at all.
	Run(ctx context.Context, params Parameters, fb feedback.Feedback) (Outputs, error)
}

// Outputs maps declared output names to their resolved destinations.
type Outputs map[string]string
