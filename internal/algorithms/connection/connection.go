// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package connection

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/afero"

	"github.com/nadi-gis/nadiproc/internal/feedback"
	"github.com/nadi-gis/nadiproc/internal/linebuffer"
	"github.com/nadi-gis/nadiproc/internal/processing"
	"github.com/nadi-gis/nadiproc/internal/runproc"
)

// Parameter and output names.
const (
	ParamStreams   = "STREAMS"
	ParamStreamsID = "STREAMS_ID"
	ParamPoints    = "POINTS"
	ParamPointsID  = "POINTS_ID"
	ParamSimplify  = "SIMPLIFY"
	// OutputConnections is the key under which the resolved output path
	// is returned.
	OutputConnections = "CONNECTIONS"
)

// EnvNadiBin overrides the location of the nadi executable. When unset
// the executable is looked up on PATH.
const EnvNadiBin = "NADI_BIN"

const nadiExecutable = "nadi"

// ErrNadiNotFound is returned when the nadi executable cannot be located.
var ErrNadiNotFound = errors.New("nadi executable not found")

// runner executes an external process and returns its exit code. It is
// a field so tests can substitute a fake.
type runner func(ctx context.Context, p *runproc.Process) (int, error)

// Algorithm finds connectivity between points on a stream network by
// shelling out to the nadi command-line tool. The connectivity analysis
// itself lives entirely inside nadi; this algorithm is the plumbing
// that assembles the command line, relays the tool's streamed output
// into the feedback channel and registers the resulting layer.
type Algorithm struct {
	fs  afero.Fs
	run runner
}

var _ processing.Algorithm = (*Algorithm)(nil)

// New creates the connection algorithm.
func New() *Algorithm {
	return &Algorithm{
		fs: afero.NewOsFs(),
		run: func(ctx context.Context, p *runproc.Process) (int, error) {
			return p.Run(ctx)
		},
	}
}

// Name implements processing.Algorithm.Name.
func (a *Algorithm) Name() string { return "connection" }

// DisplayName implements processing.Algorithm.DisplayName.
func (a *Algorithm) DisplayName() string { return "Nadi Connection" }

// Group implements processing.Algorithm.Group.
func (a *Algorithm) Group() string { return "Nadi" }

// GroupID implements processing.Algorithm.GroupID.
func (a *Algorithm) GroupID() string { return "nadi" }

// Parameters implements processing.Algorithm.Parameters.
func (a *Algorithm) Parameters() []processing.Parameter {
	return []processing.Parameter{
		{
			Name:        ParamStreams,
			Description: "Streams layer",
			Kind:        processing.KindFeatureSource,
			Geometry:    processing.GeometryLine,
		},
		{
			Name:        ParamStreamsID,
			Description: "Streams unique ID field",
			Kind:        processing.KindField,
			Optional:    true,
			Source:      ParamStreams,
		},
		{
			Name:        ParamPoints,
			Description: "Points layer",
			Kind:        processing.KindFeatureSource,
			Geometry:    processing.GeometryPoint,
		},
		{
			Name:        ParamPointsID,
			Description: "Points unique ID field",
			Kind:        processing.KindField,
			Optional:    true,
			Source:      ParamPoints,
		},
		{
			Name:        ParamSimplify,
			Description: "Simplify the connection network",
			Kind:        processing.KindBoolean,
		},
		{
			Name:        OutputConnections,
			Description: "Connections layer",
			Kind:        processing.KindFeatureSink,
		},
	}
}

// Run implements processing.Algorithm.Run. It assembles and executes
// `nadi connection -i -v [-c] [-p field] [-s field] <points> <streams>
// -o <output>`, relaying stdout progress lines and stderr warnings to
// fb as they arrive.
func (a *Algorithm) Run(
	ctx context.Context, params processing.Parameters, fb feedback.Feedback,
) (processing.Outputs, error) {
	points, err := params.LayerRef(ParamPoints)
	if err != nil {
		return nil, err
	}

	streams, err := params.LayerRef(ParamStreams)
	if err != nil {
		return nil, err
	}

	pointsID, err := params.OptionalString(ParamPointsID)
	if err != nil {
		return nil, err
	}

	streamsID, err := params.OptionalString(ParamStreamsID)
	if err != nil {
		return nil, err
	}

	simplify, err := params.Bool(ParamSimplify, false)
	if err != nil {
		return nil, err
	}

	dest, err := params.String(OutputConnections)
	if err != nil {
		return nil, err
	}

	output, err := processing.ResolveOutputDestination(a.fs, dest)
	if err != nil {
		fb.ReportError(err.Error())
		return processing.Outputs{}, nil
	}

	bin, err := nadiPath()
	if err != nil {
		return nil, err
	}

	args := []string{"connection", "-i", "-v"}
	if simplify {
		args = append(args, "-c")
	}

	if pointsID != "" {
		args = append(args, "-p", pointsID)
	}

	if streamsID != "" {
		args = append(args, "-s", streamsID)
	}

	args = append(args, points.Spec(), streams.Spec(), "-o", output)

	fb.PushCommandInfo(bin + " " + strings.Join(args, " "))

	progress := linebuffer.NewProgressRelay(fb)
	warnings := linebuffer.NewWarningRelay(fb)

	proc := &runproc.Process{
		Path:     bin,
		Args:     args,
		OnStdout: progress.Feed,
		OnStderr: warnings.Feed,
	}

	code, runErr := a.run(ctx, proc)

	progress.Flush()
	warnings.Flush()

	switch {
	case fb.Canceled() || errors.Is(runErr, runproc.ErrCanceled):
		fb.PushInfo("Process was canceled and did not complete")
	case code != 0:
		msg := fmt.Sprintf("Process returned error code %d", code)
		if runErr != nil {
			msg += ": " + runErr.Error()
		}

		fb.ReportError(msg)
	default:
		fb.PushInfo("Process completed successfully")
	}

	return processing.Outputs{OutputConnections: output}, nil
}

// nadiPath locates the nadi executable, honoring the NADI_BIN override.
func nadiPath() (string, error) {
	if bin := os.Getenv(EnvNadiBin); bin != "" {
		return bin, nil
	}

	bin, err := exec.LookPath(nadiExecutable)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNadiNotFound, err)
	}

	return bin, nil
}
