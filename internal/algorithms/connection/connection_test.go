// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package connection

import (
	"context"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadi-gis/nadiproc/internal/feedback"
	"github.com/nadi-gis/nadiproc/internal/processing"
	"github.com/nadi-gis/nadiproc/internal/runproc"
)

const nadiBin = "/opt/nadi/bin/nadi"

// newStubbed returns an algorithm whose runner records the process it
// was asked to run and reports the given exit code, optionally feeding
// stdout and stderr chunks to the handlers first.
func newStubbed(exitCode int, stdout, stderr []string) (*Algorithm, **runproc.Process) {
	var captured *runproc.Process

	a := &Algorithm{
		fs: afero.NewMemMapFs(),
		run: func(_ context.Context, p *runproc.Process) (int, error) {
			captured = p

			for _, chunk := range stdout {
				p.OnStdout([]byte(chunk))
			}

			for _, chunk := range stderr {
				p.OnStderr([]byte(chunk))
			}

			return exitCode, nil
		},
	}

	return a, &captured
}

func baseParams() processing.Parameters {
	return processing.Parameters{
		ParamPoints:       "data/points.gpkg:outlets",
		ParamStreams:      "data/streams.gpkg:rivers",
		OutputConnections: "out/connections.gpkg",
	}
}

func TestRunAssemblesCommandLine(t *testing.T) {
	stub := gostub.New().SetEnv(EnvNadiBin, nadiBin)
	defer stub.Reset()

	a, captured := newStubbed(0, []string{"reading:50\n", "reading:100\n"}, nil)

	params := baseParams()
	params[ParamSimplify] = true
	params[ParamPointsID] = "station"
	params[ParamStreamsID] = "reach"

	rec := feedback.NewRecorder()

	outputs, err := a.Run(context.Background(), params, rec)

	require.NoError(t, err)
	require.NotNil(t, *captured)
	assert.Equal(t, nadiBin, (*captured).Path)
	assert.Equal(t, []string{
		"connection", "-i", "-v", "-c",
		"-p", "station",
		"-s", "reach",
		"data/points.gpkg:outlets",
		"data/streams.gpkg:rivers",
		"-o", "out/connections.gpkg",
	}, (*captured).Args)
	assert.Equal(t, processing.Outputs{OutputConnections: "out/connections.gpkg"}, outputs)

	cmds := rec.OfType(feedback.EventCommand)
	require.Len(t, cmds, 1)
	assert.Contains(t, cmds[0].Message, nadiBin+" connection -i -v -c")

	progress := rec.OfType(feedback.EventProgress)
	require.Len(t, progress, 2)
	assert.InDelta(t, 50, progress[0].Percent, 0.01)
	assert.InDelta(t, 100, progress[1].Percent, 0.01)

	infos := rec.OfType(feedback.EventInfo)
	require.Len(t, infos, 1)
	assert.Equal(t, "Process completed successfully", infos[0].Message)
	assert.Empty(t, rec.OfType(feedback.EventError))
}

func TestRunOmitsOptionalFlags(t *testing.T) {
	stub := gostub.New().SetEnv(EnvNadiBin, nadiBin)
	defer stub.Reset()

	a, captured := newStubbed(0, nil, nil)
	rec := feedback.NewRecorder()

	_, err := a.Run(context.Background(), baseParams(), rec)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"connection", "-i", "-v",
		"data/points.gpkg:outlets",
		"data/streams.gpkg:rivers",
		"-o", "out/connections.gpkg",
	}, (*captured).Args)
}

func TestRunUnsupportedDestination(t *testing.T) {
	stub := gostub.New().SetEnv(EnvNadiBin, nadiBin)
	defer stub.Reset()

	a, captured := newStubbed(0, nil, nil)

	params := baseParams()
	params[OutputConnections] = "ogr:dbname='out.sqlite' table=connections"

	rec := feedback.NewRecorder()

	outputs, err := a.Run(context.Background(), params, rec)

	require.NoError(t, err)
	assert.Empty(t, outputs)
	assert.Nil(t, *captured, "no process may be launched for a rejected destination")

	errs := rec.OfType(feedback.EventError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unsupported output destination")
}

func TestRunMemoryDestination(t *testing.T) {
	stub := gostub.New().SetEnv(EnvNadiBin, nadiBin)
	defer stub.Reset()

	a, captured := newStubbed(0, nil, nil)

	params := baseParams()
	params[OutputConnections] = "memory:Connections"

	rec := feedback.NewRecorder()

	outputs, err := a.Run(context.Background(), params, rec)

	require.NoError(t, err)
	assert.Contains(t, outputs[OutputConnections], "connections.gpkg")
	require.NotNil(t, *captured)
	assert.Contains(t, (*captured).Args[len((*captured).Args)-1], "connections.gpkg")
}

func TestRunNonZeroExit(t *testing.T) {
	stub := gostub.New().SetEnv(EnvNadiBin, nadiBin)
	defer stub.Reset()

	a, _ := newStubbed(2, nil, []string{"no such layer: rivers\n"})
	rec := feedback.NewRecorder()

	outputs, err := a.Run(context.Background(), baseParams(), rec)

	require.NoError(t, err)
	assert.Equal(t, "out/connections.gpkg", outputs[OutputConnections])

	errs := rec.OfType(feedback.EventError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "error code 2")

	warnings := rec.OfType(feedback.EventWarning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "no such layer: rivers", warnings[0].Message)

	assert.Empty(t, rec.OfType(feedback.EventInfo), "no success message on failure")
}

func TestRunCanceled(t *testing.T) {
	stub := gostub.New().SetEnv(EnvNadiBin, nadiBin)
	defer stub.Reset()

	a, _ := newStubbed(-1, nil, nil)
	rec := feedback.NewRecorder()
	rec.Cancel()

	_, err := a.Run(context.Background(), baseParams(), rec)

	require.NoError(t, err)

	infos := rec.OfType(feedback.EventInfo)
	require.Len(t, infos, 1)
	assert.Equal(t, "Process was canceled and did not complete", infos[0].Message)
	assert.Empty(t, rec.OfType(feedback.EventError))
}

func TestRunFlushesTrailingPartialLine(t *testing.T) {
	stub := gostub.New().SetEnv(EnvNadiBin, nadiBin)
	defer stub.Reset()

	a, _ := newStubbed(0, []string{"almost done"}, nil)
	rec := feedback.NewRecorder()

	_, err := a.Run(context.Background(), baseParams(), rec)

	require.NoError(t, err)

	infos := rec.OfType(feedback.EventInfo)
	require.Len(t, infos, 2)
	assert.Equal(t, "almost done", infos[0].Message)
	assert.Equal(t, "Process completed successfully", infos[1].Message)
}

func TestRunValidatesParameters(t *testing.T) {
	a, _ := newStubbed(0, nil, nil)

	_, err := a.Run(context.Background(), processing.Parameters{}, feedback.NewNull())

	require.ErrorIs(t, err, processing.ErrMissingParameter)
}
