// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/urfave/cli/v3"

	"github.com/nadi-gis/nadiproc/internal/algorithmregistry"
	"github.com/nadi-gis/nadiproc/internal/ctxlog"
	"github.com/nadi-gis/nadiproc/internal/feedback"
	"github.com/nadi-gis/nadiproc/internal/jobfile"
	"github.com/nadi-gis/nadiproc/internal/processing"
	"github.com/nadi-gis/nadiproc/internal/tui"
)

const (
	fileFlag    = "file"
	paramFlag   = "param"
	tuiFlag     = "tui"
	timeoutFlag = "timeout"
)

var (
	// ErrGetJobFile is returned when the job file cannot be fetched.
	ErrGetJobFile = errors.New("failed to get job file")
	// ErrBadParamOverride is returned for a --param value that is not NAME=value.
	ErrBadParamOverride = errors.New("parameter override must be NAME=value")
	// ErrRunFailed is returned when the algorithm reported an error.
	ErrRunFailed = errors.New("run failed")
)

// Cmd runs an algorithm described by a job file.
var Cmd = &cli.Command{
	Name: "run",
	Description: `Run an algorithm described by a job file (YAML or HCL).

Job file URLs use Hashicorp's go-getter syntax, which allows for fetching
files from various sources. See https://github.com/hashicorp/go-getter.`,
	Usage: "nadiproc run -f job.yaml",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     fileFlag,
			Aliases:  []string{"f"},
			Usage:    "URL of the job file to run",
			Required: true,
			OnlyOnce: true,
		},
		&cli.StringSliceFlag{
			Name:    paramFlag,
			Aliases: []string{"p"},
			Usage:   "Override a job file parameter as NAME=value. May be repeated.",
		},
		&cli.BoolFlag{
			Name:     tuiFlag,
			Usage:    "Show an interactive progress display",
			Value:    false,
			OnlyOnce: true,
		},
		&cli.DurationFlag{
			Name:     timeoutFlag,
			Usage:    "Abort the run after this duration",
			Value:    0,
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	url := cmd.String(fileFlag)

	src, err := getURL(ctx, url)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to get job file %s: %s", url, err.Error()), 1)
	}

	job, err := jobfile.Decode(src, url)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to decode job file %s: %s", url, err.Error()), 1)
	}

	if err := applyOverrides(job.Parameters, cmd.StringSlice(paramFlag)); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	registry, err := algorithmregistry.FromContext(ctx)
	if err != nil {
		return err
	}

	alg, err := registry.Get(job.Algorithm)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := processing.Validate(alg, job.Parameters); err != nil {
		return cli.Exit(fmt.Sprintf("invalid parameters for %s:\n%s", alg.Name(), err.Error()), 1)
	}

	if timeout := cmd.Duration(timeoutFlag); timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if cmd.Bool(tuiFlag) {
		return runTUI(ctx, cmd, alg, job.Parameters)
	}

	return runHeadless(ctx, cmd, alg, job.Parameters)
}

func runHeadless(
	ctx context.Context, cmd *cli.Command, alg processing.Algorithm, params processing.Parameters,
) error {
	fb := feedback.NewWriter(ctx, cmd.Writer)

	outputs, err := alg.Run(ctx, params, fb)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	printOutputs(cmd, outputs)

	if fb.Errored() {
		return cli.Exit(ErrRunFailed.Error(), 1)
	}

	return nil
}

func runTUI(
	ctx context.Context, cmd *cli.Command, alg processing.Algorithm, params processing.Parameters,
) error {
	// The TUI owns the terminal; buffer log output until it exits.
	var logBuf bytes.Buffer

	ctx = ctxlog.NewForTUI(ctx, &logBuf)

	outputs, err := tui.Run(ctx, alg, params)

	if logBuf.Len() > 0 {
		fmt.Fprint(cmd.ErrWriter, logBuf.String()) //nolint:errcheck
	}

	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	printOutputs(cmd, outputs)

	return nil
}

func printOutputs(cmd *cli.Command, outputs processing.Outputs) {
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(cmd.Writer, "%s: %s\n", name, outputs[name]) //nolint:errcheck
	}
}

// applyOverrides folds --param NAME=value pairs into the job
// parameters. Values are strings; the parameter accessors coerce them.
func applyOverrides(params processing.Parameters, overrides []string) error {
	for _, o := range overrides {
		name, value, found := strings.Cut(o, "=")
		if !found || name == "" {
			return fmt.Errorf("%w: %q", ErrBadParamOverride, o)
		}

		params[name] = value
	}

	return nil
}

// getURL retrieves the job file content using Hashicorp's go-getter,
// so job files can come from local paths, git repositories or HTTP.
// The temporary download directory is removed after reading.
func getURL(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrGetJobFile
	}

	tmpDir, err := os.MkdirTemp("", "nadiproc-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetJobFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetJobFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	dst := filepath.Join(tmpDir, filepath.Base(url))

	req := &getter.Request{
		Src:     url,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	if _, err := client.Get(ctx, req); err != nil {
		return nil, errors.Join(ErrGetJobFile, err)
	}

	src, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Join(ErrGetJobFile, err)
	}

	return src, nil
}
