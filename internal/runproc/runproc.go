// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runproc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/nadi-gis/nadiproc/internal/ctxlog"
	"github.com/nadi-gis/nadiproc/internal/signalbroker"
)

const readBufferSize = 4 * 1024 // Size of the chunk handed to stream handlers

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrCanceled is returned when the process was killed due to context cancellation.
	ErrCanceled = errors.New("process canceled")
	// ErrSignalReceived is returned when an operating system signal is received by the child process.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a duplicate signal is received, forcing process termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// Handler receives a chunk of raw stream output. Chunks are delivered
// synchronously and in order from a single goroutine per stream, so a
// stateful line relay is never accessed concurrently.
type Handler func(chunk []byte)

// Process is a single blocking invocation of an external tool. The
// call starts the process, streams its output through the handlers set
// up beforehand, waits for it to exit, and returns the exit code.
// Exactly one process is in flight per Run call.
type Process struct {
	Path     string            // Full path to the executable.
	Args     []string          // Arguments, not including the executable name itself.
	Cwd      string            // Working directory, empty for the current one.
	Env      map[string]string // Additional environment variables.
	OnStdout Handler           // Receives stdout chunks, may be nil.
	OnStderr Handler           // Receives stderr chunks, may be nil.

	sigCh chan os.Signal // Channel to receive signals, allows mocking in test.
}

// Run executes the process and blocks until it exits. Context
// cancellation and duplicate OS signals kill the process; the first
// signal of a type is forwarded to it. The exit code is -1 when the
// process could not be started or was killed.
func (p *Process) Run(ctx context.Context) (int, error) {
	logger := ctxlog.Logger(ctx).With("path", p.Path)
	logger.Debug("process info", "cwd", p.Cwd, "args", p.Args)

	if p.sigCh == nil {
		p.sigCh = signalbroker.New(ctx)
	}

	env := os.Environ()
	for k, v := range p.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return -1, errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeAll(rOut, wOut)
		return -1, errors.Join(ErrFailedToCreatePipe, err)
	}

	execName := filepath.Base(p.Path)
	args := slices.Concat([]string{execName}, p.Args)

	logger.Debug("starting process")

	ps, err := os.StartProcess(p.Path, args, &os.ProcAttr{
		Dir:   p.Cwd,
		Env:   env,
		Files: []*os.File{os.Stdin, wOut, wErr},
	})
	if err != nil {
		closeAll(rOut, wOut, rErr, wErr)
		return -1, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	// The child holds duplicates of the write ends; close ours so the
	// readers see EOF when the child exits.
	_ = wOut.Close()
	_ = wErr.Close()

	var readers sync.WaitGroup

	readers.Add(2)

	go func() {
		defer readers.Done()
		stream(rOut, p.OnStdout)
	}()

	go func() {
		defer readers.Done()
		stream(rErr, p.OnStderr)
	}()

	// Watchdog for process signals and context cancellation.
	done := make(chan struct{})
	// Tracks why the process was killed.
	wasKilled := make(chan error)

	go func() {
		signalCount := make(map[os.Signal]struct{})

		for {
			select {
			case s := <-p.sigCh:
				// Second signal of this type forces termination.
				if _, ok := signalCount[s]; ok {
					logger.Info("received duplicate signal, killing process", "signal", s.String())
					killPs(ctx, ps)

					select {
					case wasKilled <- ErrDuplicateSignalReceived:
					case <-done:
					}

					return
				}

				signalCount[s] = struct{}{}

				logger.Info("received signal, forwarding to process", "signal", s.String())

				if err := ps.Signal(s); err != nil {
					logger.Info("failed to send signal", "signal", s.String(), "error", err)
				}

				select {
				case wasKilled <- ErrSignalReceived:
				case <-done:
					return
				}

			case <-ctx.Done():
				logger.Info("context done, killing process")
				killPs(ctx, ps)

				select {
				case wasKilled <- ErrCanceled:
				case <-done:
				}

				return

			case <-done:
				return
			}
		}
	}()

	logger.Debug("waiting for process to finish")

	state, psErr := ps.Wait()

	readers.Wait()
	_ = rOut.Close()
	_ = rErr.Close()

	exitCode := state.ExitCode()
	runErr := psErr

	logger.Debug("process finished", "exitCode", exitCode)

	select {
	case e := <-wasKilled:
		runErr = errors.Join(runErr, e)
		exitCode = -1
	default:
		// Process completed without watchdog intervention.
	}

	close(done)

	return exitCode, runErr
}

// stream copies the pipe into the handler in small chunks until EOF.
// A nil handler still drains the pipe so the child never blocks on a
// full buffer.
func stream(r io.Reader, h Handler) {
	buf := make([]byte, readBufferSize)

	for {
		n, err := r.Read(buf)
		if n > 0 && h != nil {
			h(buf[:n])
		}

		if err != nil {
			return
		}
	}
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

// killPs kills the process, tolerating one that has already exited.
func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Logger(ctx).Debug("process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Logger(ctx).Error("process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Logger(ctx).Info("process killed", "pid", ps.Pid)
}
