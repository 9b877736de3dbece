// Package solver runs nec2c against a prepared deck.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/nec_apg_go/internal/config"
)

// ResultExtension replaces the deck extension to name the solver output.
const ResultExtension = ".out"

// SolverExecutionError reports that the solver did not produce its output.
type SolverExecutionError struct {
	Solver string
	Deck   string
	Output string
	Err    error
}

func (e *SolverExecutionError) Error() string {
	msg := fmt.Sprintf("%s failed to create output file %s from %s", e.Solver, e.Output, e.Deck)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SolverExecutionError) Unwrap() error { return e.Err }

// Invoker runs the solver synchronously, one deck at a time.
type Invoker struct {
	Path    string
	Stdout  io.Writer
	Stderr  io.Writer
	Timeout time.Duration // zero disables the deadline
}

// Result describes one finished solver run.
type Result struct {
	OutputPath string
	ExitCode   int
	Duration   time.Duration
}

// OutputPath derives the result file name for a deck.
func OutputPath(deckPath string) string {
	return strings.TrimSuffix(deckPath, filepath.Ext(deckPath)) + ResultExtension
}

// Args returns the solver command line for a deck, without the executable.
func Args(deckPath string) []string {
	return []string{"-i", deckPath, "-o", OutputPath(deckPath)}
}

// Run executes "<solver> -i deck -o out". The exit status is reported but
// not judged; only a missing output file counts as a failure.
func (inv *Invoker) Run(ctx context.Context, deckPath string) (Result, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	res := Result{OutputPath: OutputPath(deckPath)}
	cmd := exec.CommandContext(ctx, inv.Path, Args(deckPath)...)
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	start := time.Now()
	runErr := cmd.Run()
	res.Duration = time.Since(start)
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		runErr = nil
	}
	if ctx.Err() != nil {
		runErr = ctx.Err()
	}

	fi, err := os.Stat(res.OutputPath)
	if err == nil && fi.Mode().IsRegular() && runErr == nil {
		return res, nil
	}
	if runErr == nil {
		runErr = err
	}
	return res, &SolverExecutionError{Solver: inv.Path, Deck: deckPath, Output: res.OutputPath, Err: runErr}
}

// CheckExecutable verifies that path names an executable regular file.
func CheckExecutable(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return &config.ConfigurationError{Field: "nec2c path", Value: path, Reason: "can not be found, please install nec2c or provide correct path", Err: err}
	}
	if !fi.Mode().IsRegular() {
		return config.Errorf("nec2c path", path, "is not a file")
	}
	if fi.Mode().Perm()&0o111 == 0 {
		return config.Errorf("nec2c path", path, "is not executable")
	}
	return nil
}
