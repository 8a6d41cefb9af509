package profiler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"time"

	"github.com/gophertrace/flameprof/pkg/pty"
)

// execCommandContext is swapped out by tests.
var execCommandContext = exec.CommandContext

const (
	// DefaultToolTimeout bounds every external toolchain invocation. Past
	// it the invocation is abandoned and the caller substitutes demo data.
	DefaultToolTimeout = 2 * time.Minute
)

// Runner shells out to the Go toolchain: building the target, running it
// with profiling enabled, and scraping `go tool pprof` text reports.
type Runner struct {
	// GoBinary is the toolchain entrypoint, "go" unless overridden.
	GoBinary string

	// Timeout is the hard wall-clock limit per invocation.
	Timeout time.Duration
}

// NewRunner provides a Runner with default values.
func NewRunner() *Runner {
	return &Runner{
		GoBinary: "go",
		Timeout:  DefaultToolTimeout,
	}
}

// Build compiles the package at pkgPath into outBinary.
func (r *Runner) Build(ctx context.Context, pkgPath, outBinary string) error {
	_, err := r.capture(ctx, r.GoBinary, "build", "-o", outBinary, pkgPath)
	return err
}

// Profile runs the built binary with profiling enabled for the given
// duration. The target owns the profile writing: it must accept the
// -cpuprofile/-memprofile and -duration flags the demo apps use. When tee is
// non-nil the target runs under a PTY and its output is streamed to tee,
// otherwise output is discarded.
func (r *Runner) Profile(ctx context.Context, binary, profilePath, kind string, durationSeconds int, tee io.Writer) error {
	flag := "-cpuprofile=" + profilePath
	if kind == "mem" {
		flag = "-memprofile=" + profilePath
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout(durationSeconds))
	defer cancel()

	c := execCommandContext(ctx, binary, flag, "-duration="+strconv.Itoa(durationSeconds))

	if tee == nil {
		var stderr bytes.Buffer
		c.Stderr = &stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("profiled run failed: %v: %s", err, stderr.String())
		}
		return nil
	}

	f, err := pty.Start(c)
	if err != nil {
		return fmt.Errorf("failed to start profiled run with pty: %v", err)
	}
	// The copy ends when the target exits and the PTY master hits EOF.
	io.Copy(tee, f)
	return c.Wait()
}

// Traces captures the `go tool pprof -traces` text report for a profile.
func (r *Runner) Traces(ctx context.Context, binary, profilePath string) (string, error) {
	return r.capture(ctx, r.GoBinary, "tool", "pprof", "-traces", binary, profilePath)
}

// Top captures the `go tool pprof -top` text report for a profile.
func (r *Runner) Top(ctx context.Context, binary, profilePath string, nodeCount int) (string, error) {
	return r.capture(ctx, r.GoBinary, "tool", "pprof", "-top", "-nodecount="+strconv.Itoa(nodeCount), binary, profilePath)
}

func (r *Runner) capture(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout(0))
	defer cancel()

	var stdout, stderr bytes.Buffer
	c := execCommandContext(ctx, name, args...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("%s %v: %v: %s", name, args, err, stderr.String())
	}
	return stdout.String(), nil
}

// timeout leaves room for the profiled run itself on top of the hard limit.
func (r *Runner) timeout(durationSeconds int) time.Duration {
	t := r.Timeout
	if t == 0 {
		t = DefaultToolTimeout
	}
	return t + time.Duration(durationSeconds)*time.Second
}
