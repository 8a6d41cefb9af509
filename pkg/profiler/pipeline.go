package profiler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/gophertrace/flameprof/pkg/errors"
	"github.com/gophertrace/flameprof/pkg/flame"
	"github.com/gophertrace/flameprof/pkg/meta"
	"github.com/gophertrace/flameprof/pkg/trace"
)

const (
	// minUsefulDepth is the fallback policy threshold: trees shallower
	// than this are replaced with synthesized demo data.
	minUsefulDepth = 4

	defaultDurationSeconds = 5
	defaultTopCount        = 10
)

// toolRunner is what the pipeline needs from the external toolchain shim.
type toolRunner interface {
	Build(ctx context.Context, pkgPath, outBinary string) error
	Profile(ctx context.Context, binary, profilePath, kind string, durationSeconds int, tee io.Writer) error
	Traces(ctx context.Context, binary, profilePath string) (string, error)
	Top(ctx context.Context, binary, profilePath string, nodeCount int) (string, error)
}

// Options configure one profiling run.
type Options struct {
	// Target is a package path to build, or a prebuilt binary.
	Target string

	// Name is the display name; the base of Target when empty.
	Name string

	// Kind selects the profile: "cpu" or "mem".
	Kind string

	// DurationSeconds is how long the target runs under the profiler.
	DurationSeconds int

	// TopCount caps the ranked function list.
	TopCount int

	// ArtifactDir, when set, receives flamegraph.json, top.json,
	// traces.txt and result.json.
	ArtifactDir string

	// Tee, when set, receives the target's own output during the run.
	Tee io.Writer

	Fs     afero.Fs
	Runner toolRunner
}

// Result is the JSON-serializable outcome of one profiling run.
type Result struct {
	Title           string              `json:"title"`
	Name            string              `json:"name"`
	Kind            string              `json:"kind"`
	DurationSeconds int                 `json:"durationSeconds"`
	Flamegraph      *trace.Frame        `json:"flamegraph"`
	Rects           []flame.Rect        `json:"rects"`
	MaxDepth        int                 `json:"maxDepth"`
	TopFunctions    []trace.TopFunction `json:"topFunctions"`
	Synthesized     bool                `json:"synthesized"`
}

// Run executes the full pipeline: build, profiled run, pprof text capture,
// tree reconstruction, layout. External tool failures are absorbed by
// substituting synthesized demo data; the error return covers only unusable
// options.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Target == "" {
		return nil, errors.NewErrorInvalid("target is a required option")
	}
	switch opts.Kind {
	case "":
		opts.Kind = "cpu"
	case "cpu", "mem":
	default:
		return nil, errors.NewErrorInvalid(fmt.Sprintf("unknown profile kind %s", opts.Kind))
	}
	if opts.DurationSeconds <= 0 {
		opts.DurationSeconds = defaultDurationSeconds
	}
	if opts.TopCount <= 0 {
		opts.TopCount = defaultTopCount
	}
	if opts.Name == "" {
		opts.Name = strings.TrimSuffix(filepath.Base(opts.Target), filepath.Ext(opts.Target))
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Runner == nil {
		opts.Runner = NewRunner()
	}

	res := &Result{
		Name:            opts.Name,
		Kind:            opts.Kind,
		DurationSeconds: opts.DurationSeconds,
	}

	root, tracesText, top := collect(ctx, opts)

	// Fallback policy: tool failure, nothing parsed, or a tree too
	// shallow to be worth drawing.
	if root == nil || flame.MaxDepth(root) < minUsefulDepth {
		root = flame.DemoTree(opts.Name, opts.DurationSeconds, opts.Kind)
		top = flame.DemoTopFunctions(opts.Kind)
		res.Title = flame.DemoTitle(opts.Name, opts.DurationSeconds, opts.Kind)
		res.Synthesized = true
	} else {
		res.Title = fmt.Sprintf("%s: %s profile over %ds", opts.Name, opts.Kind, opts.DurationSeconds)
	}

	res.Flamegraph = root
	res.Rects = flame.Layout(root)
	res.MaxDepth = flame.MaxDepth(root)
	res.TopFunctions = top

	if opts.ArtifactDir != "" {
		if err := writeArtifacts(opts.Fs, opts.ArtifactDir, res, tracesText); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// collect runs the external tools and parses whatever they produced. Any
// failure along the way degrades to a nil tree; the caller owns the fallback.
func collect(ctx context.Context, opts Options) (*trace.Frame, string, []trace.TopFunction) {
	binary := opts.Target
	if ok, err := afero.IsDir(opts.Fs, opts.Target); err == nil && ok {
		built, err := buildTarget(ctx, opts)
		if err != nil {
			return nil, "", nil
		}
		binary = built
	}

	profilePath := binary + "." + opts.Kind + ".pprof"
	if err := opts.Runner.Profile(ctx, binary, profilePath, opts.Kind, opts.DurationSeconds, opts.Tee); err != nil {
		return nil, "", nil
	}

	var top []trace.TopFunction
	if topText, err := opts.Runner.Top(ctx, binary, profilePath, opts.TopCount); err == nil {
		top = trace.ParseTop(strings.NewReader(topText), opts.TopCount)
	}

	// The protobuf is the richer source; the -traces text scrape is the
	// fallback when it cannot be read back.
	if p, err := ReadProfile(opts.Fs, profilePath); err == nil {
		if root := TreeFromProfile(p, -1); len(root.Children) > 0 {
			return root, "", top
		}
	}

	tracesText, err := opts.Runner.Traces(ctx, binary, profilePath)
	if err != nil {
		return nil, "", top
	}
	return trace.Parse(strings.NewReader(tracesText)), tracesText, top
}

func buildTarget(ctx context.Context, opts Options) (string, error) {
	workDir, err := afero.TempDir(opts.Fs, "", "flameprof")
	if err != nil {
		return "", err
	}
	binary := filepath.Join(workDir, opts.Name)
	if err := opts.Runner.Build(ctx, opts.Target, binary); err != nil {
		return "", err
	}
	return binary, nil
}

func writeArtifacts(fs afero.Fs, dir string, res *Result, tracesText string) error {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	files := map[string]interface{}{
		meta.FlamegraphFile:   res.Flamegraph,
		meta.TopFunctionsFile: res.TopFunctions,
		meta.ResultFile:       res,
	}
	for name, v := range files {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		if err := afero.WriteFile(fs, filepath.Join(dir, name), b, 0644); err != nil {
			return err
		}
	}

	if tracesText != "" {
		return afero.WriteFile(fs, filepath.Join(dir, meta.TracesFile), []byte(tracesText), 0644)
	}
	return nil
}
