package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gophertrace/flameprof/pkg/bundle"
	"github.com/gophertrace/flameprof/pkg/meta"
	"github.com/gophertrace/flameprof/pkg/profiler"
	"github.com/gophertrace/flameprof/pkg/upload"
)

var (
	runShort = `Profile a Go binary or package and emit flame graph data`

	runLong = runShort

	runExamples = `
  # Profile a prebuilt binary for five seconds
  %[1]s run ./bin/myservice

  # Build and profile a package directory, capturing a memory profile
  %[1]s run ./cmd/myservice --kind mem --duration 10

  # Write run artifacts to a local directory instead of stdout
  %[1]s run ./bin/myservice --output ./profiles

  # Upload run artifacts to a GCS bucket
  %[1]s run ./bin/myservice --output gs://mybucket/profiles`

	runCommand              = "run"
	runUsageString          = "TARGET"
	runRequiredArgErrString = fmt.Sprintf("%s is a required argument for the %s command", runUsageString, runCommand)
)

type outputType string

const (
	stdoutOutput    outputType = "stdout"
	directoryOutput outputType = "directory"
	gcsOutput       outputType = "gs"
)

// RunOptions ...
type RunOptions struct {
	IOStreams

	target   string
	name     string
	kind     string
	duration int
	topCount int
	output   string

	// Values populated after validation
	outputType outputType

	fs      afero.Fs
	profile func(ctx context.Context, opts profiler.Options) (*profiler.Result, error)
	upload  func(runDir, bucketURL string) error
}

// NewRunOptions provides an instance of RunOptions with default values.
func NewRunOptions(streams IOStreams) *RunOptions {
	return &RunOptions{
		IOStreams: streams,

		fs:      afero.NewOsFs(),
		profile: profiler.Run,
		upload:  uploadToGcs,
	}
}

// NewRunCommand provides the run command wrapping RunOptions.
func NewRunCommand(streams IOStreams) *cobra.Command {
	o := NewRunOptions(streams)

	cmd := &cobra.Command{
		Use:          fmt.Sprintf("%s %s", runCommand, runUsageString),
		Short:        runShort,
		Long:         runLong,
		Example:      fmt.Sprintf(runExamples, "flameprof"),
		SilenceUsage: true,
		PreRunE: func(c *cobra.Command, args []string) error {
			return o.Validate(c, args)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return o.Run(c.Context())
		},
	}

	cmd.Flags().StringVar(&o.name, "name", "", "Display name for the run (defaults to the target's base name)")
	cmd.Flags().StringVar(&o.kind, "kind", "cpu", "Profile kind, cpu or mem")
	cmd.Flags().IntVar(&o.duration, "duration", 5, "Profiling duration in seconds")
	cmd.Flags().IntVar(&o.topCount, "top-count", 10, "How many top functions to report")
	cmd.Flags().StringVar(&o.output, "output", "stdout", "Where to send results (stdout, a local directory, or a gs:// URL)")

	return cmd
}

// Validate validates the arguments and flags populating RunOptions accordingly.
func (o *RunOptions) Validate(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf(runRequiredArgErrString)
	}
	o.target = args[0]

	// An output left at its default falls through to the configured bucket.
	if !cmd.Flag("output").Changed {
		if bucket := viper.GetString("bucket"); bucket != "" {
			o.output = "gs://" + bucket
		}
	}

	if len(o.output) == 0 {
		return fmt.Errorf("output cannot be empty when specified")
	}

	switch {
	case o.output == "stdout":
		o.outputType = stdoutOutput
	case strings.HasPrefix(o.output, "gs://"):
		o.outputType = gcsOutput
	case o.output[0] == '/' || o.output[0] == '.':
		o.outputType = directoryOutput
	default:
		return fmt.Errorf("unknown output %s", o.output)
	}

	return nil
}

// Run executes the profiling pipeline and dispatches its artifacts.
func (o *RunOptions) Run(ctx context.Context) error {
	runID := meta.NewRunID()

	var artifactDir string
	switch o.outputType {
	case directoryOutput:
		artifactDir = filepath.Join(o.output, runID)
	case gcsOutput:
		parent, err := os.MkdirTemp("", "flameprof")
		if err != nil {
			return err
		}
		defer os.RemoveAll(parent)
		artifactDir = filepath.Join(parent, runID)
	}

	// When results go to a file or bucket the target's own output would
	// otherwise vanish, so stream it to the user as it runs.
	var tee io.Writer
	if o.outputType != stdoutOutput {
		tee = o.ErrOut
	}

	res, err := o.profile(ctx, profiler.Options{
		Target:          o.target,
		Name:            o.name,
		Kind:            o.kind,
		DurationSeconds: o.duration,
		TopCount:        o.topCount,
		ArtifactDir:     artifactDir,
		Tee:             tee,
		Fs:              o.fs,
	})
	if err != nil {
		return err
	}

	if res.Synthesized {
		fmt.Fprintln(o.ErrOut, "profiling tools unavailable or output too shallow, emitting demo data")
	}

	switch o.outputType {
	case stdoutOutput:
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Out, string(b))
		return nil
	case directoryOutput:
		if err := o.writeBundle(artifactDir, runID); err != nil {
			return err
		}
		fmt.Fprintln(o.Out, "run artifacts written to", artifactDir)
		return nil
	case gcsOutput:
		fmt.Fprintln(o.Out, "Uploading run artifacts to "+o.output)
		return o.upload(artifactDir, o.output)
	}

	return nil
}

// writeBundle drops a tarball of the run directory next to it so a single
// file can be shipped around.
func (o *RunOptions) writeBundle(artifactDir, runID string) error {
	tarPath := filepath.Join(filepath.Dir(artifactDir), bundle.Filename(runID))
	f, err := os.Create(tarPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return bundle.TarDirectory(f, artifactDir)
}

func uploadToGcs(runDir, bucketURL string) error {
	client, err := upload.NewGcsUploader(upload.GcsUploaderOptions{})
	if err != nil {
		return err
	}
	return client.Upload(runDir, bucketURL)
}
