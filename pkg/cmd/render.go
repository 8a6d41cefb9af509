package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gophertrace/flameprof/pkg/flame"
	"github.com/gophertrace/flameprof/pkg/trace"
)

var (
	renderShort = `Render captured pprof traces text as flame graph data`

	renderExamples = `
  # Render a traces capture from a previous run
  %[1]s render profiles/flameprof-1234/traces.txt`

	renderCommand              = "render"
	renderUsageString          = "TRACES_FILE"
	renderRequiredArgErrString = fmt.Sprintf("%s is a required argument for the %s command", renderUsageString, renderCommand)
)

// RenderOptions ...
type RenderOptions struct {
	IOStreams

	tracesFile string

	fs afero.Fs
}

// NewRenderOptions provides an instance of RenderOptions with default values.
func NewRenderOptions(streams IOStreams) *RenderOptions {
	return &RenderOptions{
		IOStreams: streams,

		fs: afero.NewOsFs(),
	}
}

// NewRenderCommand provides the render command wrapping RenderOptions.
func NewRenderCommand(streams IOStreams) *cobra.Command {
	o := NewRenderOptions(streams)

	cmd := &cobra.Command{
		Use:          fmt.Sprintf("%s %s", renderCommand, renderUsageString),
		Short:        renderShort,
		Long:         renderShort,
		Example:      fmt.Sprintf(renderExamples, "flameprof"),
		SilenceUsage: true,
		PreRunE: func(c *cobra.Command, args []string) error {
			return o.Validate(c, args)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return o.Run()
		},
	}

	return cmd
}

// Validate validates the arguments populating RenderOptions accordingly.
func (o *RenderOptions) Validate(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf(renderRequiredArgErrString)
	}
	o.tracesFile = args[0]
	return nil
}

// Run parses the traces file and prints the layout as JSON.
func (o *RenderOptions) Run() error {
	b, err := afero.ReadFile(o.fs, o.tracesFile)
	if err != nil {
		return err
	}

	root := trace.Parse(bytes.NewReader(b))
	out := struct {
		Flamegraph *trace.Frame `json:"flamegraph"`
		Rects      []flame.Rect `json:"rects"`
		MaxDepth   int          `json:"maxDepth"`
	}{
		Flamegraph: root,
		Rects:      flame.Layout(root),
		MaxDepth:   flame.MaxDepth(root),
	}

	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(o.Out, string(enc))
	return nil
}
