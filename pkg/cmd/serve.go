package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/gophertrace/flameprof/pkg/mcpserver"
	"github.com/gophertrace/flameprof/pkg/version"
)

var serveShort = `Serve the profiling tools over MCP on stdin/stdout`

// ServeOptions ...
type ServeOptions struct {
	IOStreams

	debug bool

	serve func() error
}

// NewServeOptions provides an instance of ServeOptions with default values.
func NewServeOptions(streams IOStreams) *ServeOptions {
	return &ServeOptions{
		IOStreams: streams,
	}
}

// NewServeCommand provides the serve command wrapping ServeOptions.
func NewServeCommand(streams IOStreams) *cobra.Command {
	o := NewServeOptions(streams)

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        serveShort,
		Long:         serveShort,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return o.Run()
		},
	}

	cmd.Flags().BoolVar(&o.debug, "debug", false, "Dump server options before serving")

	return cmd
}

// Run blocks serving MCP requests until the client disconnects.
func (o *ServeOptions) Run() error {
	if o.debug {
		spew.Fdump(o.ErrOut, o)
	}

	if o.serve == nil {
		o.serve = mcpserver.New(version.Version()).ServeStdio
	}

	fmt.Fprintln(o.ErrOut, "serving MCP on stdio")
	return o.serve()
}
