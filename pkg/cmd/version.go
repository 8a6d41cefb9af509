package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gophertrace/flameprof/pkg/version"
)

func NewVersionCommand(streams IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version information for flameprof",
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintln(streams.Out, version.String())
			return nil
		},
	}
	return cmd
}
