package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gophertrace/flameprof/pkg/trace"
)

var (
	topShort = `List the hottest functions from a pprof -top report`

	topExamples = `
  # Show the ten hottest functions from a saved report
  %[1]s top profiles/flameprof-1234/top.txt

  # Emit the rows as JSON instead of a table
  %[1]s top profiles/flameprof-1234/top.txt --json`

	topCommand              = "top"
	topUsageString          = "REPORT_FILE"
	topRequiredArgErrString = fmt.Sprintf("%s is a required argument for the %s command", topUsageString, topCommand)
)

// TopOptions ...
type TopOptions struct {
	IOStreams

	reportFile string
	limit      int
	asJSON     bool

	fs afero.Fs
}

// NewTopOptions provides an instance of TopOptions with default values.
func NewTopOptions(streams IOStreams) *TopOptions {
	return &TopOptions{
		IOStreams: streams,

		fs: afero.NewOsFs(),
	}
}

// NewTopCommand provides the top command wrapping TopOptions.
func NewTopCommand(streams IOStreams) *cobra.Command {
	o := NewTopOptions(streams)

	cmd := &cobra.Command{
		Use:          fmt.Sprintf("%s %s", topCommand, topUsageString),
		Short:        topShort,
		Long:         topShort,
		Example:      fmt.Sprintf(topExamples, "flameprof"),
		SilenceUsage: true,
		PreRunE: func(c *cobra.Command, args []string) error {
			return o.Validate(c, args)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return o.Run()
		},
	}

	cmd.Flags().IntVar(&o.limit, "limit", 10, "Maximum number of rows to show")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Emit rows as JSON")

	return cmd
}

// Validate validates the arguments populating TopOptions accordingly.
func (o *TopOptions) Validate(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf(topRequiredArgErrString)
	}
	o.reportFile = args[0]

	if o.limit <= 0 {
		return fmt.Errorf("limit must be positive")
	}

	return nil
}

// Run parses the report and prints the ranked functions.
func (o *TopOptions) Run() error {
	b, err := afero.ReadFile(o.fs, o.reportFile)
	if err != nil {
		return err
	}

	rows := trace.ParseTop(bytes.NewReader(b), o.limit)

	if o.asJSON {
		enc, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Out, string(enc))
		return nil
	}

	w := tabwriter.NewWriter(o.Out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "FUNCTION\tPERCENT\tSAMPLES")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%.2f%%\t%s\n", row.Name, row.Percent, humanize.Comma(row.Samples))
	}
	return w.Flush()
}
