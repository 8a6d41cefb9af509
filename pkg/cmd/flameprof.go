package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	flameprofLong = `Profile Go programs and render flame graph data.

These commands build, run and profile a target, reconstruct its call tree
from pprof output, and lay the tree out as flame graph rectangles.
	`
	flameprofExamples = `
  # Profile a binary for five seconds and print the flame graph JSON
  %[1]s run ./bin/myservice

  # Profile a package directory, writing artifacts to a local directory
  %[1]s run ./cmd/myservice --output ./profiles

  # Re-render previously captured pprof traces text
  %[1]s render traces.txt

  # Serve the profiling tools over MCP on stdin/stdout
  %[1]s serve
`
)

// FlameprofOptions holds the state shared by the whole command tree.
type FlameprofOptions struct {
	configFile string

	IOStreams
}

// NewFlameprofOptions provides an instance of FlameprofOptions with default values.
func NewFlameprofOptions(streams IOStreams) *FlameprofOptions {
	return &FlameprofOptions{
		IOStreams: streams,
	}
}

// NewFlameprofCommand creates the flameprof command and its nested children.
func NewFlameprofCommand(streams IOStreams) *cobra.Command {
	o := NewFlameprofOptions(streams)

	cmd := &cobra.Command{
		Use:                   "flameprof",
		DisableFlagsInUseLine: true,
		Short:                 `Profile Go programs and render flame graphs`,
		Long:                  flameprofLong,
		Example:               fmt.Sprintf(flameprofExamples, "flameprof"),
		PersistentPreRun: func(c *cobra.Command, args []string) {
			c.SetOutput(streams.ErrOut)
		},
		Run: func(c *cobra.Command, args []string) {
			cobra.NoArgs(c, args)
			c.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "config file (default is $HOME/.flameprof.yaml)")
	flags.String("bucket", "", "Default gs:// bucket for run artifacts")
	viper.BindPFlag("bucket", flags.Lookup("bucket"))
	viper.BindEnv("bucket", "FLAMEPROF_BUCKET")

	cobra.OnInitialize(func() {
		initConfig(o.configFile, streams)
	})

	cmd.AddCommand(NewRunCommand(streams))
	cmd.AddCommand(NewRenderCommand(streams))
	cmd.AddCommand(NewTopCommand(streams))
	cmd.AddCommand(NewServeCommand(streams))
	cmd.AddCommand(NewVersionCommand(streams))

	// Override help on all the commands tree
	walk(cmd, func(c *cobra.Command) {
		c.Flags().BoolP("help", "h", false, fmt.Sprintf("Help for the %s command", c.Name()))
	})

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig(configFile string, streams IOStreams) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(streams.ErrOut, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".flameprof")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(streams.ErrOut, "Using config file:", viper.ConfigFileUsed())
	}
}

// walk calls f for c and all of its children.
func walk(c *cobra.Command, f func(*cobra.Command)) {
	f(c)
	for _, c := range c.Commands() {
		walk(c, f)
	}
}
