package main

import (
	"os"

	"github.com/gophertrace/flameprof/pkg/cmd"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("flameprof", pflag.ExitOnError)
	pflag.CommandLine = flags

	root := cmd.NewFlameprofCommand(cmd.NewStdStreams())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
