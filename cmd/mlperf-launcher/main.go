// mlperf-launcher runs MLPerf training benchmark submissions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlperf-bench/launcher/cmd/mlperf-launcher/create"
	"github.com/mlperf-bench/launcher/cmd/mlperf-launcher/run"
	"github.com/mlperf-bench/launcher/cmd/mlperf-launcher/version"
)

var rootCmd = &cobra.Command{
	Use:        "mlperf-launcher",
	Short:      "MLPerf training benchmark launcher CLI",
	SuggestFor: []string{"mlperf"},
}

func init() {
	cobra.EnablePrefixMatching = true
}

func init() {
	rootCmd.AddCommand(
		create.NewCommand(),
		run.NewCommand(),
		version.NewCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mlperf-launcher failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
