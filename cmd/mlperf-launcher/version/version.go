// Package version implements "mlperf-launcher version" command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlperf-bench/launcher/version"
)

func init() {
	cobra.EnablePrefixMatching = true
}

// NewCommand implements "mlperf-launcher version" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints out mlperf-launcher version",
		Run:   versionFunc,
	}
}

func versionFunc(cmd *cobra.Command, args []string) {
	fmt.Printf(`GitCommit: %s
ReleaseVersion: %s
BuildTime: %s
`,
		version.GitCommit,
		version.ReleaseVersion,
		version.BuildTime,
	)
}
