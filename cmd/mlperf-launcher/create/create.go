// Package create implements "mlperf-launcher create" commands.
package create

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlperf-bench/launcher/launcherconfig"
)

var (
	path     string
	model    string
	platform string
)

func init() {
	cobra.EnablePrefixMatching = true
}

// NewCommand implements "mlperf-launcher create" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <subcommand>",
		Short: "Create commands",
	}
	cmd.PersistentFlags().StringVarP(&path, "path", "p", "", "mlperf-launcher configuration file path")
	cmd.PersistentFlags().StringVar(&model, "model", "bert", "model family to train")
	cmd.PersistentFlags().StringVar(&platform, "platform", "tinybox_red", "submission platform tag")
	cmd.AddCommand(
		newCreateConfig(),
	)
	return cmd
}

func newCreateConfig() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Writes an mlperf-launcher configuration with default values",
		Run:   configFunc,
	}
}

func configFunc(cmd *cobra.Command, args []string) {
	if path == "" {
		fmt.Fprintln(os.Stderr, "'--path' flag is not specified")
		os.Exit(1)
	}
	cfg := launcherconfig.NewDefault()
	cfg.Model = model
	cfg.SubmissionPlatform = platform
	cfg.ConfigPath = path
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to validate configuration %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote mlperf-launcher configuration to %q\n", cfg.ConfigPath)
}
