// Package run implements "mlperf-launcher run" command.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"k8s.io/utils/exec"

	"github.com/mlperf-bench/launcher/launcher"
	"github.com/mlperf-bench/launcher/launcherconfig"
	"github.com/mlperf-bench/launcher/pkg/fileutil"
)

var path string

func init() {
	cobra.EnablePrefixMatching = true
}

// NewCommand implements "mlperf-launcher run" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Runs the init pass and the timed run pass",
		Run:   runFunc,
	}
	cmd.PersistentFlags().StringVarP(&path, "path", "p", "", "mlperf-launcher configuration file path")
	return cmd
}

func runFunc(cmd *cobra.Command, args []string) {
	if !fileutil.Exist(path) {
		fmt.Fprintf(os.Stderr, "cannot find configuration %q\n", path)
		os.Exit(1)
	}

	cfg, err := launcherconfig.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration %q (%v)\n", path, err)
		os.Exit(1)
	}
	if err = cfg.UpdateFromEnvs(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to update configuration from environment (%v)\n", err)
		os.Exit(1)
	}
	if err = cfg.ValidateAndSetDefaults(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to validate configuration (%v)\n", err)
		os.Exit(1)
	}

	ln, err := launcher.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create launcher (%v)\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = ln.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "benchmark failed (%v)\n", err)
		var exitErr exec.ExitError
		if errors.As(err, &exitErr) {
			// propagate the training process's exit status
			os.Exit(exitErr.ExitStatus())
		}
		os.Exit(1)
	}
}
