// Package launcher runs an MLPerf training benchmark submission:
// a warm-up/compilation init pass followed by the timed run pass,
// both captured into one timestamped log file.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
	"k8s.io/utils/exec"

	"github.com/mlperf-bench/launcher/launcherconfig"
	"github.com/mlperf-bench/launcher/pkg/logutil"
	"github.com/mlperf-bench/launcher/pkg/timeutil"
)

// Launcher runs the two benchmark passes for one submission.
type Launcher struct {
	cfg *launcherconfig.Config

	lg        *zap.Logger
	logWriter io.Writer
	ex        exec.Interface
	now       func() time.Time

	s3Uploader uploader
}

// New creates a launcher from a validated configuration.
func New(cfg *launcherconfig.Config) (*Launcher, error) {
	lg, logWriter, _, err := logutil.NewWithStderrWriter(cfg.LogLevel, cfg.LogOutputs)
	if err != nil {
		return nil, err
	}
	return &Launcher{
		cfg:       cfg,
		lg:        lg,
		logWriter: logWriter,
		ex:        exec.New(),
		now:       time.Now,
	}, nil
}

// Run performs the init pass and then the timed run pass, strictly in
// sequence. The benchmark log file is truncate-created by the init pass and
// appended to by the run pass. The returned error carries the child's exit
// status when a pass fails.
func (ln *Launcher) Run(ctx context.Context) error {
	args, err := shellquote.Split(ln.cfg.TrainCommand)
	if err != nil {
		return fmt.Errorf("invalid train command %q (%v)", ln.cfg.TrainCommand, err)
	}
	if _, err = ln.ex.LookPath(args[0]); err != nil {
		return fmt.Errorf("%q not found (%v)", args[0], err)
	}

	// a synced LogFilePath is output state from the previous run, never an
	// input; each run gets its own log name
	ln.cfg.LogFilePath = filepath.Join(ln.cfg.LogDir, ln.cfg.LogFileName(ln.now()))
	ln.cfg.ResultsCSVPath = ln.cfg.LogFilePath + ".csv"
	ln.cfg.Sync()

	fmt.Fprint(ln.logWriter, ln.cfg.Colorize("\n\n[yellow]*********************************\n"))
	fmt.Fprint(ln.logWriter, ln.cfg.Colorize(fmt.Sprintf("[light_green]%s on %s [default](seed %d, log %q)\n", ln.cfg.Model, ln.cfg.SubmissionPlatform, ln.cfg.Seed, ln.cfg.LogFilePath)))

	initStart := time.Now()
	initErr := ln.runPass(ctx, args, launcherconfig.PassInit, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
	ln.cfg.TimeFrameInit = timeutil.NewTimeFrame(initStart, time.Now())
	ln.cfg.Sync()
	if initErr != nil {
		if !ln.cfg.ContinueOnInitFailure {
			fmt.Fprint(ln.logWriter, ln.cfg.Colorize("[light_magenta]init pass FAIL\n"))
			return fmt.Errorf("init pass failed: %w", initErr)
		}
		ln.lg.Warn("init pass failed; continuing to the timed run pass",
			zap.Error(initErr),
		)
	}

	runCtx := ctx
	if ln.cfg.RunTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(ln.cfg.RunTimeoutSeconds)*time.Second)
		defer cancel()
	}

	runStart := time.Now()
	runErr := ln.runPass(runCtx, args, launcherconfig.PassRun, os.O_WRONLY|os.O_APPEND)
	ln.cfg.TimeFrameRun = timeutil.NewTimeFrame(runStart, time.Now())
	ln.cfg.Sync()

	ln.reportResults(ctx)

	if runErr != nil {
		fmt.Fprint(ln.logWriter, ln.cfg.Colorize("[light_magenta]run pass FAIL\n"))
		return fmt.Errorf("run pass failed: %w", runErr)
	}
	fmt.Fprint(ln.logWriter, ln.cfg.Colorize("[light_green]run pass SUCCESS\n"))
	return nil
}

// runPass runs the training entry point once for the given pass, with the
// pass environment appended to the launcher's own, teeing combined output
// to the launcher log writer and the benchmark log file.
func (ln *Launcher) runPass(ctx context.Context, args []string, pass launcherconfig.Pass, logFileFlag int) error {
	logFile, err := os.OpenFile(ln.cfg.LogFilePath, logFileFlag, 0644)
	if err != nil {
		return fmt.Errorf("open(%q): %v", ln.cfg.LogFilePath, err)
	}
	defer logFile.Close()

	cmd := ln.ex.CommandContext(ctx, args[0], args[1:]...)
	cmd.SetEnv(append(os.Environ(), ln.cfg.Envs(pass)...))
	wr := io.MultiWriter(ln.logWriter, logFile)
	cmd.SetStdout(wr)
	cmd.SetStderr(wr)

	ln.lg.Info("starting pass",
		zap.String("pass", string(pass)),
		zap.String("command", ln.cfg.TrainCommand),
		zap.Int("gpus", ln.cfg.GPUs),
		zap.Int("batch-size", ln.cfg.BatchSize),
		zap.Int64("seed", ln.cfg.Seed),
	)
	start := time.Now()
	err = cmd.Run()
	ln.lg.Info("pass finished",
		zap.String("pass", string(pass)),
		zap.String("started", humanize.RelTime(start, time.Now(), "ago", "from now")),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)
	return err
}

// reportResults parses MLPerf result lines out of the benchmark log,
// writes the results CSV, and uploads artifacts when configured.
// Best-effort: the timed pass outcome is not affected.
func (ln *Launcher) reportResults(ctx context.Context) {
	rs, err := ParseFile(ln.cfg.LogFilePath)
	if err != nil {
		ln.lg.Warn("failed to parse benchmark log", zap.Error(err))
		return
	}
	ln.lg.Info("benchmark results",
		zap.String("benchmark", rs.Benchmark),
		zap.String("status", rs.Status),
		zap.Duration("wall-clock", rs.WallClock),
		zap.Float64("eval-accuracy", rs.EvalAccuracy),
	)

	if ln.cfg.ResultsCSVPath != "" {
		if err = ToCSV(ln.cfg.ResultsCSVPath, rs); err != nil {
			ln.lg.Warn("failed to write results CSV", zap.Error(err))
		}
	}

	if ln.cfg.S3BucketName != "" {
		if err = ln.uploadArtifacts(ctx); err != nil {
			ln.lg.Warn("failed to upload artifacts", zap.Error(err))
		}
	}
}
