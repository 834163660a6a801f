package launcherconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"

	"github.com/mlperf-bench/launcher/pkg/fileutil"
	"github.com/mlperf-bench/launcher/pkg/randutil"
)

// ValidateAndSetDefaults returns an error for invalid configurations.
// And updates empty fields with default values.
// At the end, it writes the populated YAML to the launcher config path.
func (cfg *Config) ValidateAndSetDefaults() error {
	if cfg.Model == "" {
		return errors.New("Model is empty")
	}
	if cfg.SubmissionPlatform == "" {
		return errors.New("SubmissionPlatform is empty")
	}

	if cfg.GPUs == 0 {
		p, ok := LookupPreset(cfg.Model, cfg.SubmissionPlatform)
		if !ok {
			return fmt.Errorf("no preset for %q/%q and no explicit tuning values (known %v)", cfg.Model, cfg.SubmissionPlatform, Platforms())
		}
		cfg.applyPreset(p)
	}
	if cfg.GPUs <= 0 {
		return fmt.Errorf("invalid GPUs %d", cfg.GPUs)
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("invalid BatchSize %d", cfg.BatchSize)
	}
	if cfg.EvalBatchSize == 0 {
		cfg.EvalBatchSize = cfg.BatchSize
	}
	if cfg.Beam < 0 || cfg.BeamUOpsMax < 0 || cfg.BeamUpcastMax < 0 || cfg.BeamLocalMax < 0 || cfg.BeamMinProgress < 0 {
		return fmt.Errorf("invalid beam search bounds [%d, %d, %d, %d, %d]", cfg.Beam, cfg.BeamUOpsMax, cfg.BeamUpcastMax, cfg.BeamLocalMax, cfg.BeamMinProgress)
	}

	if cfg.BaseDir == "" {
		return errors.New("BaseDir is empty")
	}

	if cfg.TrainCommand == "" {
		cfg.TrainCommand = DefaultTrainCommand
	}
	args, err := shellquote.Split(cfg.TrainCommand)
	if err != nil {
		return fmt.Errorf("invalid TrainCommand %q (%v)", cfg.TrainCommand, err)
	}
	if len(args) == 0 {
		return fmt.Errorf("invalid TrainCommand %q", cfg.TrainCommand)
	}

	if cfg.Seed == 0 {
		cfg.Seed = randutil.Seed()
	}
	if cfg.Seed < 0 {
		return fmt.Errorf("invalid Seed %d", cfg.Seed)
	}
	if cfg.BenchmarkSteps <= 0 {
		return fmt.Errorf("invalid BenchmarkSteps %d", cfg.BenchmarkSteps)
	}
	if cfg.RunTimeoutSeconds < 0 {
		return fmt.Errorf("invalid RunTimeoutSeconds %d", cfg.RunTimeoutSeconds)
	}

	if cfg.LogDir == "" {
		cfg.LogDir, err = os.Getwd()
		if err != nil {
			return err
		}
	}
	if err = fileutil.IsDirWriteable(cfg.LogDir); err != nil {
		return fmt.Errorf("log dir %q is not writeable (%v)", cfg.LogDir, err)
	}

	if cfg.S3BucketName != "" && cfg.Region == "" {
		return errors.New("S3BucketName is set but Region is empty")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if len(cfg.LogOutputs) == 0 {
		cfg.LogOutputs = []string{"stderr"}
	}

	if cfg.ConfigPath == "" {
		f, err := os.CreateTemp(os.TempDir(), "mlperf-launcher")
		if err != nil {
			return err
		}
		cfg.ConfigPath, _ = filepath.Abs(f.Name())
		f.Close()
		os.RemoveAll(cfg.ConfigPath)
	}

	return cfg.Sync()
}
