// Package launcherconfig defines MLPerf benchmark launcher configuration.
package launcherconfig

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/colorstring"
	"sigs.k8s.io/yaml"

	"github.com/mlperf-bench/launcher/pkg/timeutil"
)

// EnvPrefix is the environment variable prefix used to override
// launcher configuration fields.
const EnvPrefix = "MLPERF_LAUNCHER_"

// Pass identifies one of the two sequential training invocations.
type Pass string

const (
	// PassInit is the warm-up/compilation invocation that primes cached
	// compiled kernels before the timed run.
	PassInit Pass = "init"
	// PassRun is the timed invocation whose wall-clock duration is the
	// benchmark result.
	PassRun Pass = "run"
)

// Config defines launcher configuration for one benchmark submission run.
type Config struct {
	// Model selects the model family to train (e.g. "bert").
	Model string `json:"model"`
	// SubmissionPlatform tags the hardware platform for result reporting
	// (e.g. "tinybox_red"). Together with Model it keys the tuning preset table.
	SubmissionPlatform string `json:"submission-platform"`

	// TrainCommand is the training entry point, invoked once per pass with
	// no positional arguments and configured entirely through the child
	// process environment.
	TrainCommand string `json:"train-command"`

	// DefaultFloat selects the numeric precision mode (e.g. "HALF").
	DefaultFloat string `json:"default-float"`
	// SumDType selects the accumulation dtype.
	SumDType string `json:"sum-dtype"`
	// GPUs is the device count to use. Zero means "fill from the
	// platform preset"; the whole tuning block is then preset-derived.
	GPUs int `json:"gpus"`
	// BatchSize is the training batch size.
	BatchSize int `json:"batch-size"`
	// EvalBatchSize is the evaluation batch size. Defaults to BatchSize.
	EvalBatchSize int `json:"eval-batch-size"`

	// Beam bounds the compiler auto-tuning beam search width.
	Beam int `json:"beam"`
	// BeamUOpsMax bounds the uop count considered by the beam search.
	BeamUOpsMax int `json:"beam-uops-max"`
	// BeamUpcastMax bounds upcasting during the beam search.
	BeamUpcastMax int `json:"beam-upcast-max"`
	// BeamLocalMax bounds local dimensions during the beam search.
	BeamLocalMax int `json:"beam-local-max"`
	// BeamMinProgress is the minimum search progress before cutoff.
	BeamMinProgress int `json:"beam-min-progress"`
	// IgnoreJITFirstBeam skips tuning on the first compiled kernel.
	IgnoreJITFirstBeam bool `json:"ignore-jit-first-beam"`

	// BaseDir is the dataset root path.
	BaseDir string `json:"base-dir"`
	// LogMLPerf enables MLPerf-format result logging in the child.
	LogMLPerf bool `json:"log-mlperf"`
	// Seed is the random seed for reproducibility.
	// Zero means "generate one at validation time".
	Seed int64 `json:"seed"`
	// Parallel is the data-loading parallelism, zero to disable.
	Parallel int `json:"parallel"`
	// BenchmarkSteps is the number of warm-up steps for the init pass.
	BenchmarkSteps int `json:"benchmark-steps"`
	// ResetStep forces a step counter reset during the init pass.
	// Only some platform variants need this.
	ResetStep bool `json:"reset-step"`

	// ContinueOnInitFailure continues to the timed run pass even when the
	// init pass exits non-zero. Default false: abort and propagate the
	// child's exit status.
	ContinueOnInitFailure bool `json:"continue-on-init-failure"`
	// RunTimeoutSeconds bounds the timed run pass. Zero disables the bound.
	RunTimeoutSeconds int64 `json:"run-timeout-seconds"`

	// LogDir is the directory the benchmark log file is written to.
	// Empty means the current working directory.
	LogDir string `json:"log-dir"`
	// LogFilePath is the derived benchmark log file path, stable across
	// both passes of one launcher run.
	LogFilePath string `json:"log-file-path,omitempty" read-only:"true"`
	// ResultsCSVPath is the derived results CSV path.
	ResultsCSVPath string `json:"results-csv-path,omitempty" read-only:"true"`

	// S3BucketName is not empty to upload the benchmark log and results
	// CSV after the run.
	S3BucketName string `json:"s3-bucket-name"`
	// S3Dir is the S3 key prefix for uploaded artifacts.
	S3Dir string `json:"s3-dir"`
	// Region is the AWS region for artifact upload.
	Region string `json:"region"`

	// LogColor is true to output launcher banners in color.
	LogColor bool `json:"log-color"`
	// LogLevel configures log level. Only supports debug, info, warn, error,
	// panic, or fatal. Default 'info'.
	LogLevel string `json:"log-level"`
	// LogOutputs is a list of launcher log outputs. Valid values are
	// 'stderr', 'stdout', or file names ending in ".log".
	LogOutputs []string `json:"log-outputs,omitempty"`

	// ConfigPath is the configuration file path.
	// The launcher updates this file with run state.
	ConfigPath string `json:"config-path,omitempty"`
	// UpdatedAt is the timestamp of the last Sync.
	UpdatedAt time.Time `json:"updated-at,omitempty" read-only:"true"`

	// TimeFrameInit records the init pass time frame.
	TimeFrameInit timeutil.TimeFrame `json:"time-frame-init,omitempty" read-only:"true"`
	// TimeFrameRun records the timed run pass time frame.
	TimeFrameRun timeutil.TimeFrame `json:"time-frame-run,omitempty" read-only:"true"`
}

// DefaultTrainCommand is the default training entry point.
const DefaultTrainCommand = "python3 model_train.py"

// defaultConfig is the default configuration.
var defaultConfig = Config{
	Model:              "bert",
	SubmissionPlatform: "tinybox_red",
	TrainCommand:       DefaultTrainCommand,

	LogMLPerf: true,

	Region: "us-west-2",

	LogColor:   true,
	LogLevel:   "info",
	LogOutputs: []string{"stderr"},
}

// NewDefault returns a copy of the default configuration.
func NewDefault() *Config {
	vv := defaultConfig
	return &vv
}

// Load loads configuration from YAML.
//
// Do not set default values in this function.
// "ValidateAndSetDefaults" must be called separately,
// to prevent overwriting previous data when loaded from disks.
func Load(p string) (cfg *Config, err error) {
	var d []byte
	d, err = os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	cfg = new(Config)
	if err = yaml.Unmarshal(d, cfg); err != nil {
		return nil, err
	}

	cfg.ConfigPath, err = filepath.Abs(p)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sync persists current configuration and run state to disk.
func (cfg *Config) Sync() (err error) {
	if !filepath.IsAbs(cfg.ConfigPath) {
		cfg.ConfigPath, err = filepath.Abs(cfg.ConfigPath)
		if err != nil {
			return err
		}
	}

	cfg.UpdatedAt = time.Now().UTC()
	var d []byte
	d, err = yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.ConfigPath, d, 0600)
}

// Colorize returns the input with colorstring markup applied,
// or stripped when LogColor is disabled.
func (cfg *Config) Colorize(input string) string {
	colorize := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !cfg.LogColor,
		Reset:   true,
	}
	return colorize.Color(input)
}
