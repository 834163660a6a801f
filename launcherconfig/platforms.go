package launcherconfig

import (
	"fmt"
	"strings"
	"time"
)

// Preset holds the tuning values for one model/platform combination.
// These replace the per-hardware-variant values previously duplicated
// across submission scripts.
type Preset struct {
	DefaultFloat       string
	SumDType           string
	GPUs               int
	BatchSize          int
	EvalBatchSize      int
	Beam               int
	BeamUOpsMax        int
	BeamUpcastMax      int
	BeamLocalMax       int
	BeamMinProgress    int
	IgnoreJITFirstBeam bool
	BaseDir            string
	BenchmarkSteps     int
	ResetStep          bool
}

// presets is keyed by "<model>/<platform>".
var presets = map[string]Preset{
	"bert/tinybox_red": {
		DefaultFloat:       "HALF",
		SumDType:           "HALF",
		GPUs:               6,
		BatchSize:          96,
		EvalBatchSize:      96,
		Beam:               4,
		BeamUOpsMax:        4000,
		BeamUpcastMax:      256,
		BeamLocalMax:       1024,
		BeamMinProgress:    5,
		IgnoreJITFirstBeam: true,
		BaseDir:            "/raid/datasets/wiki",
		BenchmarkSteps:     10,
	},
	"bert/tinybox_green": {
		DefaultFloat:       "HALF",
		SumDType:           "HALF",
		GPUs:               6,
		BatchSize:          66,
		EvalBatchSize:      66,
		Beam:               4,
		BeamUOpsMax:        4000,
		BeamUpcastMax:      256,
		BeamLocalMax:       1024,
		BeamMinProgress:    5,
		IgnoreJITFirstBeam: true,
		BaseDir:            "/raid/datasets/wiki",
		BenchmarkSteps:     10,
		ResetStep:          true,
	},
}

// LookupPreset returns the tuning preset for a model/platform combination.
func LookupPreset(model string, platform string) (Preset, bool) {
	p, ok := presets[model+"/"+platform]
	return p, ok
}

// Platforms returns the known "<model>/<platform>" preset keys.
func Platforms() []string {
	ks := make([]string, 0, len(presets))
	for k := range presets {
		ks = append(ks, k)
	}
	return ks
}

// applyPreset fills the whole tuning block from the platform preset.
// Called only when no explicit tuning values are present (GPUs == 0).
func (cfg *Config) applyPreset(p Preset) {
	cfg.DefaultFloat = p.DefaultFloat
	cfg.SumDType = p.SumDType
	cfg.GPUs = p.GPUs
	cfg.BatchSize = p.BatchSize
	cfg.EvalBatchSize = p.EvalBatchSize
	cfg.Beam = p.Beam
	cfg.BeamUOpsMax = p.BeamUOpsMax
	cfg.BeamUpcastMax = p.BeamUpcastMax
	cfg.BeamLocalMax = p.BeamLocalMax
	cfg.BeamMinProgress = p.BeamMinProgress
	cfg.IgnoreJITFirstBeam = p.IgnoreJITFirstBeam
	if cfg.BaseDir == "" {
		cfg.BaseDir = p.BaseDir
	}
	if cfg.BenchmarkSteps == 0 {
		cfg.BenchmarkSteps = p.BenchmarkSteps
	}
	cfg.ResetStep = p.ResetStep
}

// PlatformShort returns the short platform tag used in the log file name,
// the last "_"-separated token of the platform tag (e.g. "tinybox_red" -> "red").
func (cfg *Config) PlatformShort() string {
	fields := strings.Split(cfg.SubmissionPlatform, "_")
	return fields[len(fields)-1]
}

// LogFileName derives the benchmark log file name from the run timestamp
// and seed: <model>_<platform-short>_<MMDDHHMM>_<seed>.log.
func (cfg *Config) LogFileName(now time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%d.log", cfg.Model, cfg.PlatformShort(), now.Format("01021504"), cfg.Seed)
}
