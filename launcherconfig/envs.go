package launcherconfig

import "fmt"

// Environment variables recognized by the training entry point.
const (
	EnvModel              = "MODEL"
	EnvSubmissionPlatform = "SUBMISSION_PLATFORM"
	EnvDefaultFloat       = "DEFAULT_FLOAT"
	EnvSumDType           = "SUM_DTYPE"
	EnvGPUs               = "GPUS"
	EnvBatchSize          = "BS"
	EnvEvalBatchSize      = "EVAL_BS"
	EnvBeam               = "BEAM"
	EnvBeamUOpsMax        = "BEAM_UOPS_MAX"
	EnvBeamUpcastMax      = "BEAM_UPCAST_MAX"
	EnvBeamLocalMax       = "BEAM_LOCAL_MAX"
	EnvBeamMinProgress    = "BEAM_MIN_PROGRESS"
	EnvIgnoreJITFirstBeam = "IGNORE_JIT_FIRST_BEAM"
	EnvBaseDir            = "BASEDIR"
	EnvLogMLPerf          = "LOGMLPERF"
	EnvSeed               = "SEED"
	EnvParallel           = "PARALLEL"

	// init pass only
	EnvInitMLPerf = "INITMLPERF"
	EnvBenchmark  = "BENCHMARK"
	EnvResetStep  = "RESET_STEP"

	// run pass only
	EnvRunMLPerf = "RUNMLPERF"
)

// Envs serializes the configuration into the child process environment for
// the given pass, as "KEY=VALUE" entries. The launcher never mutates its own
// process environment; the returned entries are attached to the child only.
//
// All shared variables are identical across both passes. The passes differ
// only in the init/run markers and the init-only warm-up variables.
func (cfg *Config) Envs(pass Pass) []string {
	envs := []string{
		EnvModel + "=" + cfg.Model,
		EnvSubmissionPlatform + "=" + cfg.SubmissionPlatform,
		EnvDefaultFloat + "=" + cfg.DefaultFloat,
		EnvSumDType + "=" + cfg.SumDType,
		fmt.Sprintf("%s=%d", EnvGPUs, cfg.GPUs),
		fmt.Sprintf("%s=%d", EnvBatchSize, cfg.BatchSize),
		fmt.Sprintf("%s=%d", EnvEvalBatchSize, cfg.EvalBatchSize),
		fmt.Sprintf("%s=%d", EnvBeam, cfg.Beam),
		fmt.Sprintf("%s=%d", EnvBeamUOpsMax, cfg.BeamUOpsMax),
		fmt.Sprintf("%s=%d", EnvBeamUpcastMax, cfg.BeamUpcastMax),
		fmt.Sprintf("%s=%d", EnvBeamLocalMax, cfg.BeamLocalMax),
		fmt.Sprintf("%s=%d", EnvBeamMinProgress, cfg.BeamMinProgress),
		EnvIgnoreJITFirstBeam + "=" + bool01(cfg.IgnoreJITFirstBeam),
		EnvBaseDir + "=" + cfg.BaseDir,
		EnvLogMLPerf + "=" + bool01(cfg.LogMLPerf),
		fmt.Sprintf("%s=%d", EnvSeed, cfg.Seed),
		fmt.Sprintf("%s=%d", EnvParallel, cfg.Parallel),
	}

	switch pass {
	case PassInit:
		envs = append(envs,
			EnvInitMLPerf+"=1",
			fmt.Sprintf("%s=%d", EnvBenchmark, cfg.BenchmarkSteps),
		)
		if cfg.ResetStep {
			envs = append(envs, EnvResetStep+"=1")
		}
	case PassRun:
		envs = append(envs, EnvRunMLPerf+"=1")
	}
	return envs
}

func bool01(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
