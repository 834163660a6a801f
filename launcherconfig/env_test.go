package launcherconfig

import (
	"os"
	"reflect"
	"testing"
)

func TestUpdateFromEnvs(t *testing.T) {
	cfg := NewDefault()

	os.Setenv("MLPERF_LAUNCHER_MODEL", "bert")
	defer os.Unsetenv("MLPERF_LAUNCHER_MODEL")
	os.Setenv("MLPERF_LAUNCHER_SUBMISSION_PLATFORM", "tinybox_green")
	defer os.Unsetenv("MLPERF_LAUNCHER_SUBMISSION_PLATFORM")
	os.Setenv("MLPERF_LAUNCHER_GPUS", "4")
	defer os.Unsetenv("MLPERF_LAUNCHER_GPUS")
	os.Setenv("MLPERF_LAUNCHER_BATCH_SIZE", "48")
	defer os.Unsetenv("MLPERF_LAUNCHER_BATCH_SIZE")
	os.Setenv("MLPERF_LAUNCHER_DEFAULT_FLOAT", "FP32")
	defer os.Unsetenv("MLPERF_LAUNCHER_DEFAULT_FLOAT")
	os.Setenv("MLPERF_LAUNCHER_IGNORE_JIT_FIRST_BEAM", "true")
	defer os.Unsetenv("MLPERF_LAUNCHER_IGNORE_JIT_FIRST_BEAM")
	os.Setenv("MLPERF_LAUNCHER_SEED", "4242")
	defer os.Unsetenv("MLPERF_LAUNCHER_SEED")
	os.Setenv("MLPERF_LAUNCHER_CONTINUE_ON_INIT_FAILURE", "true")
	defer os.Unsetenv("MLPERF_LAUNCHER_CONTINUE_ON_INIT_FAILURE")
	os.Setenv("MLPERF_LAUNCHER_RUN_TIMEOUT_SECONDS", "14400")
	defer os.Unsetenv("MLPERF_LAUNCHER_RUN_TIMEOUT_SECONDS")
	os.Setenv("MLPERF_LAUNCHER_S3_BUCKET_NAME", "my-bucket")
	defer os.Unsetenv("MLPERF_LAUNCHER_S3_BUCKET_NAME")
	os.Setenv("MLPERF_LAUNCHER_LOG_OUTPUTS", "stderr,launcher.log")
	defer os.Unsetenv("MLPERF_LAUNCHER_LOG_OUTPUTS")
	// read-only fields are never overwritten from envs
	os.Setenv("MLPERF_LAUNCHER_LOG_FILE_PATH", "sneaky.log")
	defer os.Unsetenv("MLPERF_LAUNCHER_LOG_FILE_PATH")

	if err := cfg.UpdateFromEnvs(); err != nil {
		t.Fatal(err)
	}

	if cfg.SubmissionPlatform != "tinybox_green" {
		t.Fatalf("unexpected cfg.SubmissionPlatform %q", cfg.SubmissionPlatform)
	}
	if cfg.GPUs != 4 {
		t.Fatalf("unexpected cfg.GPUs %d", cfg.GPUs)
	}
	if cfg.BatchSize != 48 {
		t.Fatalf("unexpected cfg.BatchSize %d", cfg.BatchSize)
	}
	if cfg.DefaultFloat != "FP32" {
		t.Fatalf("unexpected cfg.DefaultFloat %q", cfg.DefaultFloat)
	}
	if !cfg.IgnoreJITFirstBeam {
		t.Fatal("expected IgnoreJITFirstBeam")
	}
	if cfg.Seed != 4242 {
		t.Fatalf("unexpected cfg.Seed %d", cfg.Seed)
	}
	if !cfg.ContinueOnInitFailure {
		t.Fatal("expected ContinueOnInitFailure")
	}
	if cfg.RunTimeoutSeconds != 14400 {
		t.Fatalf("unexpected cfg.RunTimeoutSeconds %d", cfg.RunTimeoutSeconds)
	}
	if cfg.S3BucketName != "my-bucket" {
		t.Fatalf("unexpected cfg.S3BucketName %q", cfg.S3BucketName)
	}
	if !reflect.DeepEqual(cfg.LogOutputs, []string{"stderr", "launcher.log"}) {
		t.Fatalf("unexpected cfg.LogOutputs %v", cfg.LogOutputs)
	}
	if cfg.LogFilePath != "" {
		t.Fatalf("read-only field overwritten %q", cfg.LogFilePath)
	}
}

func TestUpdateFromEnvsInvalid(t *testing.T) {
	cfg := NewDefault()
	os.Setenv("MLPERF_LAUNCHER_GPUS", "six")
	defer os.Unsetenv("MLPERF_LAUNCHER_GPUS")

	if err := cfg.UpdateFromEnvs(); err == nil {
		t.Fatal("expected parse error")
	}
}
