package launcherconfig

import (
	"os"
	"regexp"
	"testing"
	"time"
)

func TestValidateDefaults(t *testing.T) {
	cfg := NewDefault()
	defer func() { os.RemoveAll(cfg.ConfigPath) }()

	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	if cfg.GPUs != 6 {
		t.Fatalf("unexpected cfg.GPUs %d", cfg.GPUs)
	}
	if cfg.BatchSize != 96 {
		t.Fatalf("unexpected cfg.BatchSize %d", cfg.BatchSize)
	}
	if cfg.EvalBatchSize != 96 {
		t.Fatalf("unexpected cfg.EvalBatchSize %d", cfg.EvalBatchSize)
	}
	if cfg.DefaultFloat != "HALF" {
		t.Fatalf("unexpected cfg.DefaultFloat %q", cfg.DefaultFloat)
	}
	if cfg.Beam != 4 || cfg.BeamUOpsMax != 4000 || cfg.BeamUpcastMax != 256 || cfg.BeamLocalMax != 1024 || cfg.BeamMinProgress != 5 {
		t.Fatalf("unexpected beam bounds [%d, %d, %d, %d, %d]", cfg.Beam, cfg.BeamUOpsMax, cfg.BeamUpcastMax, cfg.BeamLocalMax, cfg.BeamMinProgress)
	}
	if !cfg.IgnoreJITFirstBeam {
		t.Fatal("expected IgnoreJITFirstBeam")
	}
	if cfg.ResetStep {
		t.Fatal("unexpected ResetStep for tinybox_red")
	}
	if cfg.Seed == 0 {
		t.Fatal("expected generated seed")
	}
	if cfg.ContinueOnInitFailure {
		t.Fatal("ContinueOnInitFailure expected to default to false")
	}
}

func TestValidateGreenPreset(t *testing.T) {
	cfg := NewDefault()
	cfg.SubmissionPlatform = "tinybox_green"
	defer func() { os.RemoveAll(cfg.ConfigPath) }()

	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if cfg.BatchSize != 66 {
		t.Fatalf("unexpected cfg.BatchSize %d", cfg.BatchSize)
	}
	if !cfg.ResetStep {
		t.Fatal("expected ResetStep for tinybox_green")
	}
}

func TestValidateUnknownPlatform(t *testing.T) {
	cfg := NewDefault()
	cfg.SubmissionPlatform = "unknown_box"
	if err := cfg.ValidateAndSetDefaults(); err == nil {
		t.Fatal("expected preset lookup error")
	}

	// explicit tuning values do not need a preset
	cfg = NewDefault()
	cfg.SubmissionPlatform = "unknown_box"
	cfg.GPUs = 2
	cfg.BatchSize = 32
	cfg.BaseDir = os.TempDir()
	cfg.BenchmarkSteps = 5
	defer func() { os.RemoveAll(cfg.ConfigPath) }()
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if cfg.EvalBatchSize != 32 {
		t.Fatalf("unexpected cfg.EvalBatchSize %d", cfg.EvalBatchSize)
	}
}

func TestLogFileName(t *testing.T) {
	cfg := NewDefault()
	cfg.Seed = 12345
	now := time.Date(2026, 8, 31, 14, 7, 9, 0, time.UTC)

	name := cfg.LogFileName(now)
	if name != "bert_red_08311407_12345.log" {
		t.Fatalf("unexpected log file name %q", name)
	}

	re := regexp.MustCompile(`^[a-z0-9]+_[a-z0-9]+_\d{8}_\d+\.log$`)
	if !re.MatchString(name) {
		t.Fatalf("log file name %q does not match pattern", name)
	}

	// distinct seeds produce distinct names
	cfg2 := NewDefault()
	cfg2.Seed = 54321
	if cfg2.LogFileName(now) == name {
		t.Fatal("expected distinct log file names for distinct seeds")
	}
}

func TestSyncLoadRoundTrip(t *testing.T) {
	cfg := NewDefault()
	cfg.Seed = 777
	defer func() { os.RemoveAll(cfg.ConfigPath) }()
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(cfg.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Seed != 777 {
		t.Fatalf("unexpected loaded.Seed %d", loaded.Seed)
	}
	if loaded.BatchSize != cfg.BatchSize {
		t.Fatalf("unexpected loaded.BatchSize %d", loaded.BatchSize)
	}
	if loaded.ConfigPath != cfg.ConfigPath {
		t.Fatalf("unexpected loaded.ConfigPath %q", loaded.ConfigPath)
	}
}
