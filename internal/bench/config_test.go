package bench_test

import (
	"os"
	"path/filepath"
	"testing"

	"dsbench/internal/artifact"
	"dsbench/internal/bench"
)

func openTestCache() (*artifact.Cache, error) {
	return artifact.OpenCache("dsbench-test")
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, bench.ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
adapter = "native"
iterations = 10
jobs = 4
alphas = [0.9, 0.8]
output_dir = "results"

[[scenarios]]
name = "small"
path = "scenarios/small.json"

[[scenarios]]
path = "scenarios/medium.json"
`)
	cfg, err := bench.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Adapter != "native" || cfg.Iterations != 10 {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.OutputDir != filepath.Join(dir, "results") {
		t.Errorf("output dir = %s", cfg.OutputDir)
	}
	if got := cfg.Scenarios[0].Path; got != filepath.Join(dir, "scenarios", "small.json") {
		t.Errorf("scenario path = %s", got)
	}
	// A missing name falls back to the file stem.
	if got := cfg.Scenarios[1].Name; got != "medium" {
		t.Errorf("derived name = %s", got)
	}

	opts, err := cfg.RunOptions()
	if err != nil {
		t.Fatalf("RunOptions: %v", err)
	}
	if opts.Iterations != 10 || opts.Jobs != 4 || len(opts.Alphas) != 2 {
		t.Errorf("options = %+v", opts)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[[scenarios]]
path = "a.json"
`)
	cfg, err := bench.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Adapter != "native" || cfg.Iterations != 1 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
adapter = "native"
iterationz = 3
`)
	if _, err := bench.LoadConfig(path); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `adapter = "native"`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := bench.FindConfig(nested)
	if err != nil || !ok {
		t.Fatalf("FindConfig = %v, %v", ok, err)
	}
	if path != filepath.Join(root, bench.ConfigFileName) {
		t.Errorf("found %s", path)
	}
}

func TestFindConfigMiss(t *testing.T) {
	_, ok, err := bench.FindConfig(t.TempDir())
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if ok {
		t.Error("found a config in an empty tree")
	}
}
