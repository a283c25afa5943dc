package bench

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
)

// ConfigFileName is the suite configuration looked up from the working
// directory upward.
const ConfigFileName = "dsbench.toml"

// Config is the decoded dsbench.toml suite configuration.
type Config struct {
	Adapter    string           `toml:"adapter"`
	Iterations int64            `toml:"iterations"`
	Jobs       int64            `toml:"jobs"`
	Alphas     []float64        `toml:"alphas"`
	OutputDir  string           `toml:"output_dir"`
	Scenarios  []ScenarioConfig `toml:"scenarios"`
}

// ScenarioConfig names one scenario file in the suite. Relative paths
// resolve against the config file's directory.
type ScenarioConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// FindConfig walks up from startDir to locate dsbench.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig decodes a suite config, fills defaults, and resolves
// scenario paths relative to the config location.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown keys: %v", path, undecoded)
	}
	if cfg.Adapter == "" {
		cfg.Adapter = "native"
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1
	}
	base := filepath.Dir(path)
	for i := range cfg.Scenarios {
		sc := &cfg.Scenarios[i]
		if sc.Path == "" {
			return nil, fmt.Errorf("%s: scenario %d has no path", path, i)
		}
		if !filepath.IsAbs(sc.Path) {
			sc.Path = filepath.Join(base, sc.Path)
		}
		if sc.Name == "" {
			name := filepath.Base(sc.Path)
			sc.Name = name[:len(name)-len(filepath.Ext(name))]
		}
	}
	if cfg.OutputDir != "" && !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(base, cfg.OutputDir)
	}
	return &cfg, nil
}

// RunOptions converts the config into runner options, bounds-checking
// the integer fields.
func (c *Config) RunOptions() (Options, error) {
	iterations, err := safecast.Conv[int](c.Iterations)
	if err != nil {
		return Options{}, fmt.Errorf("iterations out of range: %w", err)
	}
	jobs, err := safecast.Conv[int](c.Jobs)
	if err != nil {
		return Options{}, fmt.Errorf("jobs out of range: %w", err)
	}
	return Options{
		Adapter:    c.Adapter,
		Iterations: iterations,
		Jobs:       jobs,
		Alphas:     append([]float64(nil), c.Alphas...),
	}, nil
}
