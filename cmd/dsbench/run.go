package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dsbench/internal/artifact"
	"dsbench/internal/bench"
	"dsbench/internal/dass"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [scenario.json...]",
	Short: "Run the benchmark over DASS scenarios",
	Long: `Run executes the four benchmark stages over every scenario:
per-source belief intervals, Dempster fusion, discounted Dempster
fusion, and Yager fusion. Scenarios come from the arguments or from
the [[scenarios]] section of dsbench.toml.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("config", "", "suite config path (default: discover dsbench.toml upward)")
	runCmd.Flags().String("adapter", "", "adapter to benchmark (default from config, else native)")
	runCmd.Flags().Int("iterations", 0, "iterations per scenario (default from config, else 1)")
	runCmd.Flags().Int("jobs", 0, "scenarios to run in parallel (default GOMAXPROCS)")
	runCmd.Flags().Float64Slice("alphas", nil, "per-source discount reliabilities for step 3")
	runCmd.Flags().String("out", "", "directory for run artifacts (default from config, else ./results)")
	runCmd.Flags().Bool("no-cache", false, "recompute results even when cached")
	runCmd.Flags().Bool("no-ui", false, "disable the interactive progress display")
}

func runRun(cmd *cobra.Command, args []string) error {
	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := resolveRunConfig(cmd, args)
	if err != nil {
		return err
	}
	opts, err := cfg.RunOptions()
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg, &opts); err != nil {
		return err
	}

	scenarios, err := loadScenarios(cfg.Scenarios)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios: pass scenario files or add [[scenarios]] to %s", bench.ConfigFileName)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if !noCache {
		cache, err := artifact.OpenCache("dsbench")
		if err != nil {
			fmt.Fprintf(os.Stderr, "cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	noUI, err := cmd.Flags().GetBool("no-ui")
	if err != nil {
		return fmt.Errorf("failed to get no-ui flag: %w", err)
	}
	useUI := !noUI && !quiet && isTerminal(os.Stdout)

	var result *bench.SuiteResult
	if useUI {
		result, err = runSuiteWithUI(cmd.Context(), "dsbench "+opts.Adapter, scenarios, opts)
	} else {
		result, err = runSuitePlain(cmd.Context(), scenarios, opts, quiet)
	}
	if err != nil {
		return err
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "results"
	}
	runDir, err := artifact.NewRunDir(outDir)
	if err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}
	if err := artifact.WriteJSON(filepath.Join(runDir, "results.json"), result); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	failed := 0
	for _, sc := range result.Scenarios {
		if sc.Error != "" {
			failed++
			fmt.Fprintf(os.Stderr, "scenario %s failed: %s\n", sc.Scenario, sc.Error)
		}
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d scenarios, %d failed)\n",
			filepath.Join(runDir, "results.json"), len(result.Scenarios), failed)
	}

	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	if showTimings {
		printSuiteTimings(cmd.OutOrStdout(), result)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(result.Scenarios))
	}
	return nil
}

// resolveRunConfig loads dsbench.toml when available. Positional
// scenario files override the configured scenario list.
func resolveRunConfig(cmd *cobra.Command, args []string) (*bench.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		path, ok, err := bench.FindConfig(".")
		if err != nil {
			return nil, err
		}
		if ok {
			configPath = path
		}
	}

	var cfg *bench.Config
	if configPath != "" {
		cfg, err = bench.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = &bench.Config{Adapter: "native", Iterations: 1}
	}

	if len(args) > 0 {
		cfg.Scenarios = cfg.Scenarios[:0]
		for _, arg := range args {
			name := filepath.Base(arg)
			name = name[:len(name)-len(filepath.Ext(name))]
			cfg.Scenarios = append(cfg.Scenarios, bench.ScenarioConfig{Name: name, Path: arg})
		}
	}
	return cfg, nil
}

// applyRunFlags lets command-line flags win over config values.
func applyRunFlags(cmd *cobra.Command, cfg *bench.Config, opts *bench.Options) error {
	if adapterName, err := cmd.Flags().GetString("adapter"); err != nil {
		return err
	} else if adapterName != "" {
		opts.Adapter = adapterName
	}
	if opts.Adapter == "" {
		opts.Adapter = "native"
	}
	if iterations, err := cmd.Flags().GetInt("iterations"); err != nil {
		return err
	} else if iterations > 0 {
		opts.Iterations = iterations
	}
	if jobs, err := cmd.Flags().GetInt("jobs"); err != nil {
		return err
	} else if jobs > 0 {
		opts.Jobs = jobs
	}
	if alphas, err := cmd.Flags().GetFloat64Slice("alphas"); err != nil {
		return err
	} else if len(alphas) > 0 {
		opts.Alphas = alphas
	}
	if out, err := cmd.Flags().GetString("out"); err != nil {
		return err
	} else if out != "" {
		cfg.OutputDir = out
	}
	return nil
}

// loadScenarios reads every configured scenario document from disk.
func loadScenarios(configs []bench.ScenarioConfig) ([]bench.Scenario, error) {
	scenarios := make([]bench.Scenario, 0, len(configs))
	for _, sc := range configs {
		doc, err := dass.DecodeFile(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		scenarios = append(scenarios, bench.Scenario{Name: sc.Name, Path: sc.Path, Doc: doc})
	}
	return scenarios, nil
}
