package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dsbench/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dsbench",
	Short: "Dempster-Shafer evidence combination benchmark",
	Long:  `dsbench runs belief-function workloads over DASS scenarios and reports results and timings`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// The cobra --version flag prints into pipes as often as
	// terminals, so it gets the uncolored form.
	rootCmd.Version = version.Plain

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(combineCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to the given path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
