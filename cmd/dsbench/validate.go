package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dsbench/internal/dass"
)

var validateCmd = &cobra.Command{
	Use:   "validate scenario.json...",
	Short: "Validate DASS scenario files",
	Long:  `Validate checks scenario files against the DASS format rules and reports every problem found`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	okMark := color.New(color.FgGreen)
	badMark := color.New(color.FgRed)
	if !useColor {
		okMark.DisableColor()
		badMark.DisableColor()
	}

	bad := 0
	for _, path := range args {
		doc, err := dass.DecodeFile(path)
		if err != nil {
			bad++
			badMark.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
			continue
		}
		problems := dass.Validate(doc)
		if len(problems) == 0 {
			okMark.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sources)\n", path, len(doc.BBASources))
			continue
		}
		bad++
		badMark.Fprintf(cmd.OutOrStdout(), "%s: %d problems\n", path, len(problems))
		for _, p := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %v\n", p)
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d files invalid", bad, len(args))
	}
	return nil
}
