package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"dsbench/internal/adapter"
	"dsbench/internal/dass"
	"dsbench/internal/ds"
)

var combineCmd = &cobra.Command{
	Use:   "combine [flags] scenario.json",
	Short: "Combine the sources of a DASS scenario",
	Long:  `Combine fuses every source of a scenario under one rule and prints the resulting mass assignment with its belief intervals`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCombine,
}

func init() {
	combineCmd.Flags().String("rule", "dempster", "combination rule (dempster|disjunctive|yager|dubois_prade|pcr5)")
	combineCmd.Flags().String("adapter", "native", "adapter to combine with")
	combineCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	combineCmd.Flags().Float64("alpha", 1, "classical discount reliability applied to every source first")
}

type combineOutput struct {
	Rule           string             `json:"rule"`
	CombinedBBA    map[string]float64 `json:"combined_bba"`
	Beliefs        map[string]float64 `json:"beliefs"`
	Plausibilities map[string]float64 `json:"plausibilities"`
}

func runCombine(cmd *cobra.Command, args []string) error {
	rule, err := cmd.Flags().GetString("rule")
	if err != nil {
		return fmt.Errorf("failed to get rule flag: %w", err)
	}
	adapterName, err := cmd.Flags().GetString("adapter")
	if err != nil {
		return fmt.Errorf("failed to get adapter flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	alpha, err := cmd.Flags().GetFloat64("alpha")
	if err != nil {
		return fmt.Errorf("failed to get alpha flag: %w", err)
	}

	a, err := adapter.Get(adapterName)
	if err != nil {
		return err
	}
	doc, err := dass.DecodeFile(args[0])
	if err != nil {
		return err
	}
	frame, mfs, err := a.Load(doc)
	if err != nil {
		return err
	}
	if alpha != 1 {
		for i, mf := range mfs {
			mfs[i], err = a.Discount(mf, alpha)
			if err != nil {
				return fmt.Errorf("source %d: %w", i+1, err)
			}
		}
	}
	combined, err := a.Combine(mfs, rule)
	if err != nil {
		return fmt.Errorf("combination failed: %w", err)
	}

	out := combineOutput{
		Rule:           rule,
		CombinedBBA:    make(map[string]float64),
		Beliefs:        make(map[string]float64),
		Plausibilities: make(map[string]float64),
	}
	for _, h := range combined.FocalElements() {
		out.CombinedBBA[h.Format(frame)] = combined.Mass(h)
	}
	for _, label := range frame.Labels() {
		h, _ := frame.Singleton(label)
		key := h.Format(frame)
		out.Beliefs[key] = a.Belief(combined, h)
		out.Plausibilities[key] = a.Plausibility(combined, h)
	}
	omega := frame.Omega()
	out.Beliefs[omega.Format(frame)] = a.Belief(combined, omega)
	out.Plausibilities[omega.Format(frame)] = a.Plausibility(combined, omega)

	switch format {
	case "pretty":
		printCombinePretty(cmd, frame, combined, out)
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printCombinePretty(cmd *cobra.Command, frame *ds.Frame, combined *ds.MassFunction, out combineOutput) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "rule: %s\n", out.Rule)
	fmt.Fprintln(w, "combined mass assignment:")
	for _, h := range combined.FocalElements() {
		fmt.Fprintf(w, "  m(%s) = %.6f\n", h.Format(frame), combined.Mass(h))
	}
	fmt.Fprintln(w, "belief intervals:")
	keys := make([]string, 0, len(out.Beliefs))
	for key := range out.Beliefs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, key := range keys {
		fmt.Fprintf(w, "  %s: [%.6f, %.6f]\n", key, out.Beliefs[key], out.Plausibilities[key])
	}
}
