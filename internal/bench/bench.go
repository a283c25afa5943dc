// Package bench runs the four-stage evidence-combination benchmark
// over DASS scenarios: per-source belief intervals, Dempster fusion,
// discounted Dempster fusion, and Yager fusion, each stage timed
// per iteration.
package bench

import (
	"fmt"

	"dsbench/internal/adapter"
	"dsbench/internal/dass"
	"dsbench/internal/ds"
	"dsbench/internal/observ"
)

// Stage names, also used as timer phase names in reports.
const (
	StageOriginal         = "step1_original"
	StageDempster         = "step2_dempster"
	StageDiscountDempster = "step3_discount_dempster"
	StageYager            = "step4_yager"
)

// defaultAlpha pads the reliability vector when it is shorter than the
// source list.
const defaultAlpha = 0.1

// SourceIntervals holds Bel/Pl for one source over the singletons and
// the whole frame, keyed by "{A}" style subset strings.
type SourceIntervals struct {
	SourceID       string             `json:"source_id"`
	Beliefs        map[string]float64 `json:"beliefs"`
	Plausibilities map[string]float64 `json:"plausibilities"`
}

// StepResult is the outcome of one benchmark stage. A failed stage
// carries its error text and empty outputs; later stages still run.
type StepResult struct {
	Name           string               `json:"name"`
	Sources        []SourceIntervals    `json:"sources,omitempty"`
	CombinedBBA    map[string]float64   `json:"combined_bba,omitempty"`
	DiscountedBBAs []map[string]float64 `json:"discounted_bbas,omitempty"`
	Beliefs        map[string]float64   `json:"beliefs,omitempty"`
	Plausibilities map[string]float64   `json:"plausibilities,omitempty"`
	Error          string               `json:"error,omitempty"`
}

// IterationResult bundles the four stage outputs with their timings.
type IterationResult struct {
	Steps  []StepResult  `json:"steps"`
	Timing observ.Report `json:"timing"`
}

// RunIteration executes all four stages once against a loaded
// scenario. Stage failures (total conflict, bad reliability) are
// recorded in the stage result rather than aborting the iteration.
func RunIteration(a adapter.Adapter, frame *ds.Frame, mfs []*ds.MassFunction, alphas []float64) IterationResult {
	timer := observ.NewTimer()
	out := IterationResult{Steps: make([]StepResult, 0, 4)}

	idx := timer.Begin(StageOriginal)
	out.Steps = append(out.Steps, stepOriginal(a, frame, mfs))
	timer.End(idx, fmt.Sprintf("%d sources", len(mfs)))

	idx = timer.Begin(StageDempster)
	out.Steps = append(out.Steps, stepCombine(StageDempster, a, frame, mfs, "dempster"))
	timer.End(idx, "")

	idx = timer.Begin(StageDiscountDempster)
	out.Steps = append(out.Steps, stepDiscountDempster(a, frame, mfs, alphas))
	timer.End(idx, "")

	idx = timer.Begin(StageYager)
	out.Steps = append(out.Steps, stepCombine(StageYager, a, frame, mfs, "yager"))
	timer.End(idx, "")

	out.Timing = timer.Report()
	return out
}

// stepOriginal evaluates Bel and Pl on every source before any fusion.
func stepOriginal(a adapter.Adapter, frame *ds.Frame, mfs []*ds.MassFunction) StepResult {
	res := StepResult{Name: StageOriginal}
	for i, mf := range mfs {
		src := SourceIntervals{SourceID: fmt.Sprintf("source_%d", i+1)}
		src.Beliefs, src.Plausibilities = intervals(a, frame, mf)
		res.Sources = append(res.Sources, src)
	}
	return res
}

// stepCombine fuses all sources under the named rule and evaluates the
// belief intervals of the result.
func stepCombine(name string, a adapter.Adapter, frame *ds.Frame, mfs []*ds.MassFunction, rule string) StepResult {
	res := StepResult{Name: name}
	combined, err := a.Combine(mfs, rule)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.CombinedBBA = bbaMap(frame, combined)
	res.Beliefs, res.Plausibilities = intervals(a, frame, combined)
	return res
}

// stepDiscountDempster discounts every source with its reliability,
// then fuses the results under Dempster's rule.
func stepDiscountDempster(a adapter.Adapter, frame *ds.Frame, mfs []*ds.MassFunction, alphas []float64) StepResult {
	res := StepResult{Name: StageDiscountDempster}
	discounted := make([]*ds.MassFunction, len(mfs))
	for i, mf := range mfs {
		alpha := defaultAlpha
		if i < len(alphas) {
			alpha = alphas[i]
		}
		d, err := a.Discount(mf, alpha)
		if err != nil {
			res.Error = fmt.Sprintf("source %d: %s", i+1, err)
			return res
		}
		discounted[i] = d
		res.DiscountedBBAs = append(res.DiscountedBBAs, bbaMap(frame, d))
	}
	combined, err := a.Combine(discounted, "dempster")
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.CombinedBBA = bbaMap(frame, combined)
	res.Beliefs, res.Plausibilities = intervals(a, frame, combined)
	return res
}

// intervals evaluates Bel and Pl for every singleton and for the whole
// frame, keyed in subset syntax.
func intervals(a adapter.Adapter, frame *ds.Frame, mf *ds.MassFunction) (bel, pl map[string]float64) {
	labels := frame.Labels()
	bel = make(map[string]float64, len(labels)+1)
	pl = make(map[string]float64, len(labels)+1)
	for _, label := range labels {
		h, _ := frame.Singleton(label)
		key := dass.FormatSubset([]string{label})
		bel[key] = a.Belief(mf, h)
		pl[key] = a.Plausibility(mf, h)
	}
	omega := frame.Omega()
	key := omega.Format(frame)
	bel[key] = a.Belief(mf, omega)
	pl[key] = a.Plausibility(mf, omega)
	return bel, pl
}

// bbaMap renders a mass function in DASS subset syntax.
func bbaMap(frame *ds.Frame, mf *ds.MassFunction) map[string]float64 {
	focal := mf.FocalElements()
	out := make(map[string]float64, len(focal))
	for _, h := range focal {
		out[h.Format(frame)] = mf.Mass(h)
	}
	return out
}
