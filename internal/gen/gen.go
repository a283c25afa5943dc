// Package gen produces random DASS benchmark scenarios, shaped like
// the reference datasets: a handful of singleton hypotheses per
// source, a couple of composite subsets, and optionally a little mass
// on the empty set to exercise unnormalized ingestion.
package gen

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"
	"time"

	"dsbench/internal/dass"
	"dsbench/internal/ds"
)

// Options controls scenario generation. The same Seed yields the same
// document, which keeps benchmark inputs reproducible across runs.
type Options struct {
	Elements     []string
	Sources      int
	IncludeEmpty bool
	Seed         uint64
	Description  string
}

// maxFocal caps the number of focal elements per generated source.
const maxFocal = 7

// Generate builds a random DASS document per opts.
func Generate(opts Options) (*dass.Document, error) {
	// Reuse the engine's frame validation for the element list.
	if _, err := ds.NewFrame(opts.Elements...); err != nil {
		return nil, err
	}
	if opts.Sources < 1 {
		return nil, fmt.Errorf("need at least one source, got %d", opts.Sources)
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	desc := opts.Description
	if desc == "" {
		desc = fmt.Sprintf("generated scenario: %d elements, %d sources", len(opts.Elements), opts.Sources)
	}
	doc := &dass.Document{
		Metadata: dass.Metadata{
			Format:      dass.FormatName,
			Version:     dass.FormatVersion,
			Description: desc,
			GeneratedAt: time.Now().Format(time.RFC3339),
			GeneratedBy: "dsbench generator",
		},
		FrameOfDiscernment: append([]string(nil), opts.Elements...),
	}
	for i := 0; i < opts.Sources; i++ {
		doc.BBASources = append(doc.BBASources, dass.Source{
			ID:  fmt.Sprintf("source_%d", i+1),
			BBA: randomBBA(rng, opts.Elements, opts.IncludeEmpty),
		})
	}
	return doc, nil
}

// randomBBA picks 1-3 singletons and up to 2 composite subsets, maybe
// the empty set, then spreads random masses over them summing to 1.
func randomBBA(rng *rand.Rand, elements []string, includeEmpty bool) map[string]float64 {
	singles := append([]string(nil), elements...)
	rng.Shuffle(len(singles), func(i, j int) {
		singles[i], singles[j] = singles[j], singles[i]
	})
	nSingle := 1 + rng.IntN(min(3, len(elements)))

	var subsets [][]string
	for _, s := range singles[:nSingle] {
		subsets = append(subsets, []string{s})
	}
	for _, composite := range randomComposites(rng, elements) {
		subsets = append(subsets, composite)
	}
	if includeEmpty && rng.Float64() < 0.3 {
		subsets = append(subsets, nil)
	}
	if len(subsets) > maxFocal {
		subsets = subsets[:maxFocal]
	}

	masses := make([]float64, len(subsets))
	total := 0.0
	for i := range masses {
		masses[i] = rng.Float64()
		total += masses[i]
	}

	// Round to 4 decimals and let the last focal element absorb the
	// slack so the assignment sums to exactly 1.
	last := len(subsets) - 1
	rounded := make([]float64, len(subsets))
	remaining := 1.0
	for i := 0; i < last; i++ {
		rounded[i] = math.Round(masses[i]/total*1e4) / 1e4
		remaining -= rounded[i]
	}
	if remaining < 0 {
		// The earlier entries rounded up past 1; take the deficit out
		// of the largest of them so no mass goes negative.
		maxIdx := 0
		for i := 1; i < last; i++ {
			if rounded[i] > rounded[maxIdx] {
				maxIdx = i
			}
		}
		rounded[maxIdx] += remaining
		remaining = 0
	}
	rounded[last] = remaining

	bba := make(map[string]float64, len(subsets))
	for i, subset := range subsets {
		bba[dass.FormatSubset(subset)] = rounded[i]
	}
	return bba
}

// randomComposites draws 0-2 distinct multi-element subsets of the
// frame. Duplicates would collapse into one bba key and lose mass, so
// they are rejected; the attempt bound keeps narrow frames from
// looping when fewer distinct composites exist than requested.
func randomComposites(rng *rand.Rand, elements []string) [][]string {
	n := len(elements)
	if n < 2 {
		return nil
	}
	count := rng.IntN(3)
	seen := make(map[uint64]bool, count)
	out := make([][]string, 0, count)
	for attempts := 0; len(out) < count && attempts < 64; attempts++ {
		mask := rng.Uint64N(uint64(1) << uint(n))
		if bits.OnesCount64(mask) < 2 || seen[mask] {
			continue
		}
		seen[mask] = true
		var subset []string
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				subset = append(subset, elements[i])
			}
		}
		out = append(out, subset)
	}
	return out
}

// Suite generates the three standard scenario sizes used by the
// benchmark: small (3 elements), medium (5), large (7).
func Suite(seed uint64) (map[string]*dass.Document, error) {
	specs := []struct {
		name     string
		elements []string
		sources  int
	}{
		{"small", []string{"A", "B", "C"}, 2},
		{"medium", []string{"A", "B", "C", "D", "E"}, 3},
		{"large", []string{"A", "B", "C", "D", "E", "F", "G"}, 2},
	}
	out := make(map[string]*dass.Document, len(specs))
	for i, s := range specs {
		doc, err := Generate(Options{
			Elements:    s.elements,
			Sources:     s.sources,
			Seed:        seed + uint64(i),
			Description: fmt.Sprintf("standard %s scenario", s.name),
		})
		if err != nil {
			return nil, err
		}
		out[s.name] = doc
	}
	return out, nil
}
