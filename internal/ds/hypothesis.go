package ds

import (
	"math/bits"
	"sort"
	"strings"
)

// Hypothesis is a subset of a frame of discernment, stored as a bitset
// over the frame's element indexes. It is a plain value: comparison
// and map keying are structural, independent of construction order.
//
// A Hypothesis is only meaningful relative to the frame that produced
// it; combining hypotheses from frames with different layouts is
// guarded at the MassFunction level.
type Hypothesis uint64

// Empty is the empty-set hypothesis.
const Empty Hypothesis = 0

// IsEmpty reports whether the hypothesis contains no elements.
func (h Hypothesis) IsEmpty() bool { return h == 0 }

// Count returns the number of elements in the hypothesis.
func (h Hypothesis) Count() int { return bits.OnesCount64(uint64(h)) }

// Intersects reports whether the two hypotheses share an element.
func (h Hypothesis) Intersects(other Hypothesis) bool { return h&other != 0 }

// IsSubsetOf reports whether every element of h is in other.
func (h Hypothesis) IsSubsetOf(other Hypothesis) bool { return h&^other == 0 }

// Union returns the set union of the two hypotheses.
func (h Hypothesis) Union(other Hypothesis) Hypothesis { return h | other }

// Intersection returns the set intersection of the two hypotheses.
func (h Hypothesis) Intersection(other Hypothesis) Hypothesis { return h & other }

// Minus returns the elements of h not in other.
func (h Hypothesis) Minus(other Hypothesis) Hypothesis { return h &^ other }

// ComplementIn returns the complement of h within the given frame.
func (h Hypothesis) ComplementIn(f *Frame) Hypothesis { return f.Omega() &^ h }

// Labels resolves the hypothesis back to element labels, sorted
// lexicographically for stable external presentation.
func (h Hypothesis) Labels(f *Frame) []string {
	out := make([]string, 0, h.Count())
	for i := 0; i < f.Size(); i++ {
		if h&(Hypothesis(1)<<uint(i)) != 0 {
			out = append(out, f.labels[i])
		}
	}
	sort.Strings(out)
	return out
}

// Format renders the hypothesis in the {A,B} subset syntax used by
// DASS documents. The empty set renders as {}.
func (h Hypothesis) Format(f *Frame) string {
	return "{" + strings.Join(h.Labels(f), ",") + "}"
}
