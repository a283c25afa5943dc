package ds

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// MassFunction is a basic belief assignment over a frame of
// discernment: a sparse mapping from hypotheses to non-negative mass.
// Values are immutable after construction; every operation that
// "modifies" a mass function returns a new one, so sharing across
// goroutines needs no locking.
//
// A mass function is normalized iff the empty set carries no mass.
// Unnormalized mass functions exist only as explicit intermediates
// (mid-combination, before conflict redistribution).
type MassFunction struct {
	frame  *Frame
	masses map[Hypothesis]float64
}

// FromMapping validates a raw mapping and builds a mass function over
// the frame. Negative values fail with ErrNegativeMass; hypotheses with
// bits outside the frame with ErrUnknownElement. Unless
// allowUnnormalized is set, the masses must sum to 1 within Tolerance
// and the empty set must carry no mass (ErrMassNotConserved
// otherwise). Zero-mass entries are dropped: only focal elements are
// stored.
func FromMapping(frame *Frame, masses map[Hypothesis]float64, allowUnnormalized bool) (*MassFunction, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrInvalidFrame)
	}
	omega := frame.Omega()
	total := 0.0
	focal := make(map[Hypothesis]float64, len(masses))
	for h, v := range masses {
		if !h.IsSubsetOf(omega) {
			return nil, fmt.Errorf("%w: hypothesis %#x outside frame %s", ErrUnknownElement, uint64(h), frame)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: %s = %g", ErrNegativeMass, h.Format(frame), v)
		}
		if v > 0 {
			focal[h] = v
			total += v
		}
	}
	if !allowUnnormalized {
		if math.Abs(total-1.0) > Tolerance {
			return nil, fmt.Errorf("%w: total %.12g", ErrMassNotConserved, total)
		}
		// Mass on the empty set exists only in the explicitly
		// unnormalized intermediate state.
		if k := focal[Empty]; k > 0 {
			return nil, fmt.Errorf("%w: mass %.12g on the empty set", ErrMassNotConserved, k)
		}
	}
	return &MassFunction{frame: frame, masses: focal}, nil
}

// Frame returns the frame of discernment this mass function is built on.
func (m *MassFunction) Frame() *Frame { return m.frame }

// Mass returns the mass assigned to the hypothesis, 0 if it is not a
// focal element. Total function, never fails.
func (m *MassFunction) Mass(h Hypothesis) float64 { return m.masses[h] }

// Total returns the sum of all stored masses. 1 for well-formed input;
// may differ transiently on unnormalized intermediates.
func (m *MassFunction) Total() float64 {
	total := 0.0
	for _, v := range m.masses {
		total += v
	}
	return total
}

// Conflict returns the mass assigned to the empty set.
func (m *MassFunction) Conflict() float64 { return m.masses[Empty] }

// FocalElements returns the hypotheses with strictly positive mass,
// ordered by cardinality then bit pattern for deterministic iteration.
func (m *MassFunction) FocalElements() []Hypothesis {
	out := make([]Hypothesis, 0, len(m.masses))
	for h := range m.masses {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if ci, cj := out[i].Count(), out[j].Count(); ci != cj {
			return ci < cj
		}
		return out[i] < out[j]
	})
	return out
}

// IsNormalized reports whether the empty set carries no mass.
func (m *MassFunction) IsNormalized() bool { return m.masses[Empty] == 0 }

// Normalize drops the empty set and rescales the remaining masses so
// they sum to 1. If conflict has consumed all mass (k >= 1-Tolerance
// of the total), it fails with ErrTotalConflict: the sources are fully
// contradictory, which is a domain outcome, not an arithmetic error.
func (m *MassFunction) Normalize() (*MassFunction, error) {
	k := m.masses[Empty]
	surviving := m.Total() - k
	if surviving <= Tolerance {
		return nil, fmt.Errorf("%w (k = %.12g)", ErrTotalConflict, k)
	}
	out := make(map[Hypothesis]float64, len(m.masses))
	for h, v := range m.masses {
		if h == Empty {
			continue
		}
		out[h] = v / surviving
	}
	return &MassFunction{frame: m.frame, masses: out}, nil
}

// Equals reports whether two mass functions share a frame layout and
// assign the same mass to every hypothesis within tol.
func (m *MassFunction) Equals(other *MassFunction, tol float64) bool {
	if other == nil || !m.frame.Same(other.frame) {
		return false
	}
	for h, v := range m.masses {
		if math.Abs(v-other.masses[h]) > tol {
			return false
		}
	}
	for h, v := range other.masses {
		if math.Abs(v-m.masses[h]) > tol {
			return false
		}
	}
	return true
}

func (m *MassFunction) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, h := range m.FocalElements() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %.4f", h.Format(m.frame), m.masses[h])
	}
	b.WriteByte('}')
	return b.String()
}

// Vacuous returns the mass function that assigns all mass to the whole
// frame: total ignorance.
func Vacuous(frame *Frame) *MassFunction {
	return &MassFunction{frame: frame, masses: map[Hypothesis]float64{frame.Omega(): 1.0}}
}
