package ds

import (
	"fmt"
	"math/bits"
)

// DiscountClassical applies Shafer's classical discounting: every
// hypothesis except the whole frame keeps alpha of its mass and the
// remainder (1-alpha) moves to the frame, expressing doubt about the
// source as ignorance. alpha=1 leaves the input unchanged; alpha=0
// yields the vacuous mass function. Preserves normalization.
func DiscountClassical(m *MassFunction, alpha float64) (*MassFunction, error) {
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidReliability, alpha)
	}
	if alpha == 1 {
		return m, nil
	}
	omega := m.frame.Omega()
	if alpha == 0 {
		return Vacuous(m.frame), nil
	}
	out := make(map[Hypothesis]float64, len(m.masses)+1)
	for h, v := range m.masses {
		if h == omega {
			continue
		}
		out[h] = alpha * v
	}
	out[omega] = (1 - alpha) + alpha*m.masses[omega]
	return &MassFunction{frame: m.frame, masses: out}, nil
}

// DiscountContextual applies contextual discounting with one
// reliability per frame element, in frame order. Mass of a focal
// element B spreads onto every A = B union S, where S ranges over the
// not-fully-reliable elements outside B, weighted by the
// generalization matrix
//
//	G(A,B) = prod(w in B) alpha_w * prod(w in A\B) (1-alpha_w)
//
// restricted to focal B for tractability. The spread is renormalized
// so the result is again a valid mass function. Fails with
// ErrDimensionMismatch when the vector length differs from the frame
// size and ErrInvalidReliability when a component leaves [0,1].
func DiscountContextual(m *MassFunction, alphas []float64) (*MassFunction, error) {
	frame := m.frame
	if len(alphas) != frame.Size() {
		return nil, fmt.Errorf("%w: %d reliabilities for %d elements", ErrDimensionMismatch, len(alphas), frame.Size())
	}
	allReliable, allUnreliable := true, true
	var spreadMask Hypothesis
	for i, a := range alphas {
		if a < 0 || a > 1 {
			return nil, fmt.Errorf("%w: alpha[%d] = %g", ErrInvalidReliability, i, a)
		}
		if a < 1 {
			allReliable = false
			spreadMask |= Hypothesis(1) << uint(i)
		}
		if a > 0 {
			allUnreliable = false
		}
	}
	if allReliable {
		return m, nil
	}
	if allUnreliable {
		return Vacuous(frame), nil
	}

	out := make(map[Hypothesis]float64, len(m.masses))
	for b, v := range m.masses {
		if b.IsEmpty() {
			continue
		}
		base := v
		for i := 0; i < frame.Size(); i++ {
			if b&(Hypothesis(1)<<uint(i)) != 0 {
				base *= alphas[i]
			}
		}
		// Spread over A = B ∪ S for every S ⊆ spreadMask \ B.
		mask := uint64(spreadMask.Minus(b))
		s := mask
		for {
			g := base
			for rest := s; rest != 0; rest &= rest - 1 {
				g *= 1 - alphas[bits.TrailingZeros64(rest)]
			}
			if g > 0 {
				out[b|Hypothesis(s)] += g
			}
			if s == 0 {
				break
			}
			s = (s - 1) & mask
		}
	}

	total := 0.0
	for _, v := range out {
		total += v
	}
	if total <= Tolerance {
		return Vacuous(frame), nil
	}
	for h := range out {
		out[h] /= total
	}
	return &MassFunction{frame: frame, masses: out}, nil
}
