package ds

// Belief returns Bel(A): the total mass of focal elements fully inside
// the hypothesis. Runs in O(|focal|) using subset tests.
func (m *MassFunction) Belief(h Hypothesis) float64 {
	total := 0.0
	for b, v := range m.masses {
		if !b.IsEmpty() && b.IsSubsetOf(h) {
			total += v
		}
	}
	return total
}

// Plausibility returns Pl(A): the total mass of focal elements not
// excluded by the hypothesis. For normalized mass functions
// Pl(A) = 1 - Bel(complement of A).
func (m *MassFunction) Plausibility(h Hypothesis) float64 {
	total := 0.0
	for b, v := range m.masses {
		if b.Intersects(h) {
			total += v
		}
	}
	return total
}

// Commonality returns q(A): the total mass of focal elements that are
// supersets of the hypothesis.
func (m *MassFunction) Commonality(h Hypothesis) float64 {
	total := 0.0
	for b, v := range m.masses {
		if h.IsSubsetOf(b) {
			total += v
		}
	}
	return total
}

// BeliefAll computes Bel for every focal element.
func (m *MassFunction) BeliefAll() map[Hypothesis]float64 {
	out := make(map[Hypothesis]float64, len(m.masses))
	for h := range m.masses {
		out[h] = m.Belief(h)
	}
	return out
}

// PlausibilityAll computes Pl for every focal element.
func (m *MassFunction) PlausibilityAll() map[Hypothesis]float64 {
	out := make(map[Hypothesis]float64, len(m.masses))
	for h := range m.masses {
		out[h] = m.Plausibility(h)
	}
	return out
}

// CommonalityAll computes q for every focal element.
func (m *MassFunction) CommonalityAll() map[Hypothesis]float64 {
	out := make(map[Hypothesis]float64, len(m.masses))
	for h := range m.masses {
		out[h] = m.Commonality(h)
	}
	return out
}

// BeliefExhaustive computes Bel for every subset of the frame.
// Exponential in frame size; diagnostic use only.
func (m *MassFunction) BeliefExhaustive() map[Hypothesis]float64 {
	out := make(map[Hypothesis]float64, 1<<uint(m.frame.Size()))
	it := m.frame.Powerset()
	for h, ok := it.Next(); ok; h, ok = it.Next() {
		out[h] = m.Belief(h)
	}
	return out
}

// PlausibilityExhaustive computes Pl for every subset of the frame.
// Exponential in frame size; diagnostic use only.
func (m *MassFunction) PlausibilityExhaustive() map[Hypothesis]float64 {
	out := make(map[Hypothesis]float64, 1<<uint(m.frame.Size()))
	it := m.frame.Powerset()
	for h, ok := it.Next(); ok; h, ok = it.Next() {
		out[h] = m.Plausibility(h)
	}
	return out
}

// CommonalityExhaustive computes q for every subset of the frame.
// Exponential in frame size; diagnostic use only.
func (m *MassFunction) CommonalityExhaustive() map[Hypothesis]float64 {
	out := make(map[Hypothesis]float64, 1<<uint(m.frame.Size()))
	it := m.frame.Powerset()
	for h, ok := it.Next(); ok; h, ok = it.Next() {
		out[h] = m.Commonality(h)
	}
	return out
}
