package ds

import (
	"fmt"
	"strings"
)

// Rule selects the conflict-handling policy of a pairwise combination.
// All rules share the same accumulation skeleton over pairs of focal
// elements and differ only in where the product mass lands and what
// happens to the conflict mass K.
type Rule uint8

const (
	// RuleConjunctive is Dempster's rule: intersection keys, conflict
	// redistributed proportionally by normalization.
	RuleConjunctive Rule = iota
	// RuleDisjunctive uses union keys; no conflict can arise.
	RuleDisjunctive
	// RuleYager moves the conflict mass to the whole frame.
	RuleYager
	// RuleDuboisPrade sends conflicting pairs to their union.
	RuleDuboisPrade
	// RulePCR5 redistributes each conflicting product back to the two
	// hypotheses involved, proportionally to their masses.
	RulePCR5
)

func (r Rule) String() string {
	switch r {
	case RuleConjunctive:
		return "dempster"
	case RuleDisjunctive:
		return "disjunctive"
	case RuleYager:
		return "yager"
	case RuleDuboisPrade:
		return "dubois_prade"
	case RulePCR5:
		return "pcr5"
	}
	return fmt.Sprintf("rule(%d)", uint8(r))
}

// ParseRule resolves a rule name as used in benchmark configs and on
// the command line.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dempster", "conjunctive":
		return RuleConjunctive, nil
	case "disjunctive":
		return RuleDisjunctive, nil
	case "yager":
		return RuleYager, nil
	case "dubois_prade", "dubois-prade", "duboisprade":
		return RuleDuboisPrade, nil
	case "pcr5":
		return RulePCR5, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// Rules lists every supported combination rule.
func Rules() []Rule {
	return []Rule{RuleConjunctive, RuleDisjunctive, RuleYager, RuleDuboisPrade, RulePCR5}
}

func checkSameFrame(m1, m2 *MassFunction) error {
	if !m1.frame.Same(m2.frame) {
		return fmt.Errorf("%w: %s vs %s", ErrFrameMismatch, m1.frame, m2.frame)
	}
	return nil
}

// accumulate runs the shared pairwise skeleton: for every pair of focal
// elements (B from m1, C from m2) the product mass m1(B)*m2(C) is
// added at key(B, C).
func accumulate(m1, m2 *MassFunction, key func(b, c Hypothesis) Hypothesis) map[Hypothesis]float64 {
	out := make(map[Hypothesis]float64, len(m1.masses)*len(m2.masses))
	for b, vb := range m1.masses {
		for c, vc := range m2.masses {
			out[key(b, c)] += vb * vc
		}
	}
	return out
}

// CombineConjunctive fuses two mass functions with the conjunctive
// rule, keying product masses by intersection. With normalize set this
// is Dempster's rule: the conflict mass K at the empty set is dropped
// and the rest rescaled, failing with ErrTotalConflict when K consumes
// everything. With normalize unset the raw result is returned,
// including any mass at the empty set; this unnormalized intermediate
// is what staged multi-source fusion folds over before one final
// normalization pass. O(|focal(m1)|*|focal(m2)|).
func CombineConjunctive(m1, m2 *MassFunction, normalize bool) (*MassFunction, error) {
	if err := checkSameFrame(m1, m2); err != nil {
		return nil, err
	}
	combined := &MassFunction{
		frame:  m1.frame,
		masses: accumulate(m1, m2, Hypothesis.Intersection),
	}
	if !normalize {
		return combined, nil
	}
	return combined.Normalize()
}

// CombineDisjunctive fuses two mass functions keying by union. Two
// sources free of empty-set mass can never produce conflict, so the
// result needs no normalization and the operation always succeeds.
func CombineDisjunctive(m1, m2 *MassFunction) (*MassFunction, error) {
	if err := checkSameFrame(m1, m2); err != nil {
		return nil, err
	}
	return &MassFunction{
		frame:  m1.frame,
		masses: accumulate(m1, m2, Hypothesis.Union),
	}, nil
}

// CombineYager fuses conjunctively but moves the conflict mass K to
// the whole frame instead of redistributing it. The output never
// carries mass at the empty set.
func CombineYager(m1, m2 *MassFunction) (*MassFunction, error) {
	if err := checkSameFrame(m1, m2); err != nil {
		return nil, err
	}
	masses := accumulate(m1, m2, Hypothesis.Intersection)
	if k := masses[Empty]; k > 0 {
		delete(masses, Empty)
		masses[m1.frame.Omega()] += k
	}
	return &MassFunction{frame: m1.frame, masses: masses}, nil
}

// CombineDuboisPrade keys agreeing pairs by intersection and
// conflicting pairs (empty intersection) by union, so no mass ever
// reaches the empty set.
func CombineDuboisPrade(m1, m2 *MassFunction) (*MassFunction, error) {
	if err := checkSameFrame(m1, m2); err != nil {
		return nil, err
	}
	key := func(b, c Hypothesis) Hypothesis {
		if inter := b.Intersection(c); !inter.IsEmpty() {
			return inter
		}
		return b.Union(c)
	}
	return &MassFunction{frame: m1.frame, masses: accumulate(m1, m2, key)}, nil
}

// CombinePCR5 applies the PCR5 rule: the conjunctive result without
// its conflict mass, with every conflicting product m1(B)*m2(C)
// redistributed back onto B and C proportionally to m1(B) and m2(C).
func CombinePCR5(m1, m2 *MassFunction) (*MassFunction, error) {
	if err := checkSameFrame(m1, m2); err != nil {
		return nil, err
	}
	masses := accumulate(m1, m2, Hypothesis.Intersection)
	delete(masses, Empty)
	for b, vb := range m1.masses {
		for c, vc := range m2.masses {
			if b.Intersects(c) {
				continue
			}
			total := vb + vc
			if total <= 0 {
				continue
			}
			product := vb * vc
			masses[b] += product * vb / total
			masses[c] += product * vc / total
		}
	}
	return &MassFunction{frame: m1.frame, masses: masses}, nil
}

// Combine dispatches a pairwise combination by rule. The conjunctive
// rule normalizes per pair here; use CombineN for the deferred variant.
func Combine(m1, m2 *MassFunction, rule Rule) (*MassFunction, error) {
	switch rule {
	case RuleConjunctive:
		return CombineConjunctive(m1, m2, true)
	case RuleDisjunctive:
		return CombineDisjunctive(m1, m2)
	case RuleYager:
		return CombineYager(m1, m2)
	case RuleDuboisPrade:
		return CombineDuboisPrade(m1, m2)
	case RulePCR5:
		return CombinePCR5(m1, m2)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownRule, uint8(rule))
}

// ConflictBetween returns the conjunctive conflict mass K of two mass
// functions: the product mass landing on the empty set. Always in
// [0, 1] for normalized inputs.
func ConflictBetween(m1, m2 *MassFunction) (float64, error) {
	if err := checkSameFrame(m1, m2); err != nil {
		return 0, err
	}
	k := 0.0
	for b, vb := range m1.masses {
		for c, vc := range m2.masses {
			if !b.Intersects(c) {
				k += vb * vc
			}
		}
	}
	return k, nil
}

// CombineN left-folds the chosen rule across the list. Zero inputs
// fail with ErrEmptyCombinationSet; a single input is returned
// unchanged (identity law).
//
// For the conjunctive rule normalization is deferred: the fold
// accumulates unnormalized intermediates and one Normalize pass runs
// at the end. Deferred normalization keeps the conjunctive fold
// associative; normalizing after every pair is a different (and
// order-sensitive) policy, available by folding Combine manually. The
// other rules apply their own conflict policy at every pairwise step,
// matching their usual N-ary definitions.
func CombineN(mfs []*MassFunction, rule Rule) (*MassFunction, error) {
	if len(mfs) == 0 {
		return nil, ErrEmptyCombinationSet
	}
	if len(mfs) == 1 {
		return mfs[0], nil
	}
	acc := mfs[0]
	var err error
	for _, next := range mfs[1:] {
		switch rule {
		case RuleConjunctive:
			acc, err = CombineConjunctive(acc, next, false)
		case RuleDisjunctive:
			acc, err = CombineDisjunctive(acc, next)
		case RuleYager:
			acc, err = CombineYager(acc, next)
		case RuleDuboisPrade:
			acc, err = CombineDuboisPrade(acc, next)
		case RulePCR5:
			acc, err = CombinePCR5(acc, next)
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownRule, uint8(rule))
		}
		if err != nil {
			return nil, err
		}
	}
	if rule == RuleConjunctive {
		return acc.Normalize()
	}
	return acc, nil
}
