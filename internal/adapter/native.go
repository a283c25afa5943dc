package adapter

import (
	"dsbench/internal/dass"
	"dsbench/internal/ds"
)

// Native is the adapter backed by this repository's own engine. It is
// stateless: every call is a pure function of its inputs.
type Native struct{}

func init() {
	Register(Native{})
}

// Name implements Adapter.
func (Native) Name() string { return "native" }

// Load implements Adapter. Sources with empty-set mass load as
// explicit unnormalized mass functions, matching what the generator
// may emit.
func (Native) Load(doc *dass.Document) (*ds.Frame, []*ds.MassFunction, error) {
	return doc.MassFunctions(true)
}

// Belief implements Adapter.
func (Native) Belief(mf *ds.MassFunction, h ds.Hypothesis) float64 {
	return mf.Belief(h)
}

// Plausibility implements Adapter.
func (Native) Plausibility(mf *ds.MassFunction, h ds.Hypothesis) float64 {
	return mf.Plausibility(h)
}

// Combine implements Adapter.
func (Native) Combine(mfs []*ds.MassFunction, rule string) (*ds.MassFunction, error) {
	r, err := ds.ParseRule(rule)
	if err != nil {
		return nil, err
	}
	return ds.CombineN(mfs, r)
}

// Discount implements Adapter.
func (Native) Discount(mf *ds.MassFunction, alpha float64) (*ds.MassFunction, error) {
	return ds.DiscountClassical(mf, alpha)
}
