package ds_test

import (
	"errors"
	"math"
	"testing"

	"dsbench/internal/ds"
)

func TestDiscountClassical(t *testing.T) {
	f := mustFrame(t, "A", "B", "C")
	m := mustMass(t, f, map[string]float64{"A": 0.6, "B,C": 0.4})

	got, err := ds.DiscountClassical(m, 0.5)
	if err != nil {
		t.Fatalf("DiscountClassical: %v", err)
	}
	expectClose(t, "m(A)", got.Mass(mustHyp(t, f, "A")), 0.3)
	expectClose(t, "m(BC)", got.Mass(mustHyp(t, f, "B", "C")), 0.2)
	expectClose(t, "m(Ω)", got.Mass(f.Omega()), 0.5)
	expectClose(t, "total", got.Total(), 1.0)
}

func TestDiscountClassicalZeroIsVacuous(t *testing.T) {
	f := mustFrame(t, "A", "B", "C")
	m := mustMass(t, f, map[string]float64{"A": 0.6, "B,C": 0.4})
	got, err := ds.DiscountClassical(m, 0)
	if err != nil {
		t.Fatalf("DiscountClassical: %v", err)
	}
	if !got.Equals(ds.Vacuous(f), 0) {
		t.Errorf("alpha=0 must yield the vacuous mass function, got %v", got)
	}
}

func TestDiscountClassicalOneIsIdentity(t *testing.T) {
	f := mustFrame(t, "A", "B", "C")
	m := mustMass(t, f, map[string]float64{"A": 0.6, "B,C": 0.4})
	got, err := ds.DiscountClassical(m, 1)
	if err != nil {
		t.Fatalf("DiscountClassical: %v", err)
	}
	if !got.Equals(m, 0) {
		t.Errorf("alpha=1 must leave the mass function unchanged, got %v", got)
	}
}

func TestDiscountClassicalInvalidReliability(t *testing.T) {
	f := mustFrame(t, "A")
	m := mustMass(t, f, map[string]float64{"A": 1})
	for _, alpha := range []float64{-0.1, 1.1} {
		if _, err := ds.DiscountClassical(m, alpha); !errors.Is(err, ds.ErrInvalidReliability) {
			t.Errorf("alpha=%g: got %v, want ErrInvalidReliability", alpha, err)
		}
	}
}

func TestDiscountContextualVectorChecks(t *testing.T) {
	f := mustFrame(t, "A", "B", "C")
	m := mustMass(t, f, map[string]float64{"A": 1})

	if _, err := ds.DiscountContextual(m, []float64{0.5, 0.5}); !errors.Is(err, ds.ErrDimensionMismatch) {
		t.Errorf("short vector: got %v, want ErrDimensionMismatch", err)
	}
	if _, err := ds.DiscountContextual(m, []float64{0.5, 1.5, 0.5}); !errors.Is(err, ds.ErrInvalidReliability) {
		t.Errorf("component 1.5: got %v, want ErrInvalidReliability", err)
	}
}

func TestDiscountContextualFastPaths(t *testing.T) {
	f := mustFrame(t, "A", "B")
	m := mustMass(t, f, map[string]float64{"A": 0.7, "B": 0.3})

	same, err := ds.DiscountContextual(m, []float64{1, 1})
	if err != nil {
		t.Fatalf("all reliable: %v", err)
	}
	if !same.Equals(m, 0) {
		t.Error("fully reliable vector must leave the mass function unchanged")
	}

	vac, err := ds.DiscountContextual(m, []float64{0, 0})
	if err != nil {
		t.Fatalf("all unreliable: %v", err)
	}
	if !vac.Equals(ds.Vacuous(f), 0) {
		t.Error("fully unreliable vector must yield the vacuous mass function")
	}
}

func TestDiscountContextualSpreadsOntoUnreliableElements(t *testing.T) {
	f := mustFrame(t, "A", "B")
	m := mustMass(t, f, map[string]float64{"A": 1})

	// A fully reliable, B reliability 0.4: mass of {A} spreads onto
	// {A} (weight 1) and {A,B} (weight 0.6), renormalized to 1.6.
	got, err := ds.DiscountContextual(m, []float64{1, 0.4})
	if err != nil {
		t.Fatalf("DiscountContextual: %v", err)
	}
	expectClose(t, "m(A)", got.Mass(mustHyp(t, f, "A")), 1/1.6)
	expectClose(t, "m(AB)", got.Mass(f.Omega()), 0.6/1.6)
	expectClose(t, "total", got.Total(), 1.0)
}

func TestDiscountContextualOutputIsNormalized(t *testing.T) {
	f := mustFrame(t, "A", "B", "C")
	m := mustMass(t, f, map[string]float64{"A": 0.5, "B,C": 0.3, "A,B,C": 0.2})
	got, err := ds.DiscountContextual(m, []float64{0.9, 0.5, 0.7})
	if err != nil {
		t.Fatalf("DiscountContextual: %v", err)
	}
	if math.Abs(got.Total()-1.0) > 1e-9 {
		t.Errorf("total mass %.12g, want 1", got.Total())
	}
	if !got.IsNormalized() {
		t.Error("contextual discounting must not leave mass at the empty set")
	}
}
