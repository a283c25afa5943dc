package adapter_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"dsbench/internal/adapter"
	"dsbench/internal/dass"
	"dsbench/internal/ds"
)

const bookDoc = `{
  "frame_of_discernment": ["A", "B", "C"],
  "bba_sources": [
    {"id": "source_1", "bba": {"{A}": 0.6, "{B,C}": 0.4}},
    {"id": "source_2", "bba": {"{B}": 0.3, "{A,B,C}": 0.7}}
  ]
}`

func loadBook(t *testing.T, a adapter.Adapter) (*ds.Frame, []*ds.MassFunction) {
	t.Helper()
	doc, err := dass.Decode(strings.NewReader(bookDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	frame, mfs, err := a.Load(doc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return frame, mfs
}

func TestRegistryResolvesNative(t *testing.T) {
	a, err := adapter.Get("native")
	if err != nil {
		t.Fatalf("Get(native): %v", err)
	}
	if a.Name() != "native" {
		t.Errorf("Name() = %q, want native", a.Name())
	}
	found := false
	for _, name := range adapter.Names() {
		if name == "native" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() = %v, must include native", adapter.Names())
	}
}

func TestRegistryUnknownAdapter(t *testing.T) {
	if _, err := adapter.Get("pyds"); !errors.Is(err, adapter.ErrUnknownAdapter) {
		t.Errorf("Get(pyds): got %v, want ErrUnknownAdapter", err)
	}
}

func TestNativeBeliefPlausibility(t *testing.T) {
	a := adapter.Native{}
	frame, mfs := loadBook(t, a)
	b, err := frame.Hypothesis("B")
	if err != nil {
		t.Fatalf("Hypothesis(B): %v", err)
	}
	if got := a.Belief(mfs[1], b); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Bel(B) = %g, want 0.3", got)
	}
	if got := a.Plausibility(mfs[0], b); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("Pl(B) = %g, want 0.4", got)
	}
}

func TestNativeCombineDempster(t *testing.T) {
	a := adapter.Native{}
	frame, mfs := loadBook(t, a)
	got, err := a.Combine(mfs, "dempster")
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	hA, err := frame.Hypothesis("A")
	if err != nil {
		t.Fatalf("Hypothesis(A): %v", err)
	}
	if mass := got.Mass(hA); math.Abs(mass-0.42/0.82) > 1e-9 {
		t.Errorf("combined m(A) = %g, want %g", mass, 0.42/0.82)
	}
}

func TestNativeCombineUnknownRule(t *testing.T) {
	a := adapter.Native{}
	_, mfs := loadBook(t, a)
	if _, err := a.Combine(mfs, "murphy"); !errors.Is(err, ds.ErrUnknownRule) {
		t.Errorf("Combine(murphy): got %v, want ErrUnknownRule", err)
	}
}

func TestNativeDiscount(t *testing.T) {
	a := adapter.Native{}
	frame, mfs := loadBook(t, a)
	got, err := a.Discount(mfs[0], 0.5)
	if err != nil {
		t.Fatalf("Discount: %v", err)
	}
	if mass := got.Mass(frame.Omega()); math.Abs(mass-0.5) > 1e-12 {
		t.Errorf("discounted m(Ω) = %g, want 0.5", mass)
	}
}
