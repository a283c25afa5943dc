package dass_test

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"dsbench/internal/dass"
	"dsbench/internal/ds"
)

const sampleDoc = `{
  "metadata": {"format": "DASS", "version": "1.0"},
  "frame_of_discernment": ["A", "B", "C"],
  "bba_sources": [
    {"id": "source_1", "bba": {"{A}": 0.6, "{B,C}": 0.4}},
    {"id": "source_2", "bba": {"{B}": 0.3, "{A,B,C}": 0.7}}
  ]
}`

func decodeSample(t *testing.T) *dass.Document {
	t.Helper()
	doc, err := dass.Decode(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return doc
}

func TestDecodeAndLoad(t *testing.T) {
	doc := decodeSample(t)
	frame, mfs, err := doc.MassFunctions(false)
	if err != nil {
		t.Fatalf("MassFunctions: %v", err)
	}
	if frame.Size() != 3 {
		t.Errorf("frame size = %d, want 3", frame.Size())
	}
	if len(mfs) != 2 {
		t.Fatalf("loaded %d sources, want 2", len(mfs))
	}
	a, err := frame.Hypothesis("A")
	if err != nil {
		t.Fatalf("Hypothesis(A): %v", err)
	}
	if got := mfs[0].Mass(a); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("source_1 m(A) = %g, want 0.6", got)
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	if _, err := dass.Decode(strings.NewReader("{not json")); !errors.Is(err, dass.ErrMalformed) {
		t.Errorf("Decode garbage: got %v, want ErrMalformed", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := decodeSample(t)
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := dass.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode(doc)): %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Error("document changed across an encode/decode round trip")
	}
}

func TestParseSubset(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"{A}", []string{"A"}},
		{"{A,B}", []string{"A", "B"}},
		{"{ A , B }", []string{"A", "B"}},
		{"{}", nil},
	}
	for _, tt := range tests {
		got, err := dass.ParseSubset(tt.in)
		if err != nil {
			t.Errorf("ParseSubset(%q): %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSubset(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"A,B", "{A,}", "{,A}", ""} {
		if _, err := dass.ParseSubset(bad); !errors.Is(err, dass.ErrMalformed) {
			t.Errorf("ParseSubset(%q): got %v, want ErrMalformed", bad, err)
		}
	}
}

func TestFormatSubsetSortsLabels(t *testing.T) {
	if got := dass.FormatSubset([]string{"C", "A"}); got != "{A,C}" {
		t.Errorf("FormatSubset = %q, want {A,C}", got)
	}
	if got := dass.FormatSubset(nil); got != "{}" {
		t.Errorf("FormatSubset(nil) = %q, want {}", got)
	}
}

func TestLoadSurfacesEngineTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			"unknown element",
			`{"frame_of_discernment":["A"],"bba_sources":[{"id":"s","bba":{"{X}":1.0}}]}`,
			ds.ErrUnknownElement,
		},
		{
			"negative mass",
			`{"frame_of_discernment":["A","B"],"bba_sources":[{"id":"s","bba":{"{A}":-0.5,"{B}":1.5}}]}`,
			ds.ErrNegativeMass,
		},
		{
			"not conserved",
			`{"frame_of_discernment":["A","B"],"bba_sources":[{"id":"s","bba":{"{A}":0.4,"{B}":0.4}}]}`,
			ds.ErrMassNotConserved,
		},
		{
			"duplicate frame labels",
			`{"frame_of_discernment":["A","A"],"bba_sources":[{"id":"s","bba":{"{A}":1.0}}]}`,
			ds.ErrInvalidFrame,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := dass.Decode(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if _, _, err := doc.MassFunctions(false); !errors.Is(err, tt.want) {
				t.Errorf("MassFunctions = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadUnnormalizedSource(t *testing.T) {
	raw := `{"frame_of_discernment":["A","B"],"bba_sources":[{"id":"s","bba":{"{}":0.2,"{A}":0.5,"{B}":0.3}}]}`
	doc, err := dass.Decode(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, _, err := doc.MassFunctions(false); !errors.Is(err, ds.ErrMassNotConserved) {
		t.Errorf("strict load of empty-set mass: got %v, want ErrMassNotConserved", err)
	}
	_, mfs, err := doc.MassFunctions(true)
	if err != nil {
		t.Fatalf("permissive load: %v", err)
	}
	if mfs[0].IsNormalized() {
		t.Error("source with empty-set mass must load as unnormalized")
	}
	if got := mfs[0].Conflict(); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("conflict mass = %g, want 0.2", got)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	doc := &dass.Document{
		FrameOfDiscernment: []string{"A", "A", ""},
		BBASources: []dass.Source{
			{ID: "s1", BBA: map[string]float64{"{A}": 0.4, "bad": 0.6}},
			{ID: "s2", BBA: map[string]float64{"{X}": 1.0}},
			{ID: "s3"},
		},
	}
	errs := dass.Validate(doc)
	if len(errs) < 4 {
		t.Fatalf("Validate found %d problems, want at least 4: %v", len(errs), errs)
	}
}

func TestValidateAcceptsSample(t *testing.T) {
	if errs := dass.Validate(decodeSample(t)); len(errs) != 0 {
		t.Errorf("sample document must validate, got %v", errs)
	}
}
