// Package dass reads and writes DASS documents: the JSON interchange
// format benchmark scenarios are stored in. A document carries a frame
// of discernment (ordered element labels) and one basic belief
// assignment per evidence source, with hypotheses encoded in the
// {A,B} subset syntax.
package dass

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"dsbench/internal/ds"
)

// ErrMalformed flags structural problems with a DASS document, as
// opposed to the domain errors surfaced by the ds package.
var ErrMalformed = errors.New("malformed DASS document")

// FormatName is the value of metadata.format every DASS document carries.
const FormatName = "DASS"

// FormatVersion is the DASS schema version this package produces.
const FormatVersion = "1.0"

// Metadata describes the provenance of a document. All fields are
// informational; none affect the engine.
type Metadata struct {
	Format      string `json:"format"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty"`
	GeneratedBy string `json:"generated_by,omitempty"`
}

// Source is one evidence source: a named basic belief assignment
// mapping subset strings to masses.
type Source struct {
	ID  string             `json:"id"`
	BBA map[string]float64 `json:"bba"`
}

// Document is a full DASS document.
type Document struct {
	Metadata           Metadata `json:"metadata"`
	FrameOfDiscernment []string `json:"frame_of_discernment"`
	BBASources         []Source `json:"bba_sources"`
}

// Decode parses a DASS document from JSON.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &doc, nil
}

// DecodeFile parses a DASS document from a file.
func DecodeFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteFile writes the document to path as indented JSON.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ParseSubset parses the {A,B} subset syntax into labels. {} is the
// empty set. Labels are NFC-normalized so that visually identical
// unicode spellings compare equal.
func ParseSubset(s string) ([]string, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return nil, fmt.Errorf("%w: subset %q is not {…} delimited", ErrMalformed, s)
	}
	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return nil, nil
	}
	parts := strings.Split(inner, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		label := norm.NFC.String(strings.TrimSpace(p))
		if label == "" {
			return nil, fmt.Errorf("%w: subset %q has an empty element", ErrMalformed, s)
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// FormatSubset renders labels in the {A,B} subset syntax, sorted for
// stable output.
func FormatSubset(labels []string) string {
	if len(labels) == 0 {
		return "{}"
	}
	sorted := make([]string, len(labels))
	copy(sorted, labels)
	sort.Strings(sorted)
	return "{" + strings.Join(sorted, ",") + "}"
}

// Frame builds the ds.Frame for the document, NFC-normalizing labels.
// Duplicate or empty labels surface ds.ErrInvalidFrame.
func (d *Document) Frame() (*ds.Frame, error) {
	labels := make([]string, len(d.FrameOfDiscernment))
	for i, l := range d.FrameOfDiscernment {
		labels[i] = norm.NFC.String(l)
	}
	return ds.NewFrame(labels...)
}

// MassFunctions converts every source in the document into a mass
// function over the document's frame. With allowUnnormalized set,
// sources may carry mass on the empty set or sum away from 1 (the
// generator emits such documents when asked to); otherwise the strict
// ds validation applies. The returned slice is ordered as the sources
// appear in the document.
func (d *Document) MassFunctions(allowUnnormalized bool) (*ds.Frame, []*ds.MassFunction, error) {
	frame, err := d.Frame()
	if err != nil {
		return nil, nil, err
	}
	if len(d.BBASources) == 0 {
		return nil, nil, fmt.Errorf("%w: no bba_sources", ErrMalformed)
	}
	out := make([]*ds.MassFunction, 0, len(d.BBASources))
	for i, src := range d.BBASources {
		mf, err := sourceMass(frame, src, allowUnnormalized)
		if err != nil {
			return nil, nil, fmt.Errorf("source %s: %w", sourceName(src, i), err)
		}
		out = append(out, mf)
	}
	return frame, out, nil
}

func sourceMass(frame *ds.Frame, src Source, allowUnnormalized bool) (*ds.MassFunction, error) {
	if len(src.BBA) == 0 {
		return nil, fmt.Errorf("%w: empty bba", ErrMalformed)
	}
	raw := make(map[ds.Hypothesis]float64, len(src.BBA))
	for key, mass := range src.BBA {
		labels, err := ParseSubset(key)
		if err != nil {
			return nil, err
		}
		h, err := frame.Hypothesis(labels...)
		if err != nil {
			return nil, err
		}
		raw[h] += mass
	}
	return ds.FromMapping(frame, raw, allowUnnormalized)
}

func sourceName(src Source, index int) string {
	if src.ID != "" {
		return src.ID
	}
	return fmt.Sprintf("#%d", index)
}
