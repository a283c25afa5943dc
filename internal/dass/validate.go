package dass

import (
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"
)

const sumTolerance = 1e-6

// Validate checks a decoded document against the DASS contract and
// returns every problem found, not just the first: the validate
// command reports them all so a bad dataset can be fixed in one pass.
// A nil slice means the document is valid.
func Validate(d *Document) []error {
	var errs []error

	if len(d.FrameOfDiscernment) == 0 {
		errs = append(errs, fmt.Errorf("%w: frame_of_discernment is empty", ErrMalformed))
	}
	seen := make(map[string]bool, len(d.FrameOfDiscernment))
	for _, label := range d.FrameOfDiscernment {
		l := norm.NFC.String(label)
		if l == "" {
			errs = append(errs, fmt.Errorf("%w: frame_of_discernment has an empty label", ErrMalformed))
			continue
		}
		if seen[l] {
			errs = append(errs, fmt.Errorf("%w: duplicate frame element %q", ErrMalformed, l))
		}
		seen[l] = true
	}

	if len(d.BBASources) == 0 {
		errs = append(errs, fmt.Errorf("%w: bba_sources is empty", ErrMalformed))
	}
	for i, src := range d.BBASources {
		errs = append(errs, validateSource(src, i, seen)...)
	}
	return errs
}

func validateSource(src Source, index int, frame map[string]bool) []error {
	name := sourceName(src, index)
	if len(src.BBA) == 0 {
		return []error{fmt.Errorf("%w: source %s has an empty bba", ErrMalformed, name)}
	}
	var errs []error
	total := 0.0
	for key, mass := range src.BBA {
		labels, err := ParseSubset(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", name, err))
			continue
		}
		for _, label := range labels {
			if !frame[label] {
				errs = append(errs, fmt.Errorf("%w: source %s references %q outside the frame", ErrMalformed, name, label))
			}
		}
		if mass < 0 {
			errs = append(errs, fmt.Errorf("%w: source %s assigns negative mass %g to %s", ErrMalformed, name, mass, key))
			continue
		}
		total += mass
	}
	// The empty set may carry mass (unnormalized sources are legal
	// DASS), but the overall assignment still has to sum to 1.
	if math.Abs(total-1.0) > sumTolerance {
		errs = append(errs, fmt.Errorf("%w: source %s masses sum to %.9g, want 1", ErrMalformed, name, total))
	}
	return errs
}
