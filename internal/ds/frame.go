package ds

import (
	"fmt"
	"strings"
)

// MaxFrameSize bounds the number of atomic elements a frame may hold.
// Hypotheses are machine-word bitsets over element indexes, so the
// frame must fit in 64 bits.
const MaxFrameSize = 64

// Frame is a frame of discernment: the finite, immutable universe of
// mutually exclusive possibilities. Element order is fixed at
// construction and defines the bit layout of every Hypothesis built
// from this frame.
type Frame struct {
	labels []string
	index  map[string]int
}

// NewFrame builds a frame from the given labels. The label order is
// preserved. Empty frames and duplicate labels are rejected with
// ErrInvalidFrame; more than MaxFrameSize elements with
// ErrFrameTooLarge.
func NewFrame(labels ...string) (*Frame, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no elements", ErrInvalidFrame)
	}
	if len(labels) > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d elements", ErrFrameTooLarge, len(labels))
	}
	index := make(map[string]int, len(labels))
	owned := make([]string, len(labels))
	for i, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("%w: empty element label", ErrInvalidFrame)
		}
		if _, dup := index[label]; dup {
			return nil, fmt.Errorf("%w: duplicate element %q", ErrInvalidFrame, label)
		}
		index[label] = i
		owned[i] = label
	}
	return &Frame{labels: owned, index: index}, nil
}

// Size returns the number of atomic elements.
func (f *Frame) Size() int { return len(f.labels) }

// Contains reports whether label is an element of the frame.
func (f *Frame) Contains(label string) bool {
	_, ok := f.index[label]
	return ok
}

// Labels returns a copy of the frame's element labels in frame order.
func (f *Frame) Labels() []string {
	out := make([]string, len(f.labels))
	copy(out, f.labels)
	return out
}

// Omega returns the hypothesis containing every element of the frame.
func (f *Frame) Omega() Hypothesis {
	if len(f.labels) == MaxFrameSize {
		return Hypothesis(^uint64(0))
	}
	return Hypothesis(uint64(1)<<uint(len(f.labels))) - 1
}

// Hypothesis builds a hypothesis from element labels. Unknown labels
// fail with ErrUnknownElement. Duplicate labels collapse.
func (f *Frame) Hypothesis(labels ...string) (Hypothesis, error) {
	var h Hypothesis
	for _, label := range labels {
		i, ok := f.index[label]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownElement, label)
		}
		h |= Hypothesis(1) << uint(i)
	}
	return h, nil
}

// Singleton returns the hypothesis holding exactly one element.
func (f *Frame) Singleton(label string) (Hypothesis, error) {
	return f.Hypothesis(label)
}

// Same reports whether two frames have identical elements in identical
// order, which is what makes their hypothesis bit layouts compatible.
func (f *Frame) Same(other *Frame) bool {
	if f == other {
		return true
	}
	if other == nil || len(f.labels) != len(other.labels) {
		return false
	}
	for i, label := range f.labels {
		if other.labels[i] != label {
			return false
		}
	}
	return true
}

func (f *Frame) String() string {
	return "{" + strings.Join(f.labels, ",") + "}"
}

// Powerset returns a restartable iterator over all 2^n subsets of the
// frame, the empty hypothesis first. Exponential: meant for exhaustive
// checks in tests and diagnostics, never for the combination path.
func (f *Frame) Powerset() *PowersetIter {
	return &PowersetIter{frame: f}
}

// PowersetIter walks the subsets of a frame in ascending bitset order.
type PowersetIter struct {
	frame *Frame
	next  uint64
	done  bool
}

// Next returns the next subset, or false once all subsets are spent.
func (it *PowersetIter) Next() (Hypothesis, bool) {
	if it.done {
		return 0, false
	}
	h := Hypothesis(it.next)
	if h == it.frame.Omega() {
		it.done = true
	}
	it.next++
	return h, true
}

// Reset rewinds the iterator to the empty hypothesis.
func (it *PowersetIter) Reset() {
	it.next = 0
	it.done = false
}
