package ds

import "errors"

// Tolerance is the default absolute tolerance used when checking that
// the masses of a basic belief assignment sum to one, and when deciding
// that conflict has consumed all mass during normalization.
const Tolerance = 1e-9

var (
	ErrInvalidFrame        = errors.New("invalid frame of discernment")
	ErrFrameTooLarge       = errors.New("frame exceeds 64 elements")
	ErrUnknownElement      = errors.New("element not in frame")
	ErrNegativeMass        = errors.New("negative mass")
	ErrMassNotConserved    = errors.New("masses do not sum to 1")
	ErrTotalConflict       = errors.New("total conflict: no mass survives normalization")
	ErrFrameMismatch       = errors.New("mass functions built on different frames")
	ErrInvalidReliability  = errors.New("reliability factor outside [0,1]")
	ErrDimensionMismatch   = errors.New("reliability vector length does not match frame size")
	ErrEmptyCombinationSet = errors.New("no mass functions to combine")
	ErrUnknownRule         = errors.New("unknown combination rule")
)
