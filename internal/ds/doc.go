// Package ds implements the Dempster-Shafer evidence core: frames of
// discernment, bitset hypotheses, mass functions, belief measures,
// combination rules and discounting.
//
// Everything in this package is an immutable value after construction
// and safe for concurrent use without locking. All operations are
// synchronous and CPU-bound; cancellation and timing belong to the
// benchmark runner driving the engine.
package ds
