// SPDX-License-Identifier: MIT

// Package lsq - candidate-total search.

package lsq

import "fmt"

// Option configures Search via functional arguments.
type Option func(*Options)

// Options holds Search parameters.
type Options struct {
	// CandidateLimit is the largest total n that is tried.
	CandidateLimit int

	// OnCandidate is called after each candidate n is solved, with the raw
	// solution and whether it was valid.
	OnCandidate func(n int, x []float64, valid bool)

	err error
}

// DefaultOptions returns the package defaults with a no-op hook.
func DefaultOptions() Options {
	return Options{
		CandidateLimit: DefaultCandidateLimit,
		OnCandidate:    func(int, []float64, bool) {},
	}
}

// WithCandidateLimit sets the largest total tried. Must be >= 0.
func WithCandidateLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: CandidateLimit cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.CandidateLimit = n
	}
}

// WithOnCandidate registers a per-candidate callback.
func WithOnCandidate(fn func(n int, x []float64, valid bool)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnCandidate = fn
		}
	}
}

// Result of a successful Search.
//   - N: the accepted total press count; sum(X) == N.
//   - X: per-button press counts.
//   - Candidates: how many totals were tried, the accepted one included.
type Result struct {
	N          int
	X          []int64
	Candidates int
}

// Search walks candidate totals n = max(targets), max(targets)+1, ... and for
// each one solves the over-determined system "A x = targets, sum(x) = n" in
// the least-squares sense. The first n whose solution is Valid is returned.
//
// No total below max(targets) can work: one press raises any counter by at
// most one. The method is a heuristic; free variables are pinned to 0, so a
// rank-deficient system can miss solutions that exist.
//
// Errors:
//   - ErrBadShape when there are no buttons or a target is negative.
//   - ErrIterationCap when no candidate up to CandidateLimit is valid.
func Search(buttons []uint64, targets []int, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(buttons) == 0 {
		return nil, fmt.Errorf("lsq: Search: no buttons: %w", ErrBadShape)
	}
	lo := 0
	for i, t := range targets {
		if t < 0 {
			return nil, fmt.Errorf("lsq: Search: target %d is negative (%d): %w", i, t, ErrBadShape)
		}
		if t > lo {
			lo = t
		}
	}

	tried := 0
	for n := lo; n <= o.CandidateLimit; n++ {
		tried++
		axb := BuildSystem(n, buttons, targets)
		x, err := Solve(axb)
		if err != nil {
			return nil, err
		}
		ok := Valid(axb, x)
		o.OnCandidate(n, x, ok)
		if ok {
			return &Result{N: n, X: Round(x), Candidates: tried}, nil
		}
	}

	return nil, fmt.Errorf("lsq: Search: no valid total in [%d,%d]: %w", lo, o.CandidateLimit, ErrIterationCap)
}
