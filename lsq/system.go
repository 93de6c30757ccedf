// SPDX-License-Identifier: MIT

// Package lsq - augmented systems and normal equations.

package lsq

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	// CleanupTolerance: entries within this distance of an integer are snapped
	// to it after elimination.
	CleanupTolerance = 1e-9

	// ValidityTolerance: a solution component must be this close to an
	// integer, and every residual this close to zero.
	ValidityTolerance = 1e-4

	// DefaultCandidateLimit is the largest total press count Search tries.
	DefaultCandidateLimit = 200
)

var (
	// ErrBadShape is returned for systems without unknowns or with mismatched sizes.
	ErrBadShape = errors.New("lsq: invalid system shape")

	// ErrIterationCap is returned when no candidate total up to the limit
	// produced a valid solution.
	ErrIterationCap = errors.New("lsq: candidate limit exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("lsq: invalid option supplied")
)

// BuildSystem returns the augmented matrix [A | b] for a candidate total n.
//
// Layout ((m+1) × (k+1) for m counters and k buttons):
//   - row i < m:  A[i][j] = 1 when button j is wired to counter i; b[i] = targets[i].
//   - row m:      all ones; b[m] = n, forcing sum(x) == n.
func BuildSystem(n int, buttons []uint64, targets []int) *mat.Dense {
	m, k := len(targets), len(buttons)
	axb := mat.NewDense(m+1, k+1, nil)
	for j, b := range buttons {
		for i := 0; i < m; i++ {
			if b>>uint(i)&1 == 1 {
				axb.Set(i, j, 1)
			}
		}
		axb.Set(m, j, 1)
	}
	for i, t := range targets {
		axb.Set(i, k, float64(t))
	}
	axb.Set(m, k, float64(n))

	return axb
}

// NormalEquations forms the k × (k+1) augmented system [AᵀA | Aᵀb] from [A | b].
func NormalEquations(axb *mat.Dense) (*mat.Dense, error) {
	r, c := axb.Dims()
	k := c - 1
	if k < 1 {
		return nil, fmt.Errorf("lsq: NormalEquations on %dx%d: %w", r, c, ErrBadShape)
	}
	a := axb.Slice(0, r, 0, k)
	b := axb.Slice(0, r, k, c)

	var ata, atb mat.Dense
	ata.Mul(a.T(), a)
	atb.Mul(a.T(), b)

	var out mat.Dense
	out.Augment(&ata, &atb)

	return &out, nil
}

// Residuals returns A·x - b for the augmented system [A | b].
func Residuals(axb *mat.Dense, x []float64) ([]float64, error) {
	r, c := axb.Dims()
	if len(x) != c-1 {
		return nil, fmt.Errorf("lsq: %d unknowns, got %d values: %w", c-1, len(x), ErrBadShape)
	}
	res := make([]float64, r)
	for i := 0; i < r; i++ {
		var s float64
		for j, xj := range x {
			s += axb.At(i, j) * xj
		}
		res[i] = s - axb.At(i, c-1)
	}

	return res, nil
}
