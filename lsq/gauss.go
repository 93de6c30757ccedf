// SPDX-License-Identifier: MIT

// Package lsq - Gaussian elimination with partial pivoting.

package lsq

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Eliminate reduces the augmented matrix m = [M | v] in place to reduced
// row-echelon form and returns the pivot column of each leading row.
//
// Implementation:
//   - Stage 1: walk coefficient columns left to right; choose the remaining
//     row with the largest |entry| (partial pivoting). Columns whose best
//     entry is within CleanupTolerance of zero are free and skipped.
//   - Stage 2: swap that row up, scale it so the pivot is 1, and zero the
//     column in every other row.
//   - Stage 3: snap entries within CleanupTolerance of an integer to it.
//
// Determinism:
//   - Fixed column order; ties in |entry| keep the first (lowest) row.
//
// Complexity:
//   - Time O(r·c·min(r,c)), no allocation.
func Eliminate(m *mat.Dense) []int {
	raw := m.RawMatrix()
	rows, cols, stride := raw.Rows, raw.Cols, raw.Stride
	data := raw.Data
	at := func(i, j int) *float64 { return &data[i*stride+j] }

	pivots := make([]int, 0, rows)
	next := 0
	for c := 0; c < cols-1 && next < rows; c++ {
		p := -1
		best := CleanupTolerance
		for r := next; r < rows; r++ {
			if v := math.Abs(*at(r, c)); v > best {
				best, p = v, r
			}
		}
		if p < 0 {
			continue
		}
		if p != next {
			for j := 0; j < cols; j++ {
				*at(p, j), *at(next, j) = *at(next, j), *at(p, j)
			}
		}
		if inv := 1 / *at(next, c); inv != 1 {
			for j := 0; j < cols; j++ {
				*at(next, j) *= inv
			}
		}
		for r := 0; r < rows; r++ {
			if r == next {
				continue
			}
			f := *at(r, c)
			if f == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				*at(r, j) -= f * *at(next, j)
			}
		}
		pivots = append(pivots, c)
		next++
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := at(i, j)
			if r := math.Round(*v); math.Abs(*v-r) < CleanupTolerance {
				*v = r + 0 // also folds -0 into +0
			}
		}
	}

	return pivots
}

// Solve solves the least-squares problem for [A | b] through the normal
// equations AᵀA x = Aᵀb. Free variables of a rank-deficient system are 0.
func Solve(axb *mat.Dense) ([]float64, error) {
	ne, err := NormalEquations(axb)
	if err != nil {
		return nil, err
	}
	k, _ := ne.Dims()
	pivots := Eliminate(ne)

	x := make([]float64, k)
	for r, c := range pivots {
		x[c] = ne.At(r, k)
	}

	return x, nil
}

// Valid reports whether x is a usable press vector for [A | b]: every
// component rounds to a non-negative integer within ValidityTolerance, and
// every residual of A·x - b is within ValidityTolerance.
func Valid(axb *mat.Dense, x []float64) bool {
	for _, v := range x {
		r := math.Round(v)
		if r < 0 || math.Abs(v-r) > ValidityTolerance {
			return false
		}
	}
	res, err := Residuals(axb, x)
	if err != nil {
		return false
	}
	for _, e := range res {
		if math.Abs(e) > ValidityTolerance {
			return false
		}
	}

	return true
}

// Round converts a valid solution to integer press counts.
func Round(x []float64) []int64 {
	out := make([]int64, len(x))
	for i, v := range x {
		out[i] = int64(math.Round(v))
	}

	return out
}
