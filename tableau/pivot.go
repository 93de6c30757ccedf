// SPDX-License-Identifier: MIT

// Package tableau - exact integer pivoting.
//
// Rows are kept in fraction-free form: a basic variable's value is
// rhs / coefficient of its own row, never a stored rational. Every row update
// scales rows only by positive factors, so the sign of each row is meaningful
// (objective rows keep their "positive coefficient improves" convention and
// constraint rows keep a non-negative right-hand side).

package tableau

import (
	"fmt"
	"math"
)

// Pivot eliminates column c from every row except r, using T[r][c] as the
// pivot element.
//
// Implementation:
//   - Stage 1: a negative pivot element is made positive by negating row r
//     (the same equation); this is only feasibility-preserving when row r's
//     right-hand side is zero, which is the caller's concern.
//   - Stage 2: for each other row i with a = T[i][c] != 0:
//     if p divides a: row_i -= (a/p)·row_r;
//     otherwise:      row_i  = p·row_i - a·row_r (cross-multiplication).
//   - Stage 3: every touched row, and row r, is divided by the gcd of its entries.
//
// Errors:
//   - ErrOutOfRange for bad indices, ErrZeroPivot for T[r][c] == 0,
//     ErrOverflow when an intermediate leaves the int64 range (the tableau
//     is left partially updated and must be discarded).
//
// Complexity:
//   - Time O(r*c).
func (t *Tableau) Pivot(r, c int) error {
	if r < 0 || r >= t.r || c < 0 || c >= t.c {
		return tableauErrorf("Pivot", r, c, ErrOutOfRange)
	}
	prow := t.Row(r)
	if prow[c] == 0 {
		return tableauErrorf("Pivot", r, c, ErrZeroPivot)
	}
	if prow[c] < 0 {
		for j := range prow {
			prow[j] = -prow[j]
		}
	}
	p := prow[c]

	var i, j int
	for i = 0; i < t.r; i++ {
		if i == r {
			continue
		}
		row := t.Row(i)
		a := row[c]
		if a == 0 {
			continue
		}
		if a%p == 0 {
			q := a / p
			for j = range row {
				v, ok := mulSub(row[j], 1, q, prow[j])
				if !ok {
					return fmt.Errorf("Tableau.Pivot(%d,%d): row %d: %w", r, c, i, ErrOverflow)
				}
				row[j] = v
			}
		} else {
			for j = range row {
				v, ok := mulSub(row[j], p, a, prow[j])
				if !ok {
					return fmt.Errorf("Tableau.Pivot(%d,%d): row %d: %w", r, c, i, ErrOverflow)
				}
				row[j] = v
			}
		}
		t.NormalizeRow(i)
	}
	t.NormalizeRow(r)

	return nil
}

// NormalizeRow divides row i by the gcd of its entries. A zero row is left
// untouched. Signs are preserved because the divisor is positive.
func (t *Tableau) NormalizeRow(i int) {
	row := t.Row(i)
	var g int64
	for _, v := range row {
		g = gcd(g, abs(v))
		if g == 1 {
			return
		}
	}
	if g <= 1 {
		return
	}
	for j := range row {
		row[j] /= g
	}
}

// MinRatioRow runs the minimum-ratio test on column c over rows [from, Rows()).
// Only rows with a strictly positive entry in c compete; their ratio is
// rhs / T[row][c] with rhs in the last column, compared exactly by
// cross-multiplication. Ties go to the row with the smaller tie(row) key.
// ok is false when no row has a positive entry.
func (t *Tableau) MinRatioRow(c, from int, tie func(row int) int) (row int, ok bool, err error) {
	if c < 0 || c >= t.c || from < 0 || from > t.r {
		return 0, false, tableauErrorf("MinRatioRow", from, c, ErrOutOfRange)
	}
	rhs := t.c - 1
	best := -1
	var bestNum, bestDen int64
	for i := from; i < t.r; i++ {
		den := t.data[i*t.c+c]
		if den <= 0 {
			continue
		}
		num := t.data[i*t.c+rhs]
		if best < 0 {
			best, bestNum, bestDen = i, num, den
			continue
		}
		// num/den < bestNum/bestDen  <=>  num*bestDen < bestNum*den (dens > 0).
		lhs, ok1 := mul(num, bestDen)
		rhsv, ok2 := mul(bestNum, den)
		if !ok1 || !ok2 {
			return 0, false, fmt.Errorf("Tableau.MinRatioRow(col %d): %w", c, ErrOverflow)
		}
		if lhs < rhsv || (lhs == rhsv && tie != nil && tie(i) < tie(best)) {
			best, bestNum, bestDen = i, num, den
		}
	}
	if best < 0 {
		return 0, false, nil
	}

	return best, true, nil
}

// mulSub returns x*a - y*b with overflow detection.
func mulSub(x, a, y, b int64) (int64, bool) {
	l, ok := mul(x, a)
	if !ok {
		return 0, false
	}
	r, ok := mul(y, b)
	if !ok {
		return 0, false
	}
	d := l - r
	// Signed subtraction overflows iff the operands differ in sign and the
	// result's sign differs from l.
	if (l >= 0) != (r >= 0) && (d >= 0) != (l >= 0) {
		return 0, false
	}

	return d, true
}

// mul returns a*b with overflow detection.
func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}

	return p, true
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

// GCD returns the greatest common divisor of |a| and |b|; GCD(0,0) == 0.
func GCD(a, b int64) int64 { return gcd(abs(a), abs(b)) }

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
