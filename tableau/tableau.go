// SPDX-License-Identifier: MIT

// Package tableau - row-major integer storage and safe accessors.
//
// Purpose:
//   - Provide one contiguous buffer with the explicit index formula i*cols + j,
//     so a whole simplex tableau lives in a single allocation.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Shrink only by copying (Induced), never by resizing rows in place.
//
// Complexity quicksheet:
//   - New: O(r*c) zero-init; At/Set/Row: O(1); Clone/Induced: O(r'*c').

package tableau

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ctxAt     = "At"
	ctxSet    = "Set"
	ctxInduce = "Induced"
)

// tableauErrorf wraps an error with a uniform method context and coordinates.
func tableauErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Tableau.%s(%d,%d): %w", method, row, col, err)
}

// Tableau is a dense row-major matrix of int64 values.
//   - r,c hold dimensions.
//   - data is a flat buffer of length r*c (offset = i*c + j).
type Tableau struct {
	r, c int
	data []int64
}

var _ fmt.Stringer = (*Tableau)(nil)

// New creates an r×c zero tableau.
//
// Errors:
//   - ErrBadShape when rows<=0 or cols<=0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func New(rows, cols int) (*Tableau, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("tableau: New(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Tableau{r: rows, c: cols, data: make([]int64, rows*cols)}, nil
}

// FromRows copies a rectangular [][]int64 into a new Tableau.
// Returns ErrBadShape for empty or ragged input.
func FromRows(rows [][]int64) (*Tableau, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("tableau: FromRows: empty input: %w", ErrBadShape)
	}
	t, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != t.c {
			return nil, fmt.Errorf("tableau: FromRows: row %d has %d cols, want %d: %w", i, len(row), t.c, ErrBadShape)
		}
		copy(t.data[i*t.c:], row)
	}

	return t, nil
}

// Rows returns the number of rows.
func (t *Tableau) Rows() int { return t.r }

// Cols returns the number of columns.
func (t *Tableau) Cols() int { return t.c }

// Shape returns (rows, cols).
func (t *Tableau) Shape() (rows, cols int) { return t.r, t.c }

func (t *Tableau) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= t.r || col < 0 || col >= t.c {
		return 0, tableauErrorf(method, row, col, ErrOutOfRange)
	}

	return row*t.c + col, nil
}

// At retrieves the element at (row, col) or ErrOutOfRange.
func (t *Tableau) At(row, col int) (int64, error) {
	idx, err := t.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return t.data[idx], nil
}

// Set assigns v at (row, col) or returns ErrOutOfRange.
func (t *Tableau) Set(row, col int, v int64) error {
	idx, err := t.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	t.data[idx] = v

	return nil
}

// Row returns row i as a slice aliasing the backing buffer.
// Writes through the slice mutate the tableau. Panics if i is out of range,
// like any slice index; hot loops use it after validating shape once.
func (t *Tableau) Row(i int) []int64 {
	return t.data[i*t.c : (i+1)*t.c : (i+1)*t.c]
}

// Clone returns an independent deep copy.
func (t *Tableau) Clone() *Tableau {
	cp := make([]int64, len(t.data))
	copy(cp, t.data)

	return &Tableau{r: t.r, c: t.c, data: cp}
}

// Induced materializes the submatrix at the given row and column index lists
// into a fresh buffer. Order is preserved and duplicates are allowed.
//
// Errors:
//   - ErrBadShape when either index list is empty.
//   - ErrOutOfRange when an index is outside the source bounds.
//
// Complexity:
//   - Time O(rp*cp), Space O(rp*cp).
func (t *Tableau) Induced(rowsIdx, colsIdx []int) (*Tableau, error) {
	res, err := New(len(rowsIdx), len(colsIdx))
	if err != nil {
		return nil, err
	}
	cp := len(colsIdx)
	for i, ri := range rowsIdx {
		if ri < 0 || ri >= t.r {
			return nil, fmt.Errorf("Tableau.%s: row index %d: %w", ctxInduce, ri, ErrOutOfRange)
		}
		for j, cj := range colsIdx {
			if cj < 0 || cj >= t.c {
				return nil, fmt.Errorf("Tableau.%s: col index %d: %w", ctxInduce, cj, ErrOutOfRange)
			}
			res.data[i*cp+j] = t.data[ri*t.c+cj]
		}
	}

	return res, nil
}

// String renders one bracketed row per line, for diagnostics.
func (t *Tableau) String() string {
	var b strings.Builder
	for i := 0; i < t.r; i++ {
		b.WriteByte('[')
		for j, v := range t.Row(i) {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatInt(v, 10))
		}
		b.WriteString("]\n")
	}

	return b.String()
}
