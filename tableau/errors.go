// SPDX-License-Identifier: MIT
// Package tableau: sentinel error set.
// Every message is prefixed with "tableau: ..." so it greps cleanly in logs.
// Callers match with errors.Is; context is added with fmt.Errorf("...: %w", ErrX).

package tableau

import "errors"

var (
	// ErrBadShape is returned when requested dimensions are non-positive or an
	// input row set is ragged.
	ErrBadShape = errors.New("tableau: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	// Public indexers (At/Set) return this instead of panicking.
	ErrOutOfRange = errors.New("tableau: index out of range")

	// ErrZeroPivot is returned when Pivot is asked to pivot on a zero element.
	ErrZeroPivot = errors.New("tableau: zero pivot element")

	// ErrOverflow signals that exact integer row arithmetic left the int64 range.
	ErrOverflow = errors.New("tableau: integer overflow")
)
