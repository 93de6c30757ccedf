// Package tableau provides the exact integer tableau used by the tally solver's
// simplex passes.
//
// The tableau is a single row-major []int64 buffer. Pivot performs
// fraction-free elimination (exact quotient when possible, cross-multiplication
// otherwise) and divides every touched row by the gcd of its entries to keep
// coefficients small. MinRatioRow implements the minimum-ratio leaving-row
// test with exact comparisons. All arithmetic is overflow-checked and reports
// ErrOverflow rather than wrapping.
//
// Tableaus are never resized in place; Induced copies the rows and columns that
// survive a simplification step into a new buffer.
package tableau
