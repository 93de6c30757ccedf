// Package tally finds the fewest total button presses that drive every
// counter of a device to its exact target.
//
// What:
//
//	Button j adds one to each counter it is wired to. With A[i][j] = 1 for
//	those pairs, the problem is the integer program
//
//	    minimize  sum(x)   s.t.   A x = targets,   x ∈ ℕᵏ.
//
// How:
//
//  1. Relax: two-phase simplex on an exact int64 tableau (package tableau).
//     Phase 1 minimizes the sum of artificials; Bland's rule (lowest entering
//     column, ties on the ratio test to the lowest basic column) prevents
//     cycling. Leftover artificials are pivoted out, redundant rows dropped,
//     and Phase 2 minimizes the press total on the reduced tableau.
//  2. Branch-and-bound on the first fractional button, x ≤ ⌊v⌋ before
//     x ≥ ⌈v⌉, pruning on ⌈LP⌉ ≥ incumbent. Buttons with identical wiring are
//     merged first and their presses reported on the first of them.
//  3. MethodAuto falls back to the least-squares search in package lsq when
//     a pivot/node cap or int64 overflow stops the exact path; such results
//     carry Approximate = true.
//
// Options:
//
//	WithMethod, WithPivotLimit, WithNodeLimit, WithBranchAndBound,
//	WithCandidateLimit, WithLogger.
//
// Errors:
//
//   - ErrInfeasible: no non-negative integer x meets the targets.
//   - ErrNonIntegerSolution: feasibility-only mode met a fractional optimum.
//   - ErrIterationCap: every enabled method hit its cap.
//   - ErrBadInput, ErrOptionViolation, ErrUnbounded.
//
// Complexity:
//
//   - One LP: a handful of O(rows·cols) pivots in practice.
//   - Branch-and-bound: exponential in the worst case, bounded by NodeLimit.
//
// Everything is synchronous and allocation-local; concurrent calls on
// different inputs need no coordination.
package tally
