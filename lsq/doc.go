// Package lsq is the floating-point fallback for the target-tally problem.
//
// What:
//
//	For a candidate total n it builds the augmented system
//
//	    [ A | targets ]      A[i][j] = 1 if button j feeds counter i
//	    [ 1 |    n    ]      one extra row forcing sum(x) == n
//
//	forms the normal equations AᵀA x = Aᵀb, reduces them by Gaussian
//	elimination with partial pivoting, and accepts x when it is non-negative,
//	integral within ValidityTolerance and reproduces b within the same slack.
//	Search tries n upward from the largest target.
//
// Why:
//
//   - The exact tableau solver can hit its pivot or overflow limits on
//     degenerate inputs; this path always terminates within CandidateLimit.
//   - Answers are flagged approximate by callers: free variables are fixed at
//     0, so the first valid n is not proven minimal.
//
// Complexity:
//
//   - One candidate: O(m·k² + k³) for m counters and k buttons.
//   - Search: at most CandidateLimit - max(targets) + 1 candidates.
//
// Errors:
//
//   - ErrBadShape, ErrIterationCap, ErrOptionViolation.
//
// Storage is gonum mat.Dense; Eliminate works directly on its raw row-major
// buffer.
package lsq
