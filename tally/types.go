// Package tally - options, sentinel errors and result types.

package tally

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/togglenet/tableau"
)

// Sentinel errors.
var (
	// ErrIterationCap is returned when a pivot, node or candidate limit is hit
	// before an answer is proven. In MethodAuto it triggers the fallback.
	ErrIterationCap = errors.New("tally: iteration cap exceeded")

	// ErrInfeasible is returned when no non-negative press vector reaches the
	// targets (Phase 1 ends with a positive artificial objective).
	ErrInfeasible = errors.New("tally: targets unreachable")

	// ErrNonIntegerSolution is returned in feasibility-only mode when the LP
	// optimum is fractional.
	ErrNonIntegerSolution = errors.New("tally: LP optimum is not integral")

	// ErrUnbounded is returned when an entering column has no positive entry.
	// Press totals are bounded below, so this indicates a corrupted tableau.
	ErrUnbounded = errors.New("tally: objective unbounded")

	// ErrBadInput is returned for negative targets.
	ErrBadInput = errors.New("tally: invalid input")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("tally: invalid option supplied")
)

// DefaultNodeLimit bounds the number of branch-and-bound nodes.
const DefaultNodeLimit = 100000

// Method selects the solving strategy.
type Method int

const (
	// MethodAuto runs the exact tableau solver and falls back to least squares
	// on ErrIterationCap or integer overflow.
	MethodAuto Method = iota
	// MethodTableau runs only the exact tableau solver.
	MethodTableau
	// MethodLeastSquares runs only the least-squares candidate search.
	MethodLeastSquares
)

// String returns the flag/config spelling of m.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodTableau:
		return "tableau"
	case MethodLeastSquares:
		return "lsq"
	default:
		return "Method(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMethod converts "auto", "tableau" or "lsq" (also "least-squares"), in
// any case, to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return MethodAuto, nil
	case "tableau", "simplex":
		return MethodTableau, nil
	case "lsq", "least-squares":
		return MethodLeastSquares, nil
	default:
		return MethodAuto, fmt.Errorf("%w: unknown method %q", ErrOptionViolation, s)
	}
}

// Option configures Solve via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds solver parameters.
type Options struct {
	Method Method

	// PivotLimit caps the pivots of each simplex phase. 0 derives the cap from
	// the tableau size: 2·(structural + constraint rows) + 1.
	PivotLimit int

	// NodeLimit caps the branch-and-bound nodes.
	NodeLimit int

	// BranchAndBound enables integer search. When false, only the root LP is
	// solved and a fractional optimum is ErrNonIntegerSolution.
	BranchAndBound bool

	// CandidateLimit is forwarded to the least-squares search; 0 keeps its default.
	CandidateLimit int

	Logger *zap.Logger

	err error
}

// DefaultOptions returns the package defaults.
func DefaultOptions() Options {
	return Options{
		Method:         MethodAuto,
		NodeLimit:      DefaultNodeLimit,
		BranchAndBound: true,
		Logger:         zap.NewNop(),
	}
}

// WithMethod selects the solving strategy.
func WithMethod(m Method) Option {
	return func(o *Options) {
		if m < MethodAuto || m > MethodLeastSquares {
			o.err = fmt.Errorf("%w: unknown method %d", ErrOptionViolation, int(m))
			return
		}
		o.Method = m
	}
}

// WithPivotLimit sets a fixed per-phase pivot cap. 0 restores the derived cap.
func WithPivotLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: PivotLimit cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.PivotLimit = n
	}
}

// WithNodeLimit sets the branch-and-bound node cap. Must be > 0.
func WithNodeLimit(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: NodeLimit must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.NodeLimit = n
	}
}

// WithBranchAndBound toggles integer search over the LP relaxation.
func WithBranchAndBound(on bool) Option {
	return func(o *Options) {
		o.BranchAndBound = on
	}
}

// WithCandidateLimit bounds the least-squares candidate totals.
func WithCandidateLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: CandidateLimit cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.CandidateLimit = n
	}
}

// WithLogger sets the logger for fallback and branching diagnostics.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Fraction is an exact non-negative rational Num/Den with Den > 0, kept in
// lowest terms.
type Fraction struct {
	Num, Den int64
}

func newFraction(num, den int64) Fraction {
	if den < 0 {
		num, den = -num, -den
	}
	if g := tableau.GCD(num, den); g > 1 {
		num, den = num/g, den/g
	}

	return Fraction{Num: num, Den: den}
}

// IsInt reports whether f is a whole number.
func (f Fraction) IsInt() bool { return f.Num%f.Den == 0 }

// Floor returns ⌊f⌋ for f >= 0.
func (f Fraction) Floor() int64 { return f.Num / f.Den }

// Ceil returns ⌈f⌉ for f >= 0.
func (f Fraction) Ceil() int64 { return (f.Num + f.Den - 1) / f.Den }

// Float64 returns the nearest float64.
func (f Fraction) Float64() float64 { return float64(f.Num) / float64(f.Den) }

func (f Fraction) String() string {
	if f.Den == 1 {
		return strconv.FormatInt(f.Num, 10)
	}

	return strconv.FormatInt(f.Num, 10) + "/" + strconv.FormatInt(f.Den, 10)
}

// Relaxation is the exact optimum of the LP relaxation.
//   - Objective: minimum total presses over real x >= 0.
//   - Values: per-button optimum (non-basic buttons are 0).
//   - Pivots: pivots spent across both phases.
type Relaxation struct {
	Objective Fraction
	Values    []Fraction
	Pivots    int
}

// Result of a successful Solve.
//   - Total: sum(Presses).
//   - Presses: per-button press counts reproducing the targets exactly.
//   - Method: the strategy that produced the answer (never MethodAuto).
//   - Approximate: true when the least-squares path answered; minimality is
//     then not proven.
//   - Nodes: branch-and-bound nodes explored (0 for least squares).
type Result struct {
	Total       int64
	Presses     []int64
	Method      Method
	Approximate bool
	Nodes       int
}
