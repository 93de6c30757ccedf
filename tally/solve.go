package tally

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/togglenet/device"
	"github.com/katalvlaran/togglenet/lsq"
	"github.com/katalvlaran/togglenet/tableau"
)

// Solve returns the fewest total presses whose per-counter hit counts equal
// targets exactly; button j adds one to counter i when bit i of buttons[j]
// is set.
//
// Dispatch by Options.Method:
//   - MethodTableau: exact two-phase simplex, then branch-and-bound (or the
//     feasibility-only check when BranchAndBound is off).
//   - MethodLeastSquares: lsq.Search; the result is Approximate.
//   - MethodAuto: MethodTableau, falling back to MethodLeastSquares on
//     ErrIterationCap or tableau.ErrOverflow.
//
// Errors: ErrBadInput, ErrInfeasible, ErrNonIntegerSolution, ErrIterationCap
// (wrapping lsq.ErrIterationCap when the fallback also gives up),
// ErrOptionViolation.
func Solve(buttons []uint64, targets []int, opts ...Option) (*Result, error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	if err = validate(targets); err != nil {
		return nil, err
	}

	switch o.Method {
	case MethodTableau:
		return exact(buttons, targets, o)
	case MethodLeastSquares:
		return leastSquares(buttons, targets, o)
	}

	res, err := exact(buttons, targets, o)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, ErrIterationCap) && !errors.Is(err, tableau.ErrOverflow) {
		return nil, err
	}
	o.Logger.Warn("tally: exact solver gave up, using least squares",
		zap.Int("buttons", len(buttons)),
		zap.Int("counters", len(targets)),
		zap.Error(err))

	return leastSquares(buttons, targets, o)
}

// SolveDevice runs Solve on the device's buttons and joltage counters.
func SolveDevice(d device.Device, opts ...Option) (*Result, error) {
	return Solve(d.Buttons(), d.Joltage(), opts...)
}

// exact solves over the distinct button masks and spreads the answer back:
// identical buttons are interchangeable, so each group's presses go to its
// first member.
func exact(buttons []uint64, targets []int, o Options) (*Result, error) {
	unique, first := mergeButtons(buttons)

	var (
		res *Result
		err error
	)
	if o.BranchAndBound {
		res, err = branchAndBound(unique, targets, o)
	} else {
		res, err = feasibleOnly(unique, targets, o, first)
	}
	if err != nil {
		return nil, err
	}

	presses := make([]int64, len(buttons))
	for u, j := range first {
		presses[j] = res.Presses[u]
	}
	res.Presses = presses
	o.Logger.Debug("tally: exact solve",
		zap.Int("buttons", len(buttons)),
		zap.Int("distinct", len(unique)),
		zap.Int("nodes", res.Nodes))

	return res, nil
}

// mergeButtons returns the distinct masks in first-seen order and the original
// index of each.
func mergeButtons(buttons []uint64) (unique []uint64, first []int) {
	seen := make(map[uint64]struct{}, len(buttons))
	for j, b := range buttons {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		unique = append(unique, b)
		first = append(first, j)
	}

	return unique, first
}

func leastSquares(buttons []uint64, targets []int, o Options) (*Result, error) {
	var lopts []lsq.Option
	if o.CandidateLimit > 0 {
		lopts = append(lopts, lsq.WithCandidateLimit(o.CandidateLimit))
	}
	lopts = append(lopts, lsq.WithOnCandidate(func(n int, x []float64, valid bool) {
		o.Logger.Debug("tally: lsq candidate", zap.Int("n", n), zap.Float64s("x", x), zap.Bool("valid", valid))
	}))

	res, err := lsq.Search(buttons, targets, lopts...)
	switch {
	case errors.Is(err, lsq.ErrIterationCap):
		return nil, fmt.Errorf("%w: %w", ErrIterationCap, err)
	case errors.Is(err, lsq.ErrBadShape):
		return nil, fmt.Errorf("%w: %w", ErrBadInput, err)
	case err != nil:
		return nil, err
	}

	return &Result{
		Total:       int64(res.N),
		Presses:     res.X,
		Method:      MethodLeastSquares,
		Approximate: true,
	}, nil
}
