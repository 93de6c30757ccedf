// Package tally - branch-and-bound over the exact LP relaxation.
//
// Search:
//   - Each node solves the LP with the node's bound set from scratch (no
//     warm start), so a node is a pure function of its bounds.
//   - A button carries at most one x ≤ hi and one x ≥ lo bound; branching
//     tightens the existing bound instead of stacking another row.
//   - Prune when the node is infeasible or ⌈LP⌉ ≥ incumbent: every integer
//     press vector has an integer total, so ⌈LP⌉ is an admissible bound.
//   - Branch on the first fractional button x_j = v:
//     x_j ≤ ⌊v⌋ first, then x_j ≥ ⌈v⌉. Both children exclude v, and every
//     x_j is bounded by its smallest wired target, so the tree is finite.
//
// Complexity:
//   - Worst case exponential in the number of buttons; per node one two-phase
//     simplex on at most counters + 2·buttons constraint rows.

package tally

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// solveLP is the per-node relaxation; tests swap it to inject failures.
var solveLP = relax

// bbEngine holds the search policy, the incumbent and the node counter.
type bbEngine struct {
	buttons []uint64
	targets []int
	limit   int // pivot cap per phase
	maxNode int
	log     *zap.Logger

	nodes int

	found     bool
	bestTotal int64
	bestX     []int64
}

// recordBest commits a new incumbent.
func (e *bbEngine) recordBest(lp *Relaxation) {
	x := make([]int64, len(lp.Values))
	var total int64
	for j, v := range lp.Values {
		x[j] = v.Floor()
		total += x[j]
	}
	if e.found && total >= e.bestTotal {
		return
	}
	e.found, e.bestTotal, e.bestX = true, total, x
	e.log.Debug("tally: incumbent", zap.Int64("total", total), zap.Int("node", e.nodes))
}

// dfs explores the subtree under bounds.
func (e *bbEngine) dfs(bounds []bound) error {
	e.nodes++
	if e.nodes > e.maxNode {
		return fmt.Errorf("tally: %d branch-and-bound nodes: %w", e.maxNode, ErrIterationCap)
	}

	lp, err := solveLP(e.buttons, e.targets, bounds, e.limit)
	if errors.Is(err, ErrInfeasible) {
		return nil
	}
	if err != nil {
		return err
	}
	if e.found && lp.Objective.Ceil() >= e.bestTotal {
		return nil
	}

	j := firstFractional(lp.Values)
	if j < 0 {
		e.recordBest(lp)
		return nil
	}

	v := lp.Values[j]
	lo := bound{button: j, kind: atMost, value: v.Floor()}
	hi := bound{button: j, kind: atLeast, value: v.Floor() + 1}
	e.log.Debug("tally: branch",
		zap.Int("node", e.nodes),
		zap.Int("bounds", len(bounds)),
		zap.Stringer("lp", lp.Objective),
		zap.Int("button", j),
		zap.Stringer("value", v))

	if err = e.dfs(withBound(bounds, lo)); err != nil {
		return err
	}

	return e.dfs(withBound(bounds, hi))
}

// withBound returns a copy of bounds with nb in place of the button's bound of
// the same kind, or appended when there is none. The branching value always
// lies inside the current bound, so replacing never loosens it.
func withBound(bounds []bound, nb bound) []bound {
	out := make([]bound, len(bounds), len(bounds)+1)
	copy(out, bounds)
	for i, b := range out {
		if b.button == nb.button && b.kind == nb.kind {
			out[i] = nb
			return out
		}
	}

	return append(out, nb)
}

// firstFractional returns the lowest index with a non-integral value, or -1.
func firstFractional(vals []Fraction) int {
	for j, v := range vals {
		if !v.IsInt() {
			return j
		}
	}

	return -1
}

// branchAndBound returns the minimum-total integer press vector.
func branchAndBound(buttons []uint64, targets []int, o Options) (*Result, error) {
	e := bbEngine{
		buttons: buttons,
		targets: targets,
		limit:   o.PivotLimit,
		maxNode: o.NodeLimit,
		log:     o.Logger,
	}
	if err := e.dfs(nil); err != nil {
		return nil, err
	}
	if !e.found {
		return nil, ErrInfeasible
	}

	return &Result{
		Total:   e.bestTotal,
		Presses: e.bestX,
		Method:  MethodTableau,
		Nodes:   e.nodes,
	}, nil
}

// feasibleOnly solves the root LP and accepts it only when integral. name maps
// a column to the button index reported in the error.
func feasibleOnly(buttons []uint64, targets []int, o Options, name []int) (*Result, error) {
	lp, err := solveLP(buttons, targets, nil, o.PivotLimit)
	if err != nil {
		return nil, err
	}
	if j := firstFractional(lp.Values); j >= 0 {
		return nil, fmt.Errorf("%w: x%d = %s (LP total %s)", ErrNonIntegerSolution, name[j], lp.Values[j], lp.Objective)
	}
	res := &Result{Method: MethodTableau, Nodes: 1, Presses: make([]int64, len(lp.Values))}
	for j, v := range lp.Values {
		res.Presses[j] = v.Floor()
		res.Total += res.Presses[j]
	}

	return res, nil
}
