// Package tally - two-phase exact simplex over a fraction-free tableau.
//
// Phase 1 layout (rows × cols):
//
//	row 0      W  (sum of artificials, to be driven to zero)
//	row 1      Z  (total presses)
//	row 2..    one per counter, then one per branching bound
//
//	col 0 W | col 1 Z | structural (buttons, then bound slacks) | artificials | rhs
//
// Objective rows use "positive coefficient improves": raising a non-basic
// column with a positive entry lowers W (Phase 1) or Z (Phase 2). A row's
// value is rhs / coefficient of its own basic column.
//
// After Phase 1 the W row/column, the artificial columns and any redundant
// constraint rows are cut away with Induced, leaving
//
//	row 0 Z | rows 1.. constraints    and    col 0 Z | structural | rhs

package tally

import (
	"fmt"

	"github.com/katalvlaran/togglenet/tableau"
)

const (
	rowW = 0
	rowZ = 1
	colW = 0
	colZ = 1

	// first structural column / first constraint row in the Phase 1 layout.
	firstStructural = 2
	firstConstraint = 2
)

type boundKind int8

const (
	atMost  boundKind = iota // x ≤ value, slack +1
	atLeast                  // x ≥ value, slack -1
)

// bound restricts one button's press count; it adds a constraint row and a
// slack column to the program.
type bound struct {
	button int
	kind   boundKind
	value  int64
}

func (b bound) String() string {
	if b.kind == atMost {
		return fmt.Sprintf("x%d<=%d", b.button, b.value)
	}

	return fmt.Sprintf("x%d>=%d", b.button, b.value)
}

// program is one LP: the tableau plus its basis bookkeeping.
type program struct {
	k          int // buttons
	structural int // buttons + bound slacks
	t          *tableau.Tableau
	basis      []int // basic column per row; -1 for objective rows
	limit      int   // fixed pivot cap, 0 = derived
	pivots     int
}

// newProgram lays out the Phase 1 tableau for
//
//	minimize sum(x)  s.t.  A x = targets,  bounds,  x >= 0.
func newProgram(buttons []uint64, targets []int, bounds []bound, limit int) (*program, error) {
	k, m := len(buttons), len(targets)
	cons := m + len(bounds)
	s := k + len(bounds)
	rows, cols := firstConstraint+cons, firstStructural+s+cons+1
	t, err := tableau.New(rows, cols)
	if err != nil {
		return nil, err
	}
	rhs := cols - 1
	art := firstStructural + s

	p := &program{k: k, structural: s, t: t, basis: make([]int, rows), limit: limit}
	p.basis[rowW], p.basis[rowZ] = -1, -1

	z := t.Row(rowZ)
	z[colZ] = 1
	for j := 0; j < k; j++ {
		z[firstStructural+j] = -1
	}

	for i := 0; i < m; i++ {
		r := firstConstraint + i
		row := t.Row(r)
		for j, b := range buttons {
			if b>>uint(i)&1 == 1 {
				row[firstStructural+j] = 1
			}
		}
		row[art+i] = 1
		row[rhs] = int64(targets[i])
		p.basis[r] = art + i
	}
	for q, bd := range bounds {
		i := m + q
		r := firstConstraint + i
		row := t.Row(r)
		row[firstStructural+bd.button] = 1
		if bd.kind == atMost {
			row[firstStructural+k+q] = 1
		} else {
			row[firstStructural+k+q] = -1
		}
		row[art+i] = 1
		row[rhs] = bd.value
		p.basis[r] = art + i
	}

	// W = sum(b) - sum_j colsum_j·x_j, expressed in the non-basic structurals.
	w := t.Row(rowW)
	w[colW] = 1
	for r := firstConstraint; r < rows; r++ {
		row := t.Row(r)
		for j := firstStructural; j < art; j++ {
			w[j] += row[j]
		}
		w[rhs] += row[rhs]
	}

	return p, nil
}

// capFor returns the pivot cap of one phase.
func (p *program) capFor(constraintRows int) int {
	if p.limit > 0 {
		return p.limit
	}

	return 2*(p.structural+constraintRows) + 1
}

// optimize pivots on objective row obj with Bland's rule until no column in
// [lo, hi) has a positive objective entry, or done reports true.
//
// Entering: the lowest column with a positive objective entry.
// Leaving:  minimum ratio over rows [from, Rows()), ties to the lowest basic column.
func (p *program) optimize(obj, from, lo, hi, limit int, done func() bool) error {
	tie := func(row int) int { return p.basis[row] }
	for n := 0; ; n++ {
		if done != nil && done() {
			return nil
		}
		orow := p.t.Row(obj)
		c := -1
		for j := lo; j < hi; j++ {
			if orow[j] > 0 {
				c = j
				break
			}
		}
		if c < 0 {
			return nil
		}
		if n >= limit {
			return fmt.Errorf("tally: %d pivots without optimum: %w", limit, ErrIterationCap)
		}
		r, ok, err := p.t.MinRatioRow(c, from, tie)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("tally: column %d: %w", c, ErrUnbounded)
		}
		if err = p.t.Pivot(r, c); err != nil {
			return err
		}
		p.basis[r] = c
		p.pivots++
	}
}

// phase1 drives W to zero. ErrInfeasible when it cannot.
func (p *program) phase1() error {
	rows, cols := p.t.Shape()
	rhs := cols - 1
	art := firstStructural + p.structural
	wZero := func() bool { v, _ := p.t.At(rowW, rhs); return v == 0 }

	err := p.optimize(rowW, firstConstraint, firstStructural, art, p.capFor(rows-firstConstraint), wZero)
	if err != nil {
		return err
	}
	if !wZero() {
		return ErrInfeasible
	}

	return nil
}

// simplify pivots every artificial still basic (at value zero) out of the
// basis, drops rows whose structural part vanished, and rebuilds the tableau
// without W and the artificials.
func (p *program) simplify() error {
	rows, cols := p.t.Shape()
	art := firstStructural + p.structural

	keep := []int{rowZ}
	for r := firstConstraint; r < rows; r++ {
		if p.basis[r] < art {
			keep = append(keep, r)
			continue
		}
		row := p.t.Row(r)
		c := -1
		for j := firstStructural; j < art; j++ {
			if row[j] != 0 {
				c = j
				break
			}
		}
		if c < 0 {
			continue // redundant
		}
		if err := p.t.Pivot(r, c); err != nil {
			return err
		}
		p.basis[r] = c
		keep = append(keep, r)
	}

	colsIdx := make([]int, 0, p.structural+2)
	colsIdx = append(colsIdx, colZ)
	for j := firstStructural; j < art; j++ {
		colsIdx = append(colsIdx, j)
	}
	colsIdx = append(colsIdx, cols-1)

	t, err := p.t.Induced(keep, colsIdx)
	if err != nil {
		return err
	}
	basis := make([]int, len(keep))
	basis[0] = -1
	for i, r := range keep[1:] {
		basis[i+1] = p.basis[r] - 1
	}
	p.t, p.basis = t, basis

	return nil
}

// phase2 minimizes Z on the simplified tableau.
func (p *program) phase2() error {
	rows := p.t.Rows()

	return p.optimize(0, 1, 1, 1+p.structural, p.capFor(rows-1), nil)
}

// relaxation reads the optimum off the simplified tableau.
func (p *program) relaxation() *Relaxation {
	rows, cols := p.t.Shape()
	rhs := cols - 1
	z := p.t.Row(0)

	vals := make([]Fraction, p.k)
	for j := range vals {
		vals[j] = Fraction{Num: 0, Den: 1}
	}
	for r := 1; r < rows; r++ {
		j := p.basis[r] - 1
		if j < 0 || j >= p.k {
			continue
		}
		row := p.t.Row(r)
		vals[j] = newFraction(row[rhs], row[p.basis[r]])
	}

	return &Relaxation{
		Objective: newFraction(z[rhs], z[0]),
		Values:    vals,
		Pivots:    p.pivots,
	}
}

// relax solves one LP: build, Phase 1, simplify, Phase 2.
func relax(buttons []uint64, targets []int, bounds []bound, limit int) (*Relaxation, error) {
	p, err := newProgram(buttons, targets, bounds, limit)
	if err != nil {
		return nil, err
	}
	if err = p.phase1(); err != nil {
		return nil, err
	}
	if err = p.simplify(); err != nil {
		return nil, err
	}
	if err = p.phase2(); err != nil {
		return nil, err
	}

	return p.relaxation(), nil
}

// Relax returns the exact optimum of the LP relaxation
//
//	minimize sum(x)  s.t.  A x = targets, x >= 0 (real)
//
// where A[i][j] = 1 when button j is wired to counter i. Only PivotLimit is
// read from opts.
//
// Errors: ErrBadInput, ErrInfeasible, ErrIterationCap, ErrUnbounded,
// tableau.ErrOverflow.
func Relax(buttons []uint64, targets []int, opts ...Option) (*Relaxation, error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	if err = validate(targets); err != nil {
		return nil, err
	}

	return relax(buttons, targets, nil, o.PivotLimit)
}

func collect(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

func validate(targets []int) error {
	if len(targets) > 64 {
		return fmt.Errorf("%w: %d counters exceed 64", ErrBadInput, len(targets))
	}
	for i, t := range targets {
		if t < 0 {
			return fmt.Errorf("%w: target %d is negative (%d)", ErrBadInput, i, t)
		}
	}

	return nil
}
