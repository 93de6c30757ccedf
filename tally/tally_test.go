package tally_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/togglenet/device"
	"github.com/katalvlaran/togglenet/tally"
)

var exampleLines = []string{
	"[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}",
	"[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}",
	"[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}",
}

func mustDevice(t testing.TB, line string) device.Device {
	t.Helper()
	d, err := device.ParseLine(line)
	require.NoError(t, err)

	return d
}

// hits returns A·x for the wiring.
func hits(buttons []uint64, counters int, x []int64) []int64 {
	out := make([]int64, counters)
	for j, b := range buttons {
		for i := 0; i < counters; i++ {
			if b>>uint(i)&1 == 1 {
				out[i] += x[j]
			}
		}
	}

	return out
}

func asInt64(v []int) []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(x)
	}

	return out
}

// bruteForce enumerates every x in [0, max(targets)]^k. -1 when infeasible.
func bruteForce(buttons []uint64, targets []int) int64 {
	hi := 0
	for _, t := range targets {
		if t > hi {
			hi = t
		}
	}
	want := asInt64(targets)
	x := make([]int64, len(buttons))
	best := int64(-1)
	var rec func(j int, sum int64)
	rec = func(j int, sum int64) {
		if best >= 0 && sum >= best {
			return
		}
		if j == len(buttons) {
			got := hits(buttons, len(targets), x)
			for i := range got {
				if got[i] != want[i] {
					return
				}
			}
			best = sum
			return
		}
		for v := 0; v <= hi; v++ {
			x[j] = int64(v)
			rec(j+1, sum+int64(v))
		}
		x[j] = 0
	}
	rec(0, 0)

	return best
}

func TestSolve_SingleButton(t *testing.T) {
	res, err := tally.Solve([]uint64{0b1}, []int{3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, []int64{3}, res.Presses)
	assert.Equal(t, tally.MethodTableau, res.Method)
	assert.False(t, res.Approximate)
}

func TestSolve_TwoButtons(t *testing.T) {
	res, err := tally.Solve([]uint64{0b01, 0b11}, []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, []int64{1, 1}, res.Presses)
}

func TestSolveDevice_Example(t *testing.T) {
	want := []int64{10, 12, 11}
	var sum int64
	for i, line := range exampleLines {
		d := mustDevice(t, line)
		res, err := tally.SolveDevice(d)
		require.NoError(t, err, "device %d", i)
		assert.Equal(t, want[i], res.Total, "device %d", i)
		assert.Equal(t, asInt64(d.Joltage()), hits(d.Buttons(), d.LightCount(), res.Presses), "device %d", i)
		assert.Equal(t, tally.MethodTableau, res.Method)
		sum += res.Total
	}
	assert.Equal(t, int64(33), sum)
}

func TestSolve_ZeroTargets(t *testing.T) {
	res, err := tally.Solve([]uint64{0b11, 0b01}, []int{0, 0})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Equal(t, []int64{0, 0}, res.Presses)

	res, err = tally.Solve(nil, []int{0})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestSolve_Infeasible(t *testing.T) {
	// Counter 1 receives every press counter 0 does, so 1 != 2 is impossible.
	_, err := tally.Solve([]uint64{0b11}, []int{1, 2}, tally.WithMethod(tally.MethodTableau))
	assert.ErrorIs(t, err, tally.ErrInfeasible)

	// No buttons at all.
	_, err = tally.Solve(nil, []int{1}, tally.WithMethod(tally.MethodTableau))
	assert.ErrorIs(t, err, tally.ErrInfeasible)

	// LP-feasible (all halves) but no integer solution: 2·sum(x) = 3.
	_, err = tally.Solve([]uint64{0b011, 0b110, 0b101}, []int{1, 1, 1})
	assert.ErrorIs(t, err, tally.ErrInfeasible)
}

func TestSolve_BranchesOnFractionalRoot(t *testing.T) {
	buttons := []uint64{0b011, 0b110, 0b010, 0b101}
	targets := []int{4, 3, 4}

	lpRes, err := tally.Relax(buttons, targets)
	require.NoError(t, err)
	assert.Equal(t, tally.Fraction{Num: 11, Den: 2}, lpRes.Objective)

	res, err := tally.Solve(buttons, targets)
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.Total)
	assert.Greater(t, res.Nodes, 1)
	assert.Equal(t, asInt64(targets), hits(buttons, len(targets), res.Presses))
}

func TestSolve_DuplicateButtons(t *testing.T) {
	// Three copies of (0,2) and two of (1,2,3): without merging, the LP splits
	// presses across copies and the search walks one unit at a time.
	d := mustDevice(t, "[..##] (0,2) (0,2) (0,2) (1,2,3) (1) (0,1) (1,2,3) (3) {100,28,111,49}")
	res, err := tally.SolveDevice(d, tally.WithMethod(tally.MethodTableau), tally.WithNodeLimit(50))
	require.NoError(t, err)
	assert.Equal(t, int64(150), res.Total)
	assert.Len(t, res.Presses, 8)
	assert.Equal(t, asInt64(d.Joltage()), hits(d.Buttons(), d.LightCount(), res.Presses))
	assert.Zero(t, res.Presses[1])
	assert.Zero(t, res.Presses[2])
	assert.Zero(t, res.Presses[6])

	res, err = tally.Solve([]uint64{0b1, 0b1}, []int{3})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 0}, res.Presses)
}

func TestSolve_FeasibilityOnly(t *testing.T) {
	_, err := tally.Solve([]uint64{0b011, 0b110, 0b010, 0b101}, []int{4, 3, 4},
		tally.WithBranchAndBound(false))
	require.ErrorIs(t, err, tally.ErrNonIntegerSolution)
	assert.Contains(t, err.Error(), "11/2")

	// An integral root passes unchanged.
	res, err := tally.Solve([]uint64{0b01, 0b11}, []int{2, 1}, tally.WithBranchAndBound(false))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, 1, res.Nodes)
}

func TestSolve_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for it := 0; it < 120; it++ {
		n := 1 + rng.Intn(4)
		k := 1 + rng.Intn(4)
		buttons := make([]uint64, k)
		x := make([]int64, k)
		for j := range buttons {
			buttons[j] = uint64(rng.Intn(1 << uint(n)))
			x[j] = int64(rng.Intn(4))
		}
		h := hits(buttons, n, x)
		targets := make([]int, n)
		for i, v := range h {
			targets[i] = int(v)
		}
		if rng.Intn(5) == 0 {
			targets[0]++ // occasionally infeasible
		}

		want := bruteForce(buttons, targets)
		res, err := tally.Solve(buttons, targets, tally.WithMethod(tally.MethodTableau))
		if want < 0 {
			assert.ErrorIs(t, err, tally.ErrInfeasible, "buttons=%b targets=%v", buttons, targets)
			continue
		}
		require.NoError(t, err, "buttons=%b targets=%v", buttons, targets)
		assert.Equal(t, want, res.Total, "buttons=%b targets=%v", buttons, targets)
		assert.Equal(t, asInt64(targets), hits(buttons, n, res.Presses))
	}
}

func TestRelax_MatchesGonumSimplex(t *testing.T) {
	d := mustDevice(t, exampleLines[0])
	buttons, targets := d.Buttons(), d.Joltage()

	got, err := tally.Relax(buttons, targets)
	require.NoError(t, err)

	m, k := len(targets), len(buttons)
	a := mat.NewDense(m, k, nil)
	for j, bt := range buttons {
		for i := 0; i < m; i++ {
			if bt>>uint(i)&1 == 1 {
				a.Set(i, j, 1)
			}
		}
	}
	c := make([]float64, k)
	for j := range c {
		c[j] = 1
	}
	b := make([]float64, m)
	for i, v := range targets {
		b[i] = float64(v)
	}
	optF, _, err := lp.Simplex(c, a, b, 1e-10, nil)
	require.NoError(t, err)
	assert.InDelta(t, optF, got.Objective.Float64(), 1e-9)

	var sum float64
	for _, v := range got.Values {
		sum += v.Float64()
	}
	assert.InDelta(t, got.Objective.Float64(), sum, 1e-9)
}

func TestRelax_Fractional(t *testing.T) {
	res, err := tally.Relax([]uint64{0b011, 0b110, 0b101}, []int{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, "3/2", res.Objective.String())
	for _, v := range res.Values {
		assert.Equal(t, tally.Fraction{Num: 1, Den: 2}, v)
	}
	assert.Equal(t, int64(2), res.Objective.Ceil())
	assert.Equal(t, int64(1), res.Objective.Floor())
}

func TestSolve_PivotCapAndFallback(t *testing.T) {
	d := mustDevice(t, exampleLines[0])

	_, err := tally.SolveDevice(d, tally.WithMethod(tally.MethodTableau), tally.WithPivotLimit(1))
	assert.ErrorIs(t, err, tally.ErrIterationCap)

	core, logs := observer.New(zap.WarnLevel)
	res, err := tally.SolveDevice(d, tally.WithPivotLimit(1), tally.WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Total)
	assert.Equal(t, tally.MethodLeastSquares, res.Method)
	assert.True(t, res.Approximate)
	assert.Equal(t, 1, logs.FilterMessageSnippet("least squares").Len())
}

func TestSolve_LeastSquaresCap(t *testing.T) {
	d := mustDevice(t, exampleLines[0])
	_, err := tally.SolveDevice(d,
		tally.WithMethod(tally.MethodLeastSquares),
		tally.WithCandidateLimit(8))
	assert.ErrorIs(t, err, tally.ErrIterationCap)
}

func TestSolve_NodeLimit(t *testing.T) {
	_, err := tally.Solve([]uint64{0b011, 0b110, 0b010, 0b101}, []int{4, 3, 4},
		tally.WithMethod(tally.MethodTableau), tally.WithNodeLimit(1))
	assert.ErrorIs(t, err, tally.ErrIterationCap)
}

func TestSolve_InvalidInput(t *testing.T) {
	_, err := tally.Solve([]uint64{1}, []int{-1})
	assert.ErrorIs(t, err, tally.ErrBadInput)

	for _, opt := range []tally.Option{
		tally.WithPivotLimit(-1),
		tally.WithNodeLimit(0),
		tally.WithCandidateLimit(-2),
		tally.WithMethod(tally.Method(9)),
	} {
		_, err = tally.Solve([]uint64{1}, []int{1}, opt)
		assert.ErrorIs(t, err, tally.ErrOptionViolation)
	}
}

func TestSolve_Idempotent(t *testing.T) {
	d := mustDevice(t, exampleLines[2])
	a, err := tally.SolveDevice(d)
	require.NoError(t, err)
	b, err := tally.SolveDevice(d)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseMethod(t *testing.T) {
	cases := map[string]tally.Method{
		"":              tally.MethodAuto,
		"AUTO":          tally.MethodAuto,
		"tableau":       tally.MethodTableau,
		"lsq":           tally.MethodLeastSquares,
		"least-squares": tally.MethodLeastSquares,
	}
	for in, want := range cases {
		got, err := tally.ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := tally.ParseMethod("gauss")
	assert.ErrorIs(t, err, tally.ErrOptionViolation)

	for _, m := range []tally.Method{tally.MethodAuto, tally.MethodTableau, tally.MethodLeastSquares} {
		back, err := tally.ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}
