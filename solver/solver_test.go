package solver_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/togglenet/device"
	"github.com/katalvlaran/togglenet/reach"
	"github.com/katalvlaran/togglenet/solver"
	"github.com/katalvlaran/togglenet/tally"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const exampleInput = `[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}
[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}
`

func exampleDevices(t *testing.T) []device.Device {
	t.Helper()
	ds, err := device.Parse(strings.NewReader(exampleInput))
	require.NoError(t, err)
	require.Len(t, ds, 3)

	return ds
}

func TestSolveBatch_Example(t *testing.T) {
	res, err := solver.SolveBatch(context.Background(), exampleDevices(t))
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.LightTotal)
	assert.Equal(t, int64(33), res.TallyTotal)
	assert.False(t, res.Approximate)

	var lights []int
	var tallies []int64
	for i, d := range res.Devices {
		assert.Equal(t, i, d.Index)
		lights = append(lights, d.LightPresses)
		tallies = append(tallies, d.TallyPresses)
	}
	assert.Equal(t, []int{2, 3, 2}, lights)
	assert.Equal(t, []int64{10, 12, 11}, tallies)
}

func TestSolveBatch_WorkersMatchSequential(t *testing.T) {
	ds := exampleDevices(t)
	// Repeat the input so several workers are actually busy.
	var many []device.Device
	for i := 0; i < 8; i++ {
		many = append(many, ds...)
	}

	seq, err := solver.SolveBatch(context.Background(), many)
	require.NoError(t, err)
	par, err := solver.SolveBatch(context.Background(), many, solver.WithWorkers(4))
	require.NoError(t, err)

	if diff := cmp.Diff(seq, par, cmpopts.IgnoreFields(solver.BatchResult{}, "Elapsed")); diff != "" {
		t.Fatalf("parallel batch differs (-seq +par):\n%s", diff)
	}
	assert.Equal(t, int64(8*33), par.TallyTotal)
}

func TestSolveBatch_Parts(t *testing.T) {
	ds := exampleDevices(t)

	res, err := solver.SolveBatch(context.Background(), ds, solver.WithParts(solver.PartLights))
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.LightTotal)
	assert.Zero(t, res.TallyTotal)

	res, err = solver.SolveBatch(context.Background(), ds, solver.WithParts(solver.PartTally))
	require.NoError(t, err)
	assert.Zero(t, res.LightTotal)
	assert.Equal(t, int64(33), res.TallyTotal)
}

func TestSolveBatch_WrapsDeviceIndex(t *testing.T) {
	ds := exampleDevices(t)
	bad, err := device.ParseLine("[##] (0,1) {1,2}")
	require.NoError(t, err)
	ds = append(ds, bad)

	_, err = solver.SolveBatch(context.Background(), ds, solver.WithParts(solver.PartTally))
	require.Error(t, err)
	assert.ErrorIs(t, err, tally.ErrInfeasible)
	assert.Contains(t, err.Error(), "device 3")

	// The indicator pattern [##] is reachable with one press of (0,1).
	res, err := solver.SolveBatch(context.Background(), ds, solver.WithParts(solver.PartLights))
	require.NoError(t, err)
	assert.Equal(t, int64(8), res.LightTotal)
}

func TestSolveBatch_ForwardsOptions(t *testing.T) {
	ds := exampleDevices(t)

	_, err := solver.SolveBatch(context.Background(), ds,
		solver.WithParts(solver.PartLights),
		solver.WithReachOptions(reach.WithMaxDepth(1)))
	assert.ErrorIs(t, err, reach.ErrDepthLimit)

	core, logs := observer.New(zap.WarnLevel)
	res, err := solver.SolveBatch(context.Background(), ds[:1],
		solver.WithParts(solver.PartTally),
		solver.WithLogger(zap.New(core)),
		solver.WithTallyOptions(tally.WithPivotLimit(1)))
	require.NoError(t, err)
	assert.True(t, res.Approximate)
	assert.Equal(t, tally.MethodLeastSquares, res.Devices[0].Method)
	assert.Equal(t, 1, logs.Len(), "fallback is logged once")
}

func TestSolveBatch_Logs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	_, err := solver.SolveBatch(context.Background(), exampleDevices(t), solver.WithLogger(zap.New(core)))
	require.NoError(t, err)

	done := logs.FilterMessage("solver: batch done").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	assert.Equal(t, int64(7), fields["lights"])
	assert.Equal(t, int64(33), fields["tally"])
}

func TestSolveBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := solver.SolveBatch(ctx, exampleDevices(t), solver.WithWorkers(2))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveBatch_Empty(t *testing.T) {
	res, err := solver.SolveBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Devices)
	assert.Zero(t, res.LightTotal)
	assert.Zero(t, res.TallyTotal)
}

func TestSolveDevice(t *testing.T) {
	d, err := device.ParseLine("[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}")
	require.NoError(t, err)

	r, err := solver.SolveDevice(d)
	require.NoError(t, err)
	assert.Equal(t, 2, r.LightPresses)
	assert.Equal(t, int64(10), r.TallyPresses)
	assert.Equal(t, tally.MethodTableau, r.Method)

	again, err := solver.SolveDevice(d)
	require.NoError(t, err)
	assert.Equal(t, r, again)
}

func TestOptions_Invalid(t *testing.T) {
	for _, opt := range []solver.Option{
		solver.WithWorkers(0),
		solver.WithParts(0),
		solver.WithParts(solver.Part(8)),
	} {
		_, err := solver.SolveBatch(context.Background(), nil, opt)
		assert.ErrorIs(t, err, solver.ErrOptionViolation)
	}
}

func TestParsePart(t *testing.T) {
	for n, want := range map[int]solver.Part{0: solver.PartAll, 1: solver.PartLights, 2: solver.PartTally} {
		got, err := solver.ParsePart(n)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := solver.ParsePart(3)
	assert.ErrorIs(t, err, solver.ErrOptionViolation)
	assert.True(t, solver.PartAll.Has(solver.PartTally))
	assert.False(t, solver.PartLights.Has(solver.PartTally))
}
