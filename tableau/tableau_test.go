package tableau_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/togglenet/tableau"
)

func mustRows(t *testing.T, rows [][]int64) *tableau.Tableau {
	t.Helper()
	tb, err := tableau.FromRows(rows)
	require.NoError(t, err)

	return tb
}

func TestNew_Shape(t *testing.T) {
	_, err := tableau.New(0, 3)
	assert.ErrorIs(t, err, tableau.ErrBadShape)
	_, err = tableau.New(2, -1)
	assert.ErrorIs(t, err, tableau.ErrBadShape)

	tb, err := tableau.New(2, 3)
	require.NoError(t, err)
	r, c := tb.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []int64{0, 0, 0}, tb.Row(1))
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := tableau.FromRows([][]int64{{1, 2}, {3}})
	assert.ErrorIs(t, err, tableau.ErrBadShape)
	_, err = tableau.FromRows(nil)
	assert.ErrorIs(t, err, tableau.ErrBadShape)
}

func TestAtSet_Bounds(t *testing.T) {
	tb, err := tableau.New(2, 2)
	require.NoError(t, err)
	require.NoError(t, tb.Set(1, 0, 7))
	v, err := tb.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	_, err = tb.At(2, 0)
	assert.ErrorIs(t, err, tableau.ErrOutOfRange)
	assert.ErrorIs(t, tb.Set(0, -1, 1), tableau.ErrOutOfRange)
}

func TestRow_Aliases(t *testing.T) {
	tb := mustRows(t, [][]int64{{1, 2}, {3, 4}})
	tb.Row(0)[1] = 9
	v, _ := tb.At(0, 1)
	assert.Equal(t, int64(9), v)

	cl := tb.Clone()
	cl.Row(0)[0] = -5
	v, _ = tb.At(0, 0)
	assert.Equal(t, int64(1), v, "clone must not share storage")
}

func TestInduced(t *testing.T) {
	tb := mustRows(t, [][]int64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	sub, err := tb.Induced([]int{2, 0}, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "[8, 9]\n[2, 3]\n", sub.String())

	_, err = tb.Induced([]int{3}, []int{0})
	assert.ErrorIs(t, err, tableau.ErrOutOfRange)
	_, err = tb.Induced(nil, []int{0})
	assert.ErrorIs(t, err, tableau.ErrBadShape)
}

func TestPivot_ExactQuotient(t *testing.T) {
	tb := mustRows(t, [][]int64{
		{1, 1, 4},
		{2, 3, 9},
	})
	require.NoError(t, tb.Pivot(0, 0))
	// row1 -= 2*row0 -> [0, 1, 1]
	assert.Equal(t, []int64{1, 1, 4}, tb.Row(0))
	assert.Equal(t, []int64{0, 1, 1}, tb.Row(1))
}

func TestPivot_CrossMultiply(t *testing.T) {
	tb := mustRows(t, [][]int64{
		{2, 1, 5},
		{3, 1, 4},
	})
	require.NoError(t, tb.Pivot(0, 0))
	// row1 = 2*row1 - 3*row0 = [0, -1, -7]
	assert.Equal(t, []int64{2, 1, 5}, tb.Row(0))
	assert.Equal(t, []int64{0, -1, -7}, tb.Row(1))
}

func TestPivot_NormalizesAndFlipsNegativePivot(t *testing.T) {
	tb := mustRows(t, [][]int64{
		{-2, 4, 0},
		{3, 6, 9},
	})
	require.NoError(t, tb.Pivot(0, 0))
	// row0 negated -> [2,-4,0] -> gcd 2 -> [1,-2,0]
	// row1 = 2*row1 - 3*[2,-4,0] = [0, 24, 18] -> gcd 6 -> [0, 4, 3]
	assert.Equal(t, []int64{1, -2, 0}, tb.Row(0))
	assert.Equal(t, []int64{0, 4, 3}, tb.Row(1))
}

func TestPivot_Errors(t *testing.T) {
	tb := mustRows(t, [][]int64{{0, 1}, {1, 1}})
	assert.ErrorIs(t, tb.Pivot(0, 0), tableau.ErrZeroPivot)
	assert.ErrorIs(t, tb.Pivot(5, 0), tableau.ErrOutOfRange)

	big := mustRows(t, [][]int64{
		{3, math.MaxInt64 / 2},
		{2, math.MaxInt64 / 2},
	})
	assert.ErrorIs(t, big.Pivot(0, 0), tableau.ErrOverflow)
}

func TestNormalizeRow(t *testing.T) {
	tb := mustRows(t, [][]int64{{10, -20, 30}, {0, 0, 0}, {3, 5, 7}})
	tb.NormalizeRow(0)
	tb.NormalizeRow(1)
	tb.NormalizeRow(2)
	assert.Equal(t, []int64{1, -2, 3}, tb.Row(0))
	assert.Equal(t, []int64{0, 0, 0}, tb.Row(1))
	assert.Equal(t, []int64{3, 5, 7}, tb.Row(2))
}

func TestMinRatioRow(t *testing.T) {
	tb := mustRows(t, [][]int64{
		{9, 9, 9},  // objective row, skipped with from=1
		{2, 0, 6},  // ratio 3
		{-1, 0, 1}, // negative, ignored
		{3, 0, 6},  // ratio 2
		{1, 0, 2},  // ratio 2, tie
	})
	row, ok, err := tb.MinRatioRow(0, 1, func(r int) int { return -r })
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, row, "tie goes to the smaller key")

	row, ok, err = tb.MinRatioRow(0, 1, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, row, "without a key the first row wins")

	_, ok, err = tb.MinRatioRow(1, 1, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGCD(t *testing.T) {
	assert.Equal(t, int64(6), tableau.GCD(-12, 18))
	assert.Equal(t, int64(5), tableau.GCD(0, -5))
	assert.Equal(t, int64(0), tableau.GCD(0, 0))
}
