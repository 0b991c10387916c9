package fixedpoint_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob/internal/fixedpoint"
)

func TestMulAppliesScaledRate(t *testing.T) {
	v, err := fixedpoint.Mul(400, 2_500_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestMulTruncatesTowardZero(t *testing.T) {
	v, inexact, err := fixedpoint.MulRound(3, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
	assert.True(t, inexact)
}

func TestDivOverflow(t *testing.T) {
	_, err := fixedpoint.Div(math.MaxUint64, 1)
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)
}

func TestCeilFeeBumpsDustToOne(t *testing.T) {
	fee, err := fixedpoint.CeilFee(3, 1) // floors to 0, amount nonzero
	require.NoError(t, err)
	assert.Equal(t, uint64(1), fee)
}

func TestCeilFeeZeroAmountStaysZero(t *testing.T) {
	fee, err := fixedpoint.CeilFee(0, 2_500_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), fee)
}

func TestCeilFeeDoesNotRoundUpNonzeroTruncation(t *testing.T) {
	// 401 * 2_500_000 / 1e9 = 1.0025 -> floors to 1, not bumped to 2.
	fee, err := fixedpoint.CeilFee(401, 2_500_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), fee)
}

func TestFloorRebateNeverRoundsUp(t *testing.T) {
	rebate, err := fixedpoint.FloorRebate(400, 1_500_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rebate) // 400*1_500_000/1e9 = 0.6 -> 0
}

func TestProductIsExactNoScaling(t *testing.T) {
	v, err := fixedpoint.Product(400, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), v)
}

func TestProductOverflow(t *testing.T) {
	_, err := fixedpoint.Product(math.MaxUint64, 2)
	assert.ErrorIs(t, err, fixedpoint.ErrOverflow)
}

func TestFeeRateBound(t *testing.T) {
	takerRate, makerRate := uint64(2_500_000), uint64(1_500_000)
	quote := uint64(400)
	taker, err := fixedpoint.CeilFee(quote, takerRate)
	require.NoError(t, err)
	maker, err := fixedpoint.FloorRebate(quote, makerRate)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, taker, maker)
}
