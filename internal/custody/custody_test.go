package custody

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositAndBalance(t *testing.T) {
	l := New()
	require.NoError(t, l.Deposit("alice", 100))

	avail, locked := l.Balance("alice")
	assert.Equal(t, uint64(100), avail)
	assert.Equal(t, uint64(0), locked)
}

func TestBalanceUnknownOwnerIsZero(t *testing.T) {
	l := New()
	avail, locked := l.Balance("nobody")
	assert.Equal(t, uint64(0), avail)
	assert.Equal(t, uint64(0), locked)
}

func TestWithdrawInsufficientFails(t *testing.T) {
	l := New()
	require.NoError(t, l.Deposit("alice", 50))
	err := l.Withdraw("alice", 100)
	assert.ErrorIs(t, err, ErrInsufficientAvailable)

	avail, _ := l.Balance("alice")
	assert.Equal(t, uint64(50), avail, "failed withdraw must not mutate balance")
}

func TestLockAndUnlockRoundTrip(t *testing.T) {
	l := New()
	require.NoError(t, l.Deposit("alice", 100))

	require.NoError(t, l.Lock("alice", 40))
	avail, locked := l.Balance("alice")
	assert.Equal(t, uint64(60), avail)
	assert.Equal(t, uint64(40), locked)

	require.NoError(t, l.Unlock("alice", 40))
	avail, locked = l.Balance("alice")
	assert.Equal(t, uint64(100), avail)
	assert.Equal(t, uint64(0), locked)
}

func TestLockInsufficientAvailableFails(t *testing.T) {
	l := New()
	require.NoError(t, l.Deposit("alice", 10))
	assert.ErrorIs(t, l.Lock("alice", 20), ErrInsufficientAvailable)
}

func TestUnlockInsufficientLockedFails(t *testing.T) {
	l := New()
	require.NoError(t, l.Deposit("alice", 10))
	assert.ErrorIs(t, l.Unlock("alice", 1), ErrInsufficientLocked)
}

func TestCreditDebitAvailableAndLocked(t *testing.T) {
	l := New()
	require.NoError(t, l.CreditAvailable("bob", 30))
	require.NoError(t, l.CreditLocked("bob", 20))

	avail, locked := l.Balance("bob")
	assert.Equal(t, uint64(30), avail)
	assert.Equal(t, uint64(20), locked)

	require.NoError(t, l.DebitAvailable("bob", 10))
	require.NoError(t, l.DebitLocked("bob", 5))
	avail, locked = l.Balance("bob")
	assert.Equal(t, uint64(20), avail)
	assert.Equal(t, uint64(15), locked)

	assert.ErrorIs(t, l.DebitAvailable("bob", 1000), ErrInsufficientAvailable)
	assert.ErrorIs(t, l.DebitLocked("bob", 1000), ErrInsufficientLocked)
}

func TestTotalSumsAcrossOwners(t *testing.T) {
	l := New()
	require.NoError(t, l.Deposit("alice", 100))
	require.NoError(t, l.Deposit("bob", 50))
	require.NoError(t, l.Lock("alice", 20))

	assert.Equal(t, uint64(150), l.Total())
}

func TestDepositOverflowFails(t *testing.T) {
	l := New()
	require.NoError(t, l.Deposit("alice", math.MaxUint64))
	assert.ErrorIs(t, l.Deposit("alice", 1), ErrOverflow)

	avail, _ := l.Balance("alice")
	assert.Equal(t, uint64(math.MaxUint64), avail, "failed deposit must not mutate balance")
}

func TestCreditAvailableOverflowFails(t *testing.T) {
	l := New()
	require.NoError(t, l.CreditAvailable("bob", math.MaxUint64))
	assert.ErrorIs(t, l.CreditAvailable("bob", 1), ErrOverflow)
}

func TestCreditLockedOverflowFails(t *testing.T) {
	l := New()
	require.NoError(t, l.CreditLocked("bob", math.MaxUint64))
	assert.ErrorIs(t, l.CreditLocked("bob", 1), ErrOverflow)
}
