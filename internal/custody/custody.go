// Package custody implements the per-owner, per-asset available/locked
// balance ledger the matching engine debits, credits, locks, and unlocks
// on every book mutation.
//
// Grounded on the teacher's map-plus-mutex bookkeeping in
// internal/net/server.go (clientSessions map[string]ClientSession guarded
// by clientSessionsLock), generalized from connection bookkeeping to
// balance bookkeeping: a lazily-populated map. Unlike the teacher's map
// it carries no lock (see Ledger). Deposits and withdrawals are logged
// through zerolog; the other mutations are not logged.
package custody

import (
	"errors"
	"math"

	"github.com/rs/zerolog/log"
)

var (
	// ErrInsufficientAvailable is returned when a withdraw or lock would
	// take available below zero.
	ErrInsufficientAvailable = errors.New("custody: insufficient available balance")
	// ErrInsufficientLocked is returned when an unlock or debit-locked
	// would take locked below zero.
	ErrInsufficientLocked = errors.New("custody: insufficient locked balance")
	// ErrOverflow is returned when a credit would overflow a uint64
	// balance.
	ErrOverflow = errors.New("custody: balance overflow")
)

// Balance is a single owner's available and locked amounts for one asset.
type Balance struct {
	Available uint64
	Locked    uint64
}

// Ledger tracks balances for a single asset across all owners. A pool
// holds two ledgers, one per asset, and they are only ever reached
// through the enclosing pool's own single-writer discipline — the ledger
// itself carries no lock of its own, matching spec §5 ("the two
// custodians inside a pool are never accessed except through the
// enclosing pool").
type Ledger struct {
	balances map[string]*Balance
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{balances: make(map[string]*Balance)}
}

func (l *Ledger) entry(owner string) *Balance {
	b, ok := l.balances[owner]
	if !ok {
		b = &Balance{}
		l.balances[owner] = b
	}
	return b
}

// Balance returns (available, locked) for owner, (0, 0) for an owner
// never seen before.
func (l *Ledger) Balance(owner string) (available, locked uint64) {
	b, ok := l.balances[owner]
	if !ok {
		return 0, 0
	}
	return b.Available, b.Locked
}

// Deposit increases available by amount.
func (l *Ledger) Deposit(owner string, amount uint64) error {
	b := l.entry(owner)
	if b.Available > math.MaxUint64-amount {
		return ErrOverflow
	}
	b.Available += amount
	log.Debug().Str("owner", owner).Uint64("amount", amount).Msg("custody deposit")
	return nil
}

// Withdraw decreases available by exactly amount. Never touches locked.
func (l *Ledger) Withdraw(owner string, amount uint64) error {
	b := l.entry(owner)
	if b.Available < amount {
		return ErrInsufficientAvailable
	}
	b.Available -= amount
	log.Debug().Str("owner", owner).Uint64("amount", amount).Msg("custody withdraw")
	return nil
}

// Lock moves amount from available to locked.
func (l *Ledger) Lock(owner string, amount uint64) error {
	b := l.entry(owner)
	if b.Available < amount {
		return ErrInsufficientAvailable
	}
	b.Available -= amount
	b.Locked += amount
	return nil
}

// Unlock moves amount from locked to available.
func (l *Ledger) Unlock(owner string, amount uint64) error {
	b := l.entry(owner)
	if b.Locked < amount {
		return ErrInsufficientLocked
	}
	b.Locked -= amount
	b.Available += amount
	return nil
}

// CreditAvailable adds amount directly to available, used by the
// matching path when a taker/maker receives proceeds.
func (l *Ledger) CreditAvailable(owner string, amount uint64) error {
	b := l.entry(owner)
	if b.Available > math.MaxUint64-amount {
		return ErrOverflow
	}
	b.Available += amount
	return nil
}

// DebitAvailable subtracts amount directly from available.
func (l *Ledger) DebitAvailable(owner string, amount uint64) error {
	b := l.entry(owner)
	if b.Available < amount {
		return ErrInsufficientAvailable
	}
	b.Available -= amount
	return nil
}

// CreditLocked adds amount directly to locked.
func (l *Ledger) CreditLocked(owner string, amount uint64) error {
	b := l.entry(owner)
	if b.Locked > math.MaxUint64-amount {
		return ErrOverflow
	}
	b.Locked += amount
	return nil
}

// DebitLocked subtracts amount directly from locked, used when a maker's
// reserved funds are consumed by a fill.
func (l *Ledger) DebitLocked(owner string, amount uint64) error {
	b := l.entry(owner)
	if b.Locked < amount {
		return ErrInsufficientLocked
	}
	b.Locked -= amount
	return nil
}

// Total returns the sum of available+locked across every owner this
// ledger has ever touched — the conservation-property check from spec
// §8 compares this against the pool's fee sink plus deposits/withdraws.
func (l *Ledger) Total() uint64 {
	var total uint64
	for _, b := range l.balances {
		total += b.Available + b.Locked
	}
	return total
}
