package clob

import "clob/internal/fixedpoint"

// Scale is the fixed-point denominator shared with internal/fixedpoint.
const Scale = fixedpoint.Scale

// Numeric constants from spec §6, required exactly for wire compatibility
// with any host that serializes these pools.
const (
	MinBidOrderID   uint64 = 1
	MinAskOrderID   uint64 = 1 << 63
	MaxPrice        uint64 = 1 << 63
	MinPrice        uint64 = 0
	PoolCreationFee uint64 = 100_000_000_000
	ReferenceTakerFeeRate    uint64 = 2_500_000
	ReferenceMakerRebateRate uint64 = 1_500_000
)

// Restriction is the time-in-force code attached to a limit placement.
type Restriction uint8

const (
	NoRestriction Restriction = iota
	ImmediateOrCancel
	FillOrKill
	PostOrAbort
)

// SelfMatchPrevention is the policy applied when a taker would cross its
// own resting order. Only CancelOldestMaker is a supported value; any
// other value is rejected at placement.
type SelfMatchPrevention uint8

const (
	CancelOldestMaker SelfMatchPrevention = iota
)

// IsBidOrderID reports whether id belongs to the bid side, purely from
// the id's value — the high bit partitions the id space.
func IsBidOrderID(id uint64) bool {
	return id < MinAskOrderID
}
