package clob

import "errors"

// Error taxonomy from spec §7. Entry points return these sentinels
// unwrapped (errors.Is works on them directly); ledger and arithmetic
// failures surface as the custody and fixedpoint packages' own errors.
var (
	ErrInvalidQuantity          = errors.New("clob: invalid quantity")
	ErrInvalidPrice             = errors.New("clob: invalid price")
	ErrInvalidExpireTimestamp   = errors.New("clob: invalid expire timestamp")
	ErrInvalidRestriction       = errors.New("clob: invalid restriction code")
	ErrInvalidSelfMatching      = errors.New("clob: invalid self-matching-prevention code")
	ErrInvalidTickSizeLotSize   = errors.New("clob: tick size or lot size is zero")
	ErrInvalidPair              = errors.New("clob: base and quote asset types are identical")
	ErrInvalidFee               = errors.New("clob: creation fee does not match the reference amount")
	ErrInvalidFeeRateRebateRate = errors.New("clob: maker rebate rate exceeds taker fee rate")
	ErrInvalidOrderID           = errors.New("clob: order id not found")
	ErrUnauthorizedCancel       = errors.New("clob: caller does not own this order")
	ErrInvalidUser              = errors.New("clob: caller has no open orders")
	ErrInvalidTickPrice         = errors.New("clob: referenced price has no tick level")
	ErrOrderCannotBeFullyFilled = errors.New("clob: fill-or-kill order could not be fully filled")
	ErrOrderCannotBeFullyPassive = errors.New("clob: post-or-abort order would have crossed the book")
	ErrInsufficientBaseCoin     = errors.New("clob: insufficient base coin envelope")
	ErrInsufficientQuoteCoin    = errors.New("clob: insufficient quote coin envelope")
	ErrIncorrectPoolOwner       = errors.New("clob: wrong pool owner capability")
	ErrAdminAccountCapRequired  = errors.New("clob: child capability cannot mint further capabilities")
)
