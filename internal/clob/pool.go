package clob

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"clob/internal/custody"
	"clob/internal/events"
	"clob/internal/fifo"
	"clob/internal/pricetree"
)

var poolConfigValidator = validator.New()

// PoolConfig is the typed, validated input to NewPool. Struct tags
// express the numeric preconditions of spec §7 that are checked once, at
// construction, the way trufnetwork-sdk-go validates request structs
// with go-playground/validator rather than hand-rolled field checks.
type PoolConfig struct {
	PoolID          string `validate:"required"`
	BaseAssetType   string `validate:"required"`
	QuoteAssetType  string `validate:"required,nefield=BaseAssetType"`
	TickSize        uint64 `validate:"required"`
	LotSize         uint64 `validate:"required"`
	TakerFeeRate    uint64
	MakerRebateRate uint64 `validate:"ltefield=TakerFeeRate"`
	CreationFee     uint64 `validate:"eq=100000000000"`
}

// Pool is the root of all mutable state for one trading pair: two
// ladders, the per-side order-id counters, the owner open-order index,
// tick/lot sizes, fee rates, two custodians, and fee sinks.
type Pool struct {
	ID              string
	BaseAssetType   string
	QuoteAssetType  string
	TickSize        uint64
	LotSize         uint64
	TakerFeeRate    uint64
	MakerRebateRate uint64

	Bids *pricetree.Ladder[*TickLevel]
	Asks *pricetree.Ladder[*TickLevel]

	NextBidOrderID uint64
	NextAskOrderID uint64

	// ownerIndex maps owner -> (order_id -> price), used for cancellation
	// and enumeration.
	ownerIndex map[string]*fifo.FIFO[uint64]

	Base  *custody.Ledger
	Quote *custody.Ledger

	BaseFeeSink  uint64
	QuoteFeeSink uint64

	creationFeeBalance uint64

	Sink events.Sink
}

// NewPool validates cfg against the preconditions of spec §7 and
// constructs an empty pool. InvalidFee/InvalidFeeRateRebateRate/
// InvalidPair/InvalidTickSizeLotSize are all checked here, once, rather
// than on every placement.
func NewPool(cfg PoolConfig, sink events.Sink) (*Pool, error) {
	if err := poolConfigValidator.Struct(cfg); err != nil {
		return nil, mapPoolConfigError(err)
	}

	pool := &Pool{
		ID:                 cfg.PoolID,
		BaseAssetType:      cfg.BaseAssetType,
		QuoteAssetType:     cfg.QuoteAssetType,
		TickSize:           cfg.TickSize,
		LotSize:            cfg.LotSize,
		TakerFeeRate:       cfg.TakerFeeRate,
		MakerRebateRate:    cfg.MakerRebateRate,
		Bids:               pricetree.New[*TickLevel](),
		Asks:               pricetree.New[*TickLevel](),
		NextBidOrderID:     MinBidOrderID,
		NextAskOrderID:     MinAskOrderID,
		ownerIndex:         make(map[string]*fifo.FIFO[uint64]),
		Base:               custody.New(),
		Quote:              custody.New(),
		creationFeeBalance: cfg.CreationFee,
		Sink:               sink,
	}

	log.Info().
		Str("poolID", pool.ID).
		Str("base", pool.BaseAssetType).
		Str("quote", pool.QuoteAssetType).
		Uint64("tickSize", pool.TickSize).
		Uint64("lotSize", pool.LotSize).
		Msg("pool created")

	pool.emit(events.PoolCreated{
		PoolID:          pool.ID,
		BaseAssetType:   pool.BaseAssetType,
		QuoteAssetType:  pool.QuoteAssetType,
		TakerFeeRate:    pool.TakerFeeRate,
		MakerRebateRate: pool.MakerRebateRate,
		TickSize:        pool.TickSize,
		LotSize:         pool.LotSize,
	})

	return pool, nil
}

func mapPoolConfigError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "QuoteAssetType":
			return ErrInvalidPair
		case "TickSize", "LotSize":
			return ErrInvalidTickSizeLotSize
		case "MakerRebateRate":
			return ErrInvalidFeeRateRebateRate
		case "CreationFee":
			return ErrInvalidFee
		}
	}
	return fmt.Errorf("clob: invalid pool config: %w", err)
}

func (p *Pool) emit(event events.Event) {
	if p.Sink == nil {
		return
	}
	p.Sink.Emit(event)
}

func (p *Pool) ownerOrders(owner string) *fifo.FIFO[uint64] {
	idx, ok := p.ownerIndex[owner]
	if !ok {
		idx = fifo.New[uint64]()
		p.ownerIndex[owner] = idx
	}
	return idx
}

// ladderFor returns the ladder an order of side isBid rests on.
func (p *Pool) ladderFor(isBid bool) *pricetree.Ladder[*TickLevel] {
	if isBid {
		return p.Bids
	}
	return p.Asks
}
