package clob

import (
	"math"

	"github.com/rs/zerolog/log"

	"clob/internal/capability"
	"clob/internal/events"
	"clob/internal/fixedpoint"
)

// nextOrderID draws the next id for side and advances that side's
// monotonic counter. The high bit of the id space partitions bids from
// asks, so side is always recoverable from the id alone.
func (p *Pool) nextOrderID(isBid bool) uint64 {
	if isBid {
		id := p.NextBidOrderID
		p.NextBidOrderID++
		return id
	}
	id := p.NextAskOrderID
	p.NextAskOrderID++
	return id
}

// injectOrder assigns the next id, inserts the order into its tick
// level (creating the level if needed), and adds it to the owner's
// open-order index. The reservation must already be locked by the
// caller before this runs.
func (p *Pool) injectOrder(owner string, clientOrderID, price, quantity uint64, isBid bool, expireTimestampMs uint64, selfMatch SelfMatchPrevention) uint64 {
	orderID := p.nextOrderID(isBid)
	order := &Order{
		OrderID:                orderID,
		ClientOrderID:          clientOrderID,
		Price:                  price,
		OriginalQuantity:       quantity,
		Quantity:               quantity,
		IsBid:                  isBid,
		Owner:                  owner,
		ExpireTimestampMs:      expireTimestampMs,
		SelfMatchingPrevention: selfMatch,
	}

	ladder := p.ladderFor(isBid)
	level, ok := ladder.Get(price)
	if !ok {
		level = newTickLevel(price)
		ladder.Insert(price, level)
	}
	level.Orders.PushBack(orderID, order)
	p.ownerOrders(owner).PushBack(orderID, price)

	p.emit(events.OrderPlaced{
		PoolID:                  p.ID,
		OrderID:                 orderID,
		ClientOrderID:           clientOrderID,
		IsBid:                   isBid,
		Owner:                   owner,
		OriginalQuantity:        quantity,
		BaseAssetQuantityPlaced: quantity,
		Price:                   price,
		ExpireTimestamp:         expireTimestampMs,
	})

	log.Debug().
		Uint64("orderID", orderID).
		Str("owner", owner).
		Bool("isBid", isBid).
		Uint64("price", price).
		Uint64("quantity", quantity).
		Msg("order injected")

	return orderID
}

// simulateLiquidity is a read-only dry run over the opposite ladder,
// used to pre-check fill-or-kill feasibility before any reservation is
// made, so a doomed FOK placement never mutates anything (the host
// transaction model this engine assumes guarantees atomic rollback on
// abort, but that model lives outside this library's scope; this
// library achieves the same "no partial state on error" outcome for FOK
// by checking feasibility before acting instead of rolling back after).
func (p *Pool) simulateLiquidity(isBid bool, priceLimit uint64, owner string, now uint64) uint64 {
	// A bid crosses asks ascending from the best (lowest) ask; an ask
	// crosses bids descending from the best (highest) bid.
	ladder := p.Asks
	if !isBid {
		ladder = p.Bids
	}

	var total uint64
	var price uint64
	var level *TickLevel
	var ok bool
	if isBid {
		price, level, ok = ladder.MinLeaf()
	} else {
		price, level, ok = ladder.MaxLeaf()
	}
	for ok {
		if isBid && price > priceLimit {
			break
		}
		if !isBid && price < priceLimit {
			break
		}
		level.Orders.Each(func(_ uint64, order *Order) bool {
			if !order.Expired(now) && order.Owner != owner {
				total += order.Quantity
			}
			return true
		})
		if isBid {
			price, level, ok = ladder.NextLeaf(price)
		} else {
			price, level, ok = ladder.PreviousLeaf(price)
		}
	}
	return total
}

// PlaceLimit injects, matches, and (depending on restriction) rests a
// limit order. It implements spec §4.5 end to end: reservation, crossing
// against the opposite book, restriction handling, reservation refund,
// and the placement event.
func (p *Pool) PlaceLimit(cap capability.Cap, clientOrderID, price, quantity uint64, selfMatch SelfMatchPrevention, isBid bool, expireTimestampMs uint64, restriction Restriction, now uint64) (baseFilled, quoteFilled uint64, resting bool, orderID uint64, metadata []events.Event, err error) {
	if restriction > PostOrAbort {
		return 0, 0, false, 0, nil, ErrInvalidRestriction
	}
	if err = p.validatePlacement(selfMatch, quantity, price, expireTimestampMs, now); err != nil {
		return 0, 0, false, 0, nil, err
	}

	owner := cap.Owner()

	if isBid {
		return p.placeLimitBid(owner, clientOrderID, price, quantity, selfMatch, expireTimestampMs, restriction, now)
	}
	return p.placeLimitAsk(owner, clientOrderID, price, quantity, selfMatch, expireTimestampMs, restriction, now)
}

func (p *Pool) placeLimitBid(owner string, clientOrderID, price, quantity uint64, selfMatch SelfMatchPrevention, expireTimestampMs uint64, restriction Restriction, now uint64) (baseFilled, quoteFilled uint64, resting bool, orderID uint64, metadata []events.Event, err error) {
	if restriction == PostOrAbort {
		if askPrice, _, ok := p.Asks.MinLeaf(); ok && askPrice <= price {
			return 0, 0, false, 0, nil, ErrOrderCannotBeFullyPassive
		}
	}
	if restriction == FillOrKill {
		if p.simulateLiquidity(true, price, owner, now) < quantity {
			return 0, 0, false, 0, nil, ErrOrderCannotBeFullyFilled
		}
	}

	notional, err := fixedpoint.Product(quantity, price)
	if err != nil {
		return 0, 0, false, 0, nil, err
	}
	feeCeiling, err := fixedpoint.CeilFee(notional, p.TakerFeeRate)
	if err != nil {
		return 0, 0, false, 0, nil, err
	}
	if feeCeiling > math.MaxUint64-notional {
		return 0, 0, false, 0, nil, fixedpoint.ErrOverflow
	}
	reserve := notional + feeCeiling
	if err = p.Quote.DebitAvailable(owner, reserve); err != nil {
		return 0, 0, false, 0, nil, ErrInsufficientQuoteCoin
	}

	baseFilled, quoteLeft, metadata, err := p.matchBid(owner, clientOrderID, quantity, price, now, reserve)
	if err != nil {
		if refundErr := p.Quote.CreditAvailable(owner, reserve); refundErr != nil {
			return 0, 0, false, 0, nil, refundErr
		}
		return 0, 0, false, 0, nil, err
	}
	quoteFilled = reserve - quoteLeft
	remainder := quantity - baseFilled

	switch restriction {
	case ImmediateOrCancel:
		if err = p.Quote.CreditAvailable(owner, quoteLeft); err != nil {
			return 0, 0, false, 0, nil, err
		}
		return baseFilled, quoteFilled, false, 0, metadata, nil
	default: // NoRestriction, FillOrKill, PostOrAbort
		if remainder == 0 {
			if err = p.Quote.CreditAvailable(owner, quoteLeft); err != nil {
				return 0, 0, false, 0, nil, err
			}
			return baseFilled, quoteFilled, false, 0, metadata, nil
		}
		lockAmt, lockErr := fixedpoint.Product(remainder, price)
		if lockErr != nil {
			if refundErr := p.Quote.CreditAvailable(owner, quoteLeft); refundErr != nil {
				return 0, 0, false, 0, nil, refundErr
			}
			return 0, 0, false, 0, nil, lockErr
		}
		if err = p.Quote.CreditLocked(owner, lockAmt); err != nil {
			return 0, 0, false, 0, nil, err
		}
		if err = p.Quote.CreditAvailable(owner, quoteLeft-lockAmt); err != nil {
			return 0, 0, false, 0, nil, err
		}
		orderID = p.injectOrder(owner, clientOrderID, price, remainder, true, expireTimestampMs, selfMatch)
		return baseFilled, quoteFilled, true, orderID, metadata, nil
	}
}

func (p *Pool) placeLimitAsk(owner string, clientOrderID, price, quantity uint64, selfMatch SelfMatchPrevention, expireTimestampMs uint64, restriction Restriction, now uint64) (baseFilled, quoteFilled uint64, resting bool, orderID uint64, metadata []events.Event, err error) {
	if restriction == PostOrAbort {
		if bidPrice, _, ok := p.Bids.MaxLeaf(); ok && bidPrice >= price {
			return 0, 0, false, 0, nil, ErrOrderCannotBeFullyPassive
		}
	}
	if restriction == FillOrKill {
		if p.simulateLiquidity(false, price, owner, now) < quantity {
			return 0, 0, false, 0, nil, ErrOrderCannotBeFullyFilled
		}
	}

	if err = p.Base.DebitAvailable(owner, quantity); err != nil {
		return 0, 0, false, 0, nil, ErrInsufficientBaseCoin
	}

	baseLeft, quoteFilled, metadata, err := p.matchAsk(owner, clientOrderID, price, now, quantity)
	if err != nil {
		if refundErr := p.Base.CreditAvailable(owner, quantity); refundErr != nil {
			return 0, 0, false, 0, nil, refundErr
		}
		return 0, 0, false, 0, nil, err
	}
	baseFilled = quantity - baseLeft

	switch restriction {
	case ImmediateOrCancel:
		if err = p.Base.CreditAvailable(owner, baseLeft); err != nil {
			return 0, 0, false, 0, nil, err
		}
		return baseFilled, quoteFilled, false, 0, metadata, nil
	default: // NoRestriction, FillOrKill, PostOrAbort
		if baseLeft == 0 {
			return baseFilled, quoteFilled, false, 0, metadata, nil
		}
		if err = p.Base.CreditLocked(owner, baseLeft); err != nil {
			return 0, 0, false, 0, nil, err
		}
		orderID = p.injectOrder(owner, clientOrderID, price, baseLeft, false, expireTimestampMs, selfMatch)
		return baseFilled, quoteFilled, true, orderID, metadata, nil
	}
}
