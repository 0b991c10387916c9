package clob

import (
	"github.com/rs/zerolog/log"

	"clob/internal/fixedpoint"
	"clob/internal/events"
)

// removeFromBook detaches order from its tick level's FIFO and the
// owner's open-order index, deleting the tick level if it became empty.
// Safe to call mid-iteration over the tick's FIFO as long as the
// successor id was captured before the call (spec §9, "skipped-maker
// cancellation path").
func (p *Pool) removeFromBook(order *Order) {
	ladder := p.ladderFor(order.IsBid)
	level, ok := ladder.Get(order.Price)
	if ok {
		level.Orders.Remove(order.OrderID)
		if level.Orders.IsEmpty() {
			ladder.Remove(order.Price)
		}
	}
	if idx, ok := p.ownerIndex[order.Owner]; ok {
		idx.Remove(order.OrderID)
	}
}

// skipMaker implements the self-match/expiry skip rule: the maker is
// pulled from the book, its reservation unlocked in full, and an
// OrderCanceled component is appended to metadata. No fill occurs and
// the taker is not charged.
func (p *Pool) skipMaker(maker *Order, metadata *[]events.Event) error {
	p.removeFromBook(maker)

	if maker.IsBid {
		if err := p.Quote.Unlock(maker.Owner, maker.Quantity*maker.Price); err != nil {
			return err
		}
	} else {
		if err := p.Base.Unlock(maker.Owner, maker.Quantity); err != nil {
			return err
		}
	}

	component := events.OrderCanceledComponent{
		OrderID:                   maker.OrderID,
		ClientOrderID:             maker.ClientOrderID,
		IsBid:                     maker.IsBid,
		Owner:                     maker.Owner,
		OriginalQuantity:          maker.OriginalQuantity,
		BaseAssetQuantityCanceled: maker.Quantity,
		Price:                     maker.Price,
	}
	p.emit(events.OrderCanceled{PoolID: p.ID, OrderCanceledComponent: component})
	*metadata = append(*metadata, events.OrderCanceled{PoolID: p.ID, OrderCanceledComponent: component})

	log.Debug().
		Uint64("orderID", maker.OrderID).
		Str("owner", maker.Owner).
		Msg("maker skipped during match (expired or self-match)")
	return nil
}

// fillLegs computes the rounded fee/rebate pair for a fill of size
// filledQuote, enforcing the spec §9 bias: taker commission rounds up
// (floor, bumped to 1 on nonzero-truncated-to-zero), maker rebate always
// rounds down.
func fillLegs(filledQuote, takerRate, makerRate uint64) (commission, rebate uint64, err error) {
	commission, err = fixedpoint.CeilFee(filledQuote, takerRate)
	if err != nil {
		return 0, 0, err
	}
	rebate, err = fixedpoint.FloorRebate(filledQuote, makerRate)
	if err != nil {
		return 0, 0, err
	}
	return commission, rebate, nil
}

// matchBid walks the ask ladder from the lowest price upward while
// tick_price <= priceLimit, consuming up to baseWanted units of base
// funded by quoteIn. Returns the base actually received and the unspent
// remainder of quoteIn.
func (p *Pool) matchBid(takerOwner string, takerClientID uint64, baseWanted uint64, priceLimit uint64, now uint64, quoteIn uint64) (baseOut uint64, quoteLeft uint64, metadata []events.Event, err error) {
	remaining := baseWanted
	quoteLeft = quoteIn

	for remaining > 0 {
		price, level, ok := p.Asks.MinLeaf()
		if !ok || price > priceLimit {
			break
		}

		for remaining > 0 {
			_, maker, ok := level.Orders.Front()
			if !ok {
				break
			}

			if maker.Expired(now) || maker.Owner == takerOwner {
				if err = p.skipMaker(maker, &metadata); err != nil {
					return 0, 0, nil, err
				}
				continue
			}

			filledBase := min(remaining, maker.Quantity)
			filledQuote, err2 := fixedpoint.Product(filledBase, maker.Price)
			if err2 != nil {
				return 0, 0, nil, err2
			}
			commission, rebate, err2 := fillLegs(filledQuote, p.TakerFeeRate, p.MakerRebateRate)
			if err2 != nil {
				return 0, 0, nil, err2
			}
			cost := filledQuote + commission
			if cost > quoteLeft {
				// Book liquidity outran the taker's reserved envelope; stop
				// here with a partial fill rather than erroring.
				return baseOut, quoteLeft, metadata, nil
			}

			if err2 = p.Base.DebitLocked(maker.Owner, filledBase); err2 != nil {
				return 0, 0, nil, err2
			}
			if err2 = p.Base.CreditAvailable(takerOwner, filledBase); err2 != nil {
				return 0, 0, nil, err2
			}
			quoteLeft -= cost
			if err2 = p.Quote.CreditAvailable(maker.Owner, filledQuote+rebate); err2 != nil {
				return 0, 0, nil, err2
			}
			p.QuoteFeeSink += commission - rebate

			maker.Quantity -= filledBase
			remaining -= filledBase
			baseOut += filledBase

			fillEvent := events.OrderFilled{
				PoolID:                     p.ID,
				OrderID:                    maker.OrderID,
				TakerClientOrderID:         takerClientID,
				MakerClientOrderID:         maker.ClientOrderID,
				IsBid:                      maker.IsBid,
				TakerAddress:               takerOwner,
				MakerAddress:               maker.Owner,
				OriginalQuantity:           maker.OriginalQuantity,
				BaseAssetQuantityFilled:    filledBase,
				BaseAssetQuantityRemaining: maker.Quantity,
				Price:                      maker.Price,
				TakerCommission:            commission,
				MakerRebates:               rebate,
			}
			p.emit(fillEvent)
			metadata = append(metadata, fillEvent)

			if maker.Quantity == 0 {
				p.removeFromBook(maker)
			}
		}
	}

	return baseOut, quoteLeft, metadata, nil
}

// matchBidWithQuoteQuantity is the variant used by swap_exact_quote_for_base:
// it takes a quote budget rather than a base target, filling whole makers
// while the budget covers them and lot-aligning the final partial fill.
func (p *Pool) matchBidWithQuoteQuantity(takerOwner string, takerClientID uint64, priceLimit uint64, now uint64, quoteBudget uint64) (baseOut uint64, quoteLeft uint64, metadata []events.Event, err error) {
	quoteLeft = quoteBudget

	for quoteLeft > 0 {
		price, level, ok := p.Asks.MinLeaf()
		if !ok || price > priceLimit {
			break
		}

		doneWithTick := false
		for !doneWithTick {
			_, maker, ok := level.Orders.Front()
			if !ok {
				break
			}

			if maker.Expired(now) || maker.Owner == takerOwner {
				if err = p.skipMaker(maker, &metadata); err != nil {
					return 0, 0, nil, err
				}
				continue
			}

			makerFullQuote, err2 := fixedpoint.Product(maker.Quantity, maker.Price)
			if err2 != nil {
				return 0, 0, nil, err2
			}
			makerFullCommission, _, err2 := fillLegs(makerFullQuote, p.TakerFeeRate, p.MakerRebateRate)
			if err2 != nil {
				return 0, 0, nil, err2
			}

			var filledBase uint64
			if makerFullQuote+makerFullCommission <= quoteLeft {
				filledBase = maker.Quantity
			} else {
				filledBase, err2 = maxAffordableBase(quoteLeft, maker.Price, p.LotSize, p.TakerFeeRate, maker.Quantity)
				if err2 != nil {
					return 0, 0, nil, err2
				}
				if filledBase == 0 {
					return baseOut, quoteLeft, metadata, nil
				}
			}

			filledQuote, err2 := fixedpoint.Product(filledBase, maker.Price)
			if err2 != nil {
				return 0, 0, nil, err2
			}
			commission, rebate, err2 := fillLegs(filledQuote, p.TakerFeeRate, p.MakerRebateRate)
			if err2 != nil {
				return 0, 0, nil, err2
			}

			if err2 = p.Base.DebitLocked(maker.Owner, filledBase); err2 != nil {
				return 0, 0, nil, err2
			}
			if err2 = p.Base.CreditAvailable(takerOwner, filledBase); err2 != nil {
				return 0, 0, nil, err2
			}
			quoteLeft -= filledQuote + commission
			if err2 = p.Quote.CreditAvailable(maker.Owner, filledQuote+rebate); err2 != nil {
				return 0, 0, nil, err2
			}
			p.QuoteFeeSink += commission - rebate

			maker.Quantity -= filledBase
			baseOut += filledBase

			fillEvent := events.OrderFilled{
				PoolID:                     p.ID,
				OrderID:                    maker.OrderID,
				TakerClientOrderID:         takerClientID,
				MakerClientOrderID:         maker.ClientOrderID,
				IsBid:                      maker.IsBid,
				TakerAddress:               takerOwner,
				MakerAddress:               maker.Owner,
				OriginalQuantity:           maker.OriginalQuantity,
				BaseAssetQuantityFilled:    filledBase,
				BaseAssetQuantityRemaining: maker.Quantity,
				Price:                      maker.Price,
				TakerCommission:            commission,
				MakerRebates:               rebate,
			}
			p.emit(fillEvent)
			metadata = append(metadata, fillEvent)

			fullyConsumedMaker := maker.Quantity == 0
			if fullyConsumedMaker {
				p.removeFromBook(maker)
			} else {
				// Partial fill means the remaining budget cannot buy another
				// lot from this maker: stop entirely, leaving the residual in
				// quoteLeft for the caller to refund.
				doneWithTick = true
			}
		}
		if doneWithTick || quoteLeft == 0 {
			break
		}
	}

	return baseOut, quoteLeft, metadata, nil
}

// maxAffordableBase returns the largest multiple of lot (capped at cap)
// whose cost (base*price plus the taker commission on it) fits within
// budget, found by binary search since the commission term is a
// monotonic but non-linear function of base.
func maxAffordableBase(budget, price, lot, takerRate, cap uint64) (uint64, error) {
	if lot == 0 {
		return 0, ErrInvalidTickSizeLotSize
	}
	maxLots := cap / lot
	lo, hi := uint64(0), maxLots
	afford := func(lots uint64) (bool, error) {
		base := lots * lot
		quote, err := fixedpoint.Product(base, price)
		if err != nil {
			return false, err
		}
		commission, err := fixedpoint.CeilFee(quote, takerRate)
		if err != nil {
			return false, err
		}
		return quote+commission <= budget, nil
	}
	best := uint64(0)
	for lo <= hi {
		mid := lo + (hi-lo)/2
		ok, err := afford(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			best = mid
			lo = mid + 1
		} else {
			if mid == 0 {
				break
			}
			hi = mid - 1
		}
	}
	return best * lot, nil
}

// matchAsk walks the bid ladder from the highest price downward while
// tick_price >= priceLimit, consuming up to baseIn units of base.
func (p *Pool) matchAsk(takerOwner string, takerClientID uint64, priceLimit uint64, now uint64, baseIn uint64) (baseLeft uint64, quoteOut uint64, metadata []events.Event, err error) {
	baseLeft = baseIn

	for baseLeft > 0 {
		price, level, ok := p.Bids.MaxLeaf()
		if !ok || price < priceLimit {
			break
		}

		for baseLeft > 0 {
			_, maker, ok := level.Orders.Front()
			if !ok {
				break
			}

			if maker.Expired(now) || maker.Owner == takerOwner {
				if err = p.skipMaker(maker, &metadata); err != nil {
					return 0, 0, nil, err
				}
				continue
			}

			filledBase := min(baseLeft, maker.Quantity)
			// Exact integer product: quote = base * price with no /Scale
			// division at this call site (spec §4.1's injection rule
			// applied symmetrically to matching), so this never actually
			// truncates; the fee sink compensation spec §4.6 describes
			// for a scaled variant does not apply here.
			filledQuote, err2 := fixedpoint.Product(filledBase, maker.Price)
			if err2 != nil {
				return 0, 0, nil, err2
			}
			commission, rebate, err2 := fillLegs(filledQuote, p.TakerFeeRate, p.MakerRebateRate)
			if err2 != nil {
				return 0, 0, nil, err2
			}

			if err2 = p.Quote.DebitLocked(maker.Owner, filledQuote); err2 != nil {
				return 0, 0, nil, err2
			}
			if err2 = p.Base.CreditAvailable(maker.Owner, filledBase); err2 != nil {
				return 0, 0, nil, err2
			}
			quoteOut += filledQuote - commission
			if err2 = p.Quote.CreditAvailable(takerOwner, filledQuote-commission); err2 != nil {
				return 0, 0, nil, err2
			}
			if err2 = p.Quote.CreditAvailable(maker.Owner, rebate); err2 != nil {
				return 0, 0, nil, err2
			}
			p.QuoteFeeSink += commission - rebate

			maker.Quantity -= filledBase
			baseLeft -= filledBase

			fillEvent := events.OrderFilled{
				PoolID:                     p.ID,
				OrderID:                    maker.OrderID,
				TakerClientOrderID:         takerClientID,
				MakerClientOrderID:         maker.ClientOrderID,
				IsBid:                      maker.IsBid,
				TakerAddress:               takerOwner,
				MakerAddress:               maker.Owner,
				OriginalQuantity:           maker.OriginalQuantity,
				BaseAssetQuantityFilled:    filledBase,
				BaseAssetQuantityRemaining: maker.Quantity,
				Price:                      maker.Price,
				TakerCommission:            commission,
				MakerRebates:               rebate,
			}
			p.emit(fillEvent)
			metadata = append(metadata, fillEvent)

			if maker.Quantity == 0 {
				p.removeFromBook(maker)
			}
		}
	}

	return baseLeft, quoteOut, metadata, nil
}
