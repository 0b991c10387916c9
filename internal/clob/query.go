package clob

import "clob/internal/capability"

// BestBid returns the highest resting bid price, if any.
func (p *Pool) BestBid() (price uint64, ok bool) {
	price, _, ok = p.Bids.MaxLeaf()
	return price, ok
}

// BestAsk returns the lowest resting ask price, if any.
func (p *Pool) BestAsk() (price uint64, ok bool) {
	price, _, ok = p.Asks.MinLeaf()
	return price, ok
}

// Level2 returns the active (non-expired) depth at every tick within
// [priceLow, priceHigh] on side, clamped to the ladder's own [min, max]
// range, omitting any price whose active depth is zero.
func (p *Pool) Level2(isBid bool, priceLow, priceHigh, now uint64) (prices []uint64, depths []uint64) {
	ladder := p.ladderFor(isBid)
	minPrice, _, hasMin := ladder.MinLeaf()
	maxPrice, _, hasMax := ladder.MaxLeaf()
	if !hasMin || !hasMax {
		return nil, nil
	}
	if priceLow < minPrice {
		priceLow = minPrice
	}
	if priceHigh > maxPrice {
		priceHigh = maxPrice
	}
	if priceLow > priceHigh {
		return nil, nil
	}

	price, ok := ladder.ClosestKey(priceLow)
	if !ok {
		return nil, nil
	}
	if price < priceLow {
		price, _, ok = ladder.NextLeaf(price)
	}
	level, ok := ladder.Get(price)

	for ok && price <= priceHigh {
		var depth uint64
		level.Orders.Each(func(_ uint64, order *Order) bool {
			if order.ExpireTimestampMs > now {
				depth += order.Quantity
			}
			return true
		})
		if depth > 0 {
			prices = append(prices, price)
			depths = append(depths, depth)
		}
		price, level, ok = ladder.NextLeaf(price)
	}
	return prices, depths
}

// GetOrder follows cap's owner index to the order for orderID, returning
// a clone so the caller cannot mutate the pool's resting state directly
// (spec §4.9: the query surface only ever hands out copies).
func (p *Pool) GetOrder(cap capability.Cap, orderID uint64) (*Order, error) {
	order, _, err := p.lookupOwned(cap.Owner(), orderID)
	if err != nil {
		return nil, err
	}
	cloned := *order
	return &cloned, nil
}

// ListOpenOrders returns a clone of every order currently open under
// cap's owner, iterating the owner index and cloning each referenced
// order per spec §4.9 so callers can never corrupt a resting order by
// mutating what this returns.
func (p *Pool) ListOpenOrders(cap capability.Cap) ([]*Order, error) {
	owner := cap.Owner()
	idx, ok := p.ownerIndex[owner]
	if !ok {
		return nil, ErrInvalidUser
	}

	orders := make([]*Order, 0, idx.Len())
	idx.Each(func(id uint64, price uint64) bool {
		ladder := p.ladderFor(IsBidOrderID(id))
		if level, ok := ladder.Get(price); ok {
			if order, ok := level.Orders.Get(id); ok {
				cloned := *order
				orders = append(orders, &cloned)
			}
		}
		return true
	})
	return orders, nil
}

// AccountBalance returns cap's owner's (base_avail, base_locked,
// quote_avail, quote_locked).
func (p *Pool) AccountBalance(cap capability.Cap) (baseAvail, baseLocked, quoteAvail, quoteLocked uint64) {
	owner := cap.Owner()
	baseAvail, baseLocked = p.Base.Balance(owner)
	quoteAvail, quoteLocked = p.Quote.Balance(owner)
	return baseAvail, baseLocked, quoteAvail, quoteLocked
}
