package clob

import (
	"clob/internal/capability"
	"clob/internal/events"
)

// PlaceMarket implements spec §4.7's market order: it crosses the book
// immediately against whatever liquidity is available at any price, never
// rests, and never partially rests either — the unspent side of whatever
// declared coin envelope the caller handed over (base_in for an ask,
// quote_in for a bid) is refunded to available.
func (p *Pool) PlaceMarket(cap capability.Cap, clientOrderID, quantity uint64, isBid bool, baseIn, quoteIn uint64, selfMatch SelfMatchPrevention, now uint64) (baseFilled, quoteFilled uint64, metadata []events.Event, err error) {
	if selfMatch != CancelOldestMaker {
		return 0, 0, nil, ErrInvalidSelfMatching
	}
	if quantity == 0 || quantity%p.LotSize != 0 {
		return 0, 0, nil, ErrInvalidQuantity
	}

	owner := cap.Owner()

	if isBid {
		if quoteIn == 0 {
			return 0, 0, nil, ErrInsufficientQuoteCoin
		}
		if err = p.Quote.DebitAvailable(owner, quoteIn); err != nil {
			return 0, 0, nil, ErrInsufficientQuoteCoin
		}
		baseFilled, quoteLeft, md, matchErr := p.matchBid(owner, clientOrderID, quantity, MaxPrice, now, quoteIn)
		if matchErr != nil {
			if refundErr := p.Quote.CreditAvailable(owner, quoteIn); refundErr != nil {
				return 0, 0, nil, refundErr
			}
			return 0, 0, nil, matchErr
		}
		if err = p.Quote.CreditAvailable(owner, quoteLeft); err != nil {
			return 0, 0, nil, err
		}
		return baseFilled, quoteIn - quoteLeft, md, nil
	}

	if baseIn == 0 || baseIn != quantity {
		return 0, 0, nil, ErrInvalidQuantity
	}
	if err = p.Base.DebitAvailable(owner, baseIn); err != nil {
		return 0, 0, nil, ErrInvalidQuantity
	}
	baseLeft, quoteOut, md, matchErr := p.matchAsk(owner, clientOrderID, MinPrice, now, baseIn)
	if matchErr != nil {
		if refundErr := p.Base.CreditAvailable(owner, baseIn); refundErr != nil {
			return 0, 0, nil, refundErr
		}
		return 0, 0, nil, matchErr
	}
	if err = p.Base.CreditAvailable(owner, baseLeft); err != nil {
		return 0, 0, nil, err
	}
	return baseIn - baseLeft, quoteOut, md, nil
}

// SwapExactBaseForQuote sells up to baseIn of base, crossing the bid
// ladder at any price, and returns the base sold and the quote received;
// any base left unsold is refunded to available. Identical in
// substance to a market ask; kept as its own entry point because the
// spec names it as distinct sugar over the same matching primitive.
func (p *Pool) SwapExactBaseForQuote(cap capability.Cap, clientOrderID, baseIn uint64, selfMatch SelfMatchPrevention, now uint64) (baseFilled, quoteOut uint64, metadata []events.Event, err error) {
	if selfMatch != CancelOldestMaker {
		return 0, 0, nil, ErrInvalidSelfMatching
	}
	if baseIn == 0 || baseIn%p.LotSize != 0 {
		return 0, 0, nil, ErrInvalidQuantity
	}

	owner := cap.Owner()
	if err = p.Base.DebitAvailable(owner, baseIn); err != nil {
		return 0, 0, nil, ErrInsufficientBaseCoin
	}
	baseLeft, quoteFilled, md, matchErr := p.matchAsk(owner, clientOrderID, MinPrice, now, baseIn)
	if matchErr != nil {
		if refundErr := p.Base.CreditAvailable(owner, baseIn); refundErr != nil {
			return 0, 0, nil, refundErr
		}
		return 0, 0, nil, matchErr
	}
	if err = p.Base.CreditAvailable(owner, baseLeft); err != nil {
		return 0, 0, nil, err
	}
	return baseIn - baseLeft, quoteFilled, md, nil
}

// SwapExactQuoteForBase spends up to quoteIn of quote, crossing the ask
// ladder at any price, lot-aligning the final partial fill the way
// matchBidWithQuoteQuantity does for any quote-budget-driven sweep; the
// unspent remainder of quoteIn is refunded to available.
func (p *Pool) SwapExactQuoteForBase(cap capability.Cap, clientOrderID, quoteIn uint64, selfMatch SelfMatchPrevention, now uint64) (baseFilled, quoteFilled uint64, metadata []events.Event, err error) {
	if selfMatch != CancelOldestMaker {
		return 0, 0, nil, ErrInvalidSelfMatching
	}
	if quoteIn == 0 {
		return 0, 0, nil, ErrInvalidQuantity
	}

	owner := cap.Owner()
	if err = p.Quote.DebitAvailable(owner, quoteIn); err != nil {
		return 0, 0, nil, ErrInsufficientQuoteCoin
	}
	baseOut, quoteLeft, md, matchErr := p.matchBidWithQuoteQuantity(owner, clientOrderID, MaxPrice, now, quoteIn)
	if matchErr != nil {
		if refundErr := p.Quote.CreditAvailable(owner, quoteIn); refundErr != nil {
			return 0, 0, nil, refundErr
		}
		return 0, 0, nil, matchErr
	}
	if err = p.Quote.CreditAvailable(owner, quoteLeft); err != nil {
		return 0, 0, nil, err
	}
	return baseOut, quoteIn - quoteLeft, md, nil
}
