package clob

import (
	"clob/internal/capability"
	"clob/internal/events"
	"clob/internal/fixedpoint"
)

// lookupOwned resolves orderID through owner's open-order index, checks
// that owner actually holds it, and returns the order together with its
// tick level. It never mutates anything.
func (p *Pool) lookupOwned(owner string, orderID uint64) (*Order, *TickLevel, error) {
	idx, ok := p.ownerIndex[owner]
	if !ok {
		return nil, nil, ErrInvalidUser
	}
	price, ok := idx.Get(orderID)
	if !ok {
		return nil, nil, ErrInvalidOrderID
	}
	ladder := p.ladderFor(IsBidOrderID(orderID))
	level, ok := ladder.Get(price)
	if !ok {
		return nil, nil, ErrInvalidTickPrice
	}
	order, ok := level.Orders.Get(orderID)
	if !ok {
		return nil, nil, ErrInvalidOrderID
	}
	if order.Owner != owner {
		return nil, nil, ErrUnauthorizedCancel
	}
	return order, level, nil
}

// cancelOrder performs the shared removal + unlock + component-build
// logic for single cancel, batch cancel, cancel-all, and the expired
// sweep.
func (p *Pool) cancelOrder(order *Order) (events.OrderCanceledComponent, error) {
	p.removeFromBook(order)

	if order.IsBid {
		amount, err := fixedpoint.Product(order.Quantity, order.Price)
		if err != nil {
			return events.OrderCanceledComponent{}, err
		}
		if err := p.Quote.Unlock(order.Owner, amount); err != nil {
			return events.OrderCanceledComponent{}, err
		}
	} else {
		if err := p.Base.Unlock(order.Owner, order.Quantity); err != nil {
			return events.OrderCanceledComponent{}, err
		}
	}

	return events.OrderCanceledComponent{
		OrderID:                   order.OrderID,
		ClientOrderID:             order.ClientOrderID,
		IsBid:                     order.IsBid,
		Owner:                     order.Owner,
		OriginalQuantity:          order.OriginalQuantity,
		BaseAssetQuantityCanceled: order.Quantity,
		Price:                     order.Price,
	}, nil
}

// CancelOne cancels a single order owned by cap, unlocking its
// reservation and emitting OrderCanceled.
func (p *Pool) CancelOne(cap capability.Cap, orderID uint64) error {
	order, _, err := p.lookupOwned(cap.Owner(), orderID)
	if err != nil {
		return err
	}
	component, err := p.cancelOrder(order)
	if err != nil {
		return err
	}
	p.emit(events.OrderCanceled{PoolID: p.ID, OrderCanceledComponent: component})
	return nil
}

// CancelBatch cancels every id in ids, all of which must belong to cap;
// any mismatch aborts the whole batch before any of it is applied.
func (p *Pool) CancelBatch(cap capability.Cap, ids []uint64) error {
	owner := cap.Owner()
	orders := make([]*Order, 0, len(ids))
	for _, id := range ids {
		order, _, err := p.lookupOwned(owner, id)
		if err != nil {
			return err
		}
		orders = append(orders, order)
	}

	components := make([]events.OrderCanceledComponent, 0, len(orders))
	for _, order := range orders {
		component, err := p.cancelOrder(order)
		if err != nil {
			return err
		}
		components = append(components, component)
	}

	p.emit(events.AllOrdersCanceled{PoolID: p.ID, OrdersCanceled: components})
	return nil
}

// CancelAll drains cap's entire open-order index. A no-op on an already
// empty index, making repeated calls idempotent.
func (p *Pool) CancelAll(cap capability.Cap) error {
	owner := cap.Owner()
	idx, ok := p.ownerIndex[owner]
	if !ok || idx.IsEmpty() {
		return nil
	}

	ids := make([]uint64, 0, idx.Len())
	idx.Each(func(id uint64, _ uint64) bool {
		ids = append(ids, id)
		return true
	})

	components := make([]events.OrderCanceledComponent, 0, len(ids))
	for _, id := range ids {
		order, _, err := p.lookupOwned(owner, id)
		if err != nil {
			return err
		}
		component, err := p.cancelOrder(order)
		if err != nil {
			return err
		}
		components = append(components, component)
	}

	p.emit(events.AllOrdersCanceled{PoolID: p.ID, OrdersCanceled: components})
	return nil
}

// SweepExpired cancels every (orderID, owner) pair whose order has
// actually expired as of now, silently skipping entries whose owner has
// no index or whose id is absent — this is the only cancellation path
// that tolerates missing entries, since a sweeper works off a snapshot
// that may have raced against earlier cancellations.
func (p *Pool) SweepExpired(orderIDs []uint64, owners []string, now uint64) error {
	if len(orderIDs) != len(owners) {
		return ErrInvalidOrderID
	}

	var components []events.OrderCanceledComponent
	for i, orderID := range orderIDs {
		owner := owners[i]
		idx, ok := p.ownerIndex[owner]
		if !ok {
			continue
		}
		if _, ok := idx.Get(orderID); !ok {
			continue
		}
		order, _, err := p.lookupOwned(owner, orderID)
		if err != nil {
			return err
		}
		if order.ExpireTimestampMs >= now {
			return ErrInvalidExpireTimestamp
		}
		component, err := p.cancelOrder(order)
		if err != nil {
			return err
		}
		components = append(components, component)
	}

	if len(components) == 0 {
		return nil
	}
	p.emit(events.AllOrdersCanceled{PoolID: p.ID, OrdersCanceled: components})
	return nil
}
