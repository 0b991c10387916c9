package clob

import "clob/internal/fifo"

// Order is a single resting or just-placed limit order. Quantity is the
// remaining amount; OriginalQuantity never changes after injection.
type Order struct {
	OrderID                 uint64
	ClientOrderID           uint64
	Price                   uint64
	OriginalQuantity        uint64
	Quantity                uint64
	IsBid                   bool
	Owner                   string
	ExpireTimestampMs       uint64
	SelfMatchingPrevention  SelfMatchPrevention
}

// Expired reports whether this order's expiry has passed at now
// (inclusive: an order with ExpireTimestampMs == now has expired).
func (o *Order) Expired(now uint64) bool {
	return o.ExpireTimestampMs <= now
}

// TickLevel is all open orders at a single price on one side, ordered
// FIFO by insertion (= order-id order, under the per-side monotonic
// counter discipline).
type TickLevel struct {
	Price  uint64
	Orders *fifo.FIFO[*Order]
}

func newTickLevel(price uint64) *TickLevel {
	return &TickLevel{Price: price, Orders: fifo.New[*Order]()}
}
