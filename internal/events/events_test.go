package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clob/internal/events"
)

func TestRecorderAppendsInOrder(t *testing.T) {
	r := events.NewRecorder()
	r.Emit(events.PoolCreated{PoolID: "p1"})
	r.Emit(events.OrderPlaced{PoolID: "p1", OrderID: 1})
	r.Emit(events.OrderFilled{PoolID: "p1", OrderID: 1})

	assert.Len(t, r.Events, 3)
	assert.IsType(t, events.PoolCreated{}, r.Events[0])
	assert.IsType(t, events.OrderPlaced{}, r.Events[1])
	assert.IsType(t, events.OrderFilled{}, r.Events[2])
}

func TestAllOrdersCanceledCoalescesComponents(t *testing.T) {
	evt := events.AllOrdersCanceled{
		PoolID: "p1",
		OrdersCanceled: []events.OrderCanceledComponent{
			{OrderID: 1, Owner: "alice"},
			{OrderID: 2, Owner: "alice"},
		},
	}
	assert.Len(t, evt.OrdersCanceled, 2)
	assert.Equal(t, uint64(1), evt.OrdersCanceled[0].OrderID)
}
