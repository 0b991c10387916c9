// Package events defines the structured event records the engine emits
// and the abstract Sink it emits them through. Serialization and
// transport are out of scope (spec §1): a sink receives these records
// verbatim.
//
// Grounded on internal/common/trade.go and internal/net/messages.go's
// generateWireTradeReports/generateWireErrorReports in the teacher,
// generalized from wire-serialized reports to abstract structured
// records.
package events

// Event is the common marker interface for every record type below.
type Event interface {
	eventMarker()
}

// PoolCreated is emitted once, when a pool is created.
type PoolCreated struct {
	PoolID          string
	BaseAssetType   string
	QuoteAssetType  string
	TakerFeeRate    uint64
	MakerRebateRate uint64
	TickSize        uint64
	LotSize         uint64
}

func (PoolCreated) eventMarker() {}

// OrderPlaced is emitted exactly when an order is injected into the
// ladder (never for orders that fill away entirely).
type OrderPlaced struct {
	PoolID                   string
	OrderID                  uint64
	ClientOrderID            uint64
	IsBid                    bool
	Owner                    string
	OriginalQuantity         uint64
	BaseAssetQuantityPlaced  uint64
	Price                    uint64
	ExpireTimestamp          uint64
}

func (OrderPlaced) eventMarker() {}

// OrderCanceledComponent is one entry of a batch/all-orders cancellation,
// and is also embedded standalone in OrderCanceled for a single cancel.
type OrderCanceledComponent struct {
	OrderID                  uint64
	ClientOrderID            uint64
	IsBid                    bool
	Owner                    string
	OriginalQuantity         uint64
	BaseAssetQuantityCanceled uint64
	Price                    uint64
}

// OrderCanceled is emitted for a single-order cancellation (including a
// maker skipped during matching for expiry or self-match).
type OrderCanceled struct {
	PoolID string
	OrderCanceledComponent
}

func (OrderCanceled) eventMarker() {}

// AllOrdersCanceled coalesces many cancellations (batch cancel, cancel
// all, or an expired sweep) into one event.
type AllOrdersCanceled struct {
	PoolID         string
	OrdersCanceled []OrderCanceledComponent
}

func (AllOrdersCanceled) eventMarker() {}

// OrderFilled is emitted once per maker consumed during a match.
type OrderFilled struct {
	PoolID                    string
	OrderID                   uint64
	TakerClientOrderID        uint64
	MakerClientOrderID        uint64
	IsBid                     bool
	TakerAddress              string
	MakerAddress              string
	OriginalQuantity          uint64
	BaseAssetQuantityFilled   uint64
	BaseAssetQuantityRemaining uint64
	Price                     uint64
	TakerCommission           uint64
	MakerRebates              uint64
}

func (OrderFilled) eventMarker() {}

// DepositAsset is emitted by the pool's deposit entry points
// (DepositBase/DepositQuote); the custody ledger itself emits nothing.
type DepositAsset struct {
	PoolID   string
	AssetTag string
	Quantity uint64
	Owner    string
}

func (DepositAsset) eventMarker() {}

// WithdrawAsset is emitted by the pool's withdraw entry points
// (WithdrawBase/WithdrawQuote); the custody ledger itself emits nothing.
type WithdrawAsset struct {
	PoolID   string
	AssetTag string
	Quantity uint64
	Owner    string
}

func (WithdrawAsset) eventMarker() {}

// Sink receives structured event records. Implementations decide how (or
// whether) to persist, forward, or serialize them.
type Sink interface {
	Emit(Event)
}

// Recorder is an in-memory Sink used by tests and by callers who want to
// inspect everything a call emitted.
type Recorder struct {
	Events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit appends event to the recorder's log.
func (r *Recorder) Emit(event Event) {
	r.Events = append(r.Events, event)
}
