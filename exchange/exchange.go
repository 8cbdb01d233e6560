// Package exchange ties one asset's book, ledger and engine together behind a
// single facade the transport layer talks to.
package exchange

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"exchange/book"
	"exchange/engine"
	"exchange/ledger"
)

type Exchange struct {
	symbol string
	engine *engine.Engine
}

// New constructs a fresh exchange with its own book and ledger. Callers own
// the instance; nothing here is process-global, so tests can run several
// exchanges side by side.
func New(symbol string, logger zerolog.Logger) *Exchange {
	return &Exchange{
		symbol: symbol,
		engine: engine.New(book.New(), ledger.New(), logger),
	}
}

func (x *Exchange) Symbol() string {
	return x.symbol
}

// SubmitOrder runs the full match-and-rest sequence for one order.
func (x *Exchange) SubmitOrder(o book.Order) (engine.Execution, error) {
	return x.engine.Submit(o)
}

// LimitOrderView is the display shape of a resting order.
type LimitOrderView struct {
	ID          string    `json:"id"`
	Side        string    `json:"side"`
	Price       string    `json:"price"`
	Quantity    string    `json:"quantity"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type BookSnapshot struct {
	Symbol string           `json:"symbol"`
	Asks   []LimitOrderView `json:"sell_side"`
	Bids   []LimitOrderView `json:"buy_side"`
}

// BookSnapshot exports both sides in priority order.
func (x *Exchange) BookSnapshot() BookSnapshot {
	asks, bids := x.engine.BookSnapshot()
	return BookSnapshot{
		Symbol: x.symbol,
		Asks:   lo.Map(asks, toView),
		Bids:   lo.Map(bids, toView),
	}
}

// Depth reports resting order counts per side.
func (x *Exchange) Depth() (asks, bids int) {
	return x.engine.Depth()
}

// TransactionHistory returns executed trades in chronological order.
func (x *Exchange) TransactionHistory() []ledger.Transaction {
	return x.engine.History()
}

func toView(o book.Order, _ int) LimitOrderView {
	return LimitOrderView{
		ID:          o.ID.String(),
		Side:        string(o.Side),
		Price:       o.Price.StringFixed(book.Precision),
		Quantity:    o.Quantity.StringFixed(book.Precision),
		SubmittedAt: o.SubmittedAt,
	}
}
