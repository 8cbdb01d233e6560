// Package engine implements price-time priority matching over the book.
package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"exchange/book"
	"exchange/ledger"
)

type FillState string

const (
	FillFull    FillState = "full"
	FillPartial FillState = "partial"
	FillNone    FillState = "no_fill"
)

// ErrNoReferencePrice rejects a market order that cannot be priced: no resting
// liquidity absorbed it and the ledger holds no prior trade to convert it at.
var ErrNoReferencePrice = errors.New("cannot price market order: no prior trades")

// Execution is the outcome of one matching pass. Residual carries the incoming
// order with its quantity reduced to whatever remains unfilled.
type Execution struct {
	FillState FillState            `json:"fill_state"`
	Trades    []ledger.Transaction `json:"trades"`
	Residual  book.Order           `json:"residual"`
}

// Engine serializes match-and-rest sequences over one book and ledger. The
// mutex is the single exclusion boundary: matching never takes finer locks.
type Engine struct {
	mu     sync.Mutex
	book   *book.Book
	ledger ledger.Repo
	logger zerolog.Logger
	seq    uint64
}

func New(b *book.Book, l ledger.Repo, logger zerolog.Logger) *Engine {
	return &Engine{book: b, ledger: l, logger: logger}
}

// Submit matches the incoming order against the opposite side and rests the
// remainder per the resting policy. The whole sequence runs under the engine
// lock; the lock is released on every path, the rejection path included.
func (e *Engine) Submit(o book.Order) (Execution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++
	o.Seq = e.seq
	o.Quantity = book.Quantize(o.Quantity)

	var exec Execution
	if o.Type == book.Market {
		exec = e.matchMarket(o)
	} else {
		exec = e.matchLimit(o)
	}

	if exec.FillState != FillFull {
		if err := e.rest(o.Type, exec.Residual); err != nil {
			e.logger.Warn().
				Str("order", o.ID.String()).
				Str("side", string(o.Side)).
				Msg("market order rejected, no reference price")
			return Execution{}, err
		}
	}

	e.logger.Debug().
		Str("order", o.ID.String()).
		Str("side", string(o.Side)).
		Str("type", string(o.Type)).
		Str("fill_state", string(exec.FillState)).
		Int("trades", len(exec.Trades)).
		Msg("order executed")
	return exec, nil
}

// matchMarket consumes the opposing queue head-first until demand is exhausted
// or the queue empties. A market order never stops on price.
func (e *Engine) matchMarket(incoming book.Order) Execution {
	against := incoming.Side.Opposite()
	demand := incoming.Quantity
	trades := make([]ledger.Transaction, 0)

	for demand.IsPositive() {
		resting, ok := e.book.Pop(against)
		if !ok {
			break
		}
		delta := resting.Quantity.Sub(demand)
		if delta.IsPositive() {
			// More supply than demand: trade the demand, re-queue the rest.
			trades = append(trades, e.record(incoming, resting, demand))
			demand = decimal.Zero
			e.book.Insert(resting.WithQuantity(delta))
		} else {
			// Resting order exhausted, keep walking the queue.
			trades = append(trades, e.record(incoming, resting, resting.Quantity))
			demand = book.Quantize(delta.Neg())
		}
	}

	return classify(incoming, trades, demand)
}

// matchLimit peeks rather than pops: the queue head may sit beyond the limit,
// in which case the loop must stop without disturbing the book.
func (e *Engine) matchLimit(incoming book.Order) Execution {
	against := incoming.Side.Opposite()
	remaining := incoming.Quantity
	trades := make([]ledger.Transaction, 0)

	for remaining.IsPositive() {
		resting, ok := e.book.Peek(against)
		if !ok || !limitCovered(resting.Price, incoming) {
			break
		}
		delta := resting.Quantity.Sub(remaining)
		if delta.IsPositive() {
			trades = append(trades, e.record(incoming, resting, remaining))
			remaining = decimal.Zero
			e.book.Pop(against)
			e.book.Insert(resting.WithQuantity(delta))
		} else {
			trades = append(trades, e.record(incoming, resting, resting.Quantity))
			e.book.Pop(against)
			remaining = book.Quantize(delta.Neg())
		}
	}

	return classify(incoming, trades, remaining)
}

// limitCovered reports whether the book's best price satisfies the incoming
// limit: best ask <= limit for a buy, best bid >= limit for a sell.
func limitCovered(restingPrice decimal.Decimal, incoming book.Order) bool {
	if incoming.Side == book.Buy {
		return restingPrice.LessThanOrEqual(incoming.Price)
	}
	return restingPrice.GreaterThanOrEqual(incoming.Price)
}

// record appends a trade to the ledger immediately, before the match loop
// continues, so ledger order reflects priority order. The trade executes at
// the resting order's price.
func (e *Engine) record(incoming, resting book.Order, qty decimal.Decimal) ledger.Transaction {
	sellerID, buyerID := incoming.ID, resting.ID
	if incoming.Side == book.Buy {
		sellerID, buyerID = resting.ID, incoming.ID
	}
	t := ledger.Transaction{
		SellerID:  sellerID,
		BuyerID:   buyerID,
		Price:     resting.Price,
		Quantity:  book.Quantize(qty),
		Timestamp: time.Now(),
	}
	e.ledger.Record(t)
	return t
}

func classify(incoming book.Order, trades []ledger.Transaction, remaining decimal.Decimal) Execution {
	residual := incoming.WithQuantity(remaining)
	state := FillFull
	switch {
	case len(trades) == 0:
		state = FillNone
	case remaining.IsPositive():
		state = FillPartial
	}
	return Execution{FillState: state, Trades: trades, Residual: residual}
}

// rest applies the resting policy to an unfilled remainder. A limit order
// rests on its own side as-is; a market order is converted at the last traded
// price, or the submission fails outright when no trade has ever happened.
func (e *Engine) rest(typ book.OrderType, residual book.Order) error {
	if typ == book.Limit {
		e.book.Insert(residual)
		return nil
	}
	last, ok := e.ledger.Last()
	if !ok {
		return ErrNoReferencePrice
	}
	e.book.Insert(residual.ToLimit(last.Price))
	return nil
}

// BookSnapshot exports both sides in priority order. It takes the engine lock
// so the view is consistent with in-flight matches.
func (e *Engine) BookSnapshot() (asks, bids []book.Order) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Snapshot(book.Sell), e.book.Snapshot(book.Buy)
}

// Depth reports the number of resting orders per side.
func (e *Engine) Depth() (asks, bids int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Len(book.Sell), e.book.Len(book.Buy)
}

// History returns the trade history in chronological order.
func (e *Engine) History() []ledger.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.All()
}
