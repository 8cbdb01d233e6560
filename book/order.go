package book

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Opposite returns the side an order matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

type OrderType string

const (
	Market OrderType = "market"
	Limit  OrderType = "limit"
)

// Precision is the fixed number of decimal places for prices and quantities.
const Precision = 4

// Quantize re-rounds a value to the book's fixed precision. Every computed
// quantity goes through this before storage or comparison.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// Order is the tagged union of the two order kinds. Price is meaningful only
// when Type is Limit. Seq is a monotonic submission counter stamped by the
// engine; it makes the side comparators a total order and keeps a partially
// filled order in place across pop/re-insert cycles.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	Side        Side            `json:"side"`
	Type        OrderType       `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Quantity    decimal.Decimal `json:"quantity"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Seq         uint64          `json:"-"`
}

// WithQuantity returns a copy of the order with its quantity replaced.
// Orders are treated as owned values: fills never mutate a shared instance.
func (o Order) WithQuantity(q decimal.Decimal) Order {
	o.Quantity = Quantize(q)
	return o
}

// ToLimit converts a market order into a limit order at the given price.
func (o Order) ToLimit(price decimal.Decimal) Order {
	o.Type = Limit
	o.Price = Quantize(price)
	return o
}
