package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an executed trade. Records are immutable once appended.
type Transaction struct {
	SellerID  uuid.UUID       `json:"seller_id"`
	BuyerID   uuid.UUID       `json:"buyer_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Timestamp time.Time       `json:"timestamp"`
}

type Repo interface {
	Record(Transaction)
	Last() (Transaction, bool)
	All() []Transaction
}

// Ledger is the in-memory append-only trade history. It carries no locking of
// its own; the engine touches it only from within its exclusive section.
type Ledger struct {
	history []Transaction
}

func New() *Ledger {
	return &Ledger{history: make([]Transaction, 0)}
}

func (l *Ledger) Record(t Transaction) {
	l.history = append(l.history, t)
}

// Last returns the most recently recorded transaction. The second return is
// false when the asset has never traded.
func (l *Ledger) Last() (Transaction, bool) {
	if len(l.history) == 0 {
		return Transaction{}, false
	}
	return l.history[len(l.history)-1], true
}

// All returns the history in append order.
func (l *Ledger) All() []Transaction {
	out := make([]Transaction, len(l.history))
	copy(out, l.history)
	return out
}
