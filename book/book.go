package book

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"
)

// Book holds the resting limit orders of both sides in red-black trees keyed
// by the order itself. The leftmost node of each tree is that side's most
// competitive order, so peek is O(1) and pop/insert are O(log n).
type Book struct {
	asks *rbt.Tree
	bids *rbt.Tree
}

func New() *Book {
	return &Book{
		asks: rbt.NewWith(AskComparator),
		bids: rbt.NewWith(BidComparator),
	}
}

func (b *Book) tree(s Side) *rbt.Tree {
	if s == Sell {
		return b.asks
	}
	return b.bids
}

// Peek returns the best resting order of the side without removing it.
func (b *Book) Peek(s Side) (Order, bool) {
	node := b.tree(s).Left()
	if node == nil {
		return Order{}, false
	}
	return node.Key.(Order), true
}

// Pop removes and returns the best resting order of the side.
func (b *Book) Pop(s Side) (Order, bool) {
	t := b.tree(s)
	node := t.Left()
	if node == nil {
		return Order{}, false
	}
	order := node.Key.(Order)
	t.Remove(order)
	return order, true
}

// Insert rests an order on its own side. Non-positive quantities are dropped:
// a fully consumed order must never re-enter the book.
func (b *Book) Insert(o Order) {
	if !o.Quantity.IsPositive() {
		return
	}
	b.tree(o.Side).Put(o, nil)
}

func (b *Book) Len(s Side) int {
	return b.tree(s).Size()
}

func (b *Book) Empty(s Side) bool {
	return b.tree(s).Empty()
}

// Snapshot returns the side's resting orders in priority order.
func (b *Book) Snapshot(s Side) []Order {
	t := b.tree(s)
	orders := make([]Order, 0, t.Size())
	it := t.Iterator()
	for it.Next() {
		orders = append(orders, it.Key().(Order))
	}
	return orders
}

// AskComparator orders the sell side ascending by price (lowest ask first),
// then by time priority.
func AskComparator(a, b interface{}) int {
	aAsserted := a.(Order)
	bAsserted := b.(Order)
	if c := aAsserted.Price.Cmp(bAsserted.Price); c != 0 {
		return c
	}
	return timePriority(aAsserted, bAsserted)
}

// BidComparator orders the buy side descending by price (highest bid first),
// then by time priority.
func BidComparator(a, b interface{}) int {
	aAsserted := a.(Order)
	bAsserted := b.(Order)
	if c := aAsserted.Price.Cmp(bAsserted.Price); c != 0 {
		return -c
	}
	return timePriority(aAsserted, bAsserted)
}

// timePriority breaks price ties: earliest submission first, then the
// submission sequence so the order is total and stable across re-insertion.
func timePriority(a, b Order) int {
	switch {
	case a.SubmittedAt.Before(b.SubmittedAt):
		return -1
	case a.SubmittedAt.After(b.SubmittedAt):
		return 1
	}
	switch {
	case a.Seq < b.Seq:
		return -1
	case a.Seq > b.Seq:
		return 1
	}
	return 0
}
