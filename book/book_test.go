package book

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func restingOrder(side Side, price, qty string, at time.Time, seq uint64) Order {
	return Order{
		ID:          uuid.New(),
		Side:        side,
		Type:        Limit,
		Price:       dec(price),
		Quantity:    dec(qty),
		SubmittedAt: at,
		Seq:         seq,
	}
}

func TestSellSideOrdering(t *testing.T) {
	b := New()
	now := time.Now()

	b.Insert(restingOrder(Sell, "101", "1", now, 1))
	b.Insert(restingOrder(Sell, "100", "1", now, 2))
	b.Insert(restingOrder(Sell, "102", "1", now, 3))

	best, ok := b.Peek(Sell)
	require.True(t, ok)
	assert.True(t, best.Price.Equal(dec("100")), "lowest ask must be on top")

	var prices []string
	for {
		o, ok := b.Pop(Sell)
		if !ok {
			break
		}
		prices = append(prices, o.Price.String())
	}
	assert.Equal(t, []string{"100", "101", "102"}, prices)
}

func TestBuySideOrdering(t *testing.T) {
	b := New()
	now := time.Now()

	b.Insert(restingOrder(Buy, "99", "1", now, 1))
	b.Insert(restingOrder(Buy, "101", "1", now, 2))
	b.Insert(restingOrder(Buy, "100", "1", now, 3))

	best, ok := b.Peek(Buy)
	require.True(t, ok)
	assert.True(t, best.Price.Equal(dec("101")), "highest bid must be on top")

	var prices []string
	for {
		o, ok := b.Pop(Buy)
		if !ok {
			break
		}
		prices = append(prices, o.Price.String())
	}
	assert.Equal(t, []string{"101", "100", "99"}, prices)
}

func TestTimePriorityAtEqualPrice(t *testing.T) {
	b := New()
	now := time.Now()

	second := restingOrder(Sell, "100", "1", now.Add(time.Second), 2)
	first := restingOrder(Sell, "100", "1", now, 1)
	b.Insert(second)
	b.Insert(first)

	o, ok := b.Pop(Sell)
	require.True(t, ok)
	assert.Equal(t, first.ID, o.ID, "earliest submission wins the tie")

	o, ok = b.Pop(Sell)
	require.True(t, ok)
	assert.Equal(t, second.ID, o.ID)
}

func TestSequenceBreaksIdenticalTimestamps(t *testing.T) {
	b := New()
	now := time.Now()

	first := restingOrder(Buy, "100", "1", now, 1)
	second := restingOrder(Buy, "100", "1", now, 2)
	b.Insert(second)
	b.Insert(first)

	o, ok := b.Pop(Buy)
	require.True(t, ok)
	assert.Equal(t, first.ID, o.ID)
}

func TestReinsertionKeepsQueuePosition(t *testing.T) {
	b := New()
	now := time.Now()

	head := restingOrder(Sell, "100", "5", now, 1)
	tail := restingOrder(Sell, "100", "5", now.Add(time.Second), 2)
	b.Insert(head)
	b.Insert(tail)

	// Partially consume the head: pop, reduce, re-insert.
	o, ok := b.Pop(Sell)
	require.True(t, ok)
	require.Equal(t, head.ID, o.ID)
	b.Insert(o.WithQuantity(dec("2")))

	o, ok = b.Peek(Sell)
	require.True(t, ok)
	assert.Equal(t, head.ID, o.ID, "reduced remainder must stay ahead of the later order")
	assert.True(t, o.Quantity.Equal(dec("2")))
}

func TestInsertDropsNonPositiveQuantity(t *testing.T) {
	b := New()
	o := restingOrder(Sell, "100", "5", time.Now(), 1)

	b.Insert(o.WithQuantity(decimal.Zero))
	assert.True(t, b.Empty(Sell))

	b.Insert(o.WithQuantity(dec("-1")))
	assert.True(t, b.Empty(Sell))
}

func TestSnapshotReflectsPriority(t *testing.T) {
	b := New()
	now := time.Now()

	b.Insert(restingOrder(Sell, "102", "1", now, 1))
	b.Insert(restingOrder(Sell, "100", "2", now.Add(time.Second), 2))
	b.Insert(restingOrder(Sell, "100", "3", now, 3))

	snap := b.Snapshot(Sell)
	require.Len(t, snap, 3)
	assert.True(t, snap[0].Price.Equal(dec("100")))
	assert.True(t, snap[0].Quantity.Equal(dec("3")), "earlier order first within the level")
	assert.True(t, snap[1].Quantity.Equal(dec("2")))
	assert.True(t, snap[2].Price.Equal(dec("102")))
}

func TestPeekAndPopOnEmptySide(t *testing.T) {
	b := New()

	_, ok := b.Peek(Buy)
	assert.False(t, ok)
	_, ok = b.Pop(Buy)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len(Buy))
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, "1.2346", Quantize(dec("1.23456")).String())
	assert.Equal(t, "2", Quantize(dec("2.00001")).String())
}
