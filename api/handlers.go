package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"exchange/book"
	"exchange/engine"
	"exchange/ledger"
	"exchange/metrics"
)

type orderRequest struct {
	Side     string `json:"side" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Quantity string `json:"quantity" binding:"required"`
	Price    string `json:"price"`
}

type tradeView struct {
	SellerID  string    `json:"seller_id"`
	BuyerID   string    `json:"buyer_id"`
	Price     string    `json:"price"`
	Quantity  string    `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

type orderView struct {
	ID       string `json:"id"`
	Side     string `json:"side"`
	Type     string `json:"type"`
	Price    string `json:"price,omitempty"`
	Quantity string `json:"quantity"`
}

type executionResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Residual orderView   `json:"residual"`
	Trades   []tradeView `json:"trades"`
}

var fillMessages = map[engine.FillState]string{
	engine.FillFull:    "fully executed",
	engine.FillPartial: "partially executed, remainder resting",
	engine.FillNone:    "no match, order resting",
}

func (s *Server) submitOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	order, err := req.toOrder()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	start := time.Now()
	exec, err := s.exchange.SubmitOrder(order)
	metrics.MatchLatencyMs.Observe(durationMs(time.Since(start)))

	if err != nil {
		metrics.OrdersRejectedTotal.Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
		return
	}

	metrics.OrdersSubmittedTotal.WithLabelValues(string(order.Type), string(order.Side)).Inc()
	metrics.TradesExecutedTotal.Add(float64(len(exec.Trades)))
	for _, t := range exec.Trades {
		volume, _ := t.Quantity.Float64()
		metrics.TradedVolumeTotal.Add(volume)
	}
	asks, bids := s.exchange.Depth()
	metrics.RestingOrders.WithLabelValues(string(book.Sell)).Set(float64(asks))
	metrics.RestingOrders.WithLabelValues(string(book.Buy)).Set(float64(bids))

	c.JSON(http.StatusOK, executionResponse{
		Success:  true,
		Message:  fillMessages[exec.FillState],
		Residual: toOrderView(exec.Residual),
		Trades:   lo.Map(exec.Trades, toTradeView),
	})
}

func (s *Server) bookSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.exchange.BookSnapshot())
}

func (s *Server) transactionHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"symbol":       s.exchange.Symbol(),
		"transactions": lo.Map(s.exchange.TransactionHistory(), toTradeView),
	})
}

// durationMs converts to fractional milliseconds; whole-millisecond
// truncation would zero out nearly every in-memory match.
func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1e3
}

// toOrder validates the raw submission into a well-typed order. Everything
// beyond this point may assume side, type, quantity and price are sound.
func (r orderRequest) toOrder() (book.Order, error) {
	side := book.Side(r.Side)
	if side != book.Buy && side != book.Sell {
		return book.Order{}, errors.New("side must be buy or sell")
	}
	typ := book.OrderType(r.Type)
	if typ != book.Market && typ != book.Limit {
		return book.Order{}, errors.New("type must be market or limit")
	}
	quantity, err := decimal.NewFromString(r.Quantity)
	if err != nil || !quantity.IsPositive() {
		return book.Order{}, errors.New("quantity must be a positive decimal")
	}

	order := book.Order{
		ID:          uuid.New(),
		Side:        side,
		Type:        typ,
		Quantity:    book.Quantize(quantity),
		SubmittedAt: time.Now(),
	}
	if typ == book.Limit {
		price, err := decimal.NewFromString(r.Price)
		if err != nil || !price.IsPositive() {
			return book.Order{}, errors.New("limit orders need a positive price")
		}
		order.Price = book.Quantize(price)
	}
	return order, nil
}

func toOrderView(o book.Order) orderView {
	v := orderView{
		ID:       o.ID.String(),
		Side:     string(o.Side),
		Type:     string(o.Type),
		Quantity: o.Quantity.StringFixed(book.Precision),
	}
	if o.Type == book.Limit {
		v.Price = o.Price.StringFixed(book.Precision)
	}
	return v
}

func toTradeView(t ledger.Transaction, _ int) tradeView {
	return tradeView{
		SellerID:  t.SellerID.String(),
		BuyerID:   t.BuyerID.String(),
		Price:     t.Price.StringFixed(book.Precision),
		Quantity:  t.Quantity.StringFixed(book.Precision),
		Timestamp: t.Timestamp,
	}
}
