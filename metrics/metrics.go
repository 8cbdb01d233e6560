package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	OrdersSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orders_submitted_total", Help: "Accepted orders by type and side"}, []string{"type", "side"})
	OrdersRejectedTotal  = prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_rejected_total", Help: "Market orders rejected for lack of a reference price"})
	TradesExecutedTotal  = prometheus.NewCounter(prometheus.CounterOpts{Name: "trades_executed_total", Help: "Trades produced by matching"})
	TradedVolumeTotal    = prometheus.NewCounter(prometheus.CounterOpts{Name: "traded_volume_total", Help: "Cumulative matched quantity"})
	MatchLatencyMs       = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "match_latency_ms", Help: "Match-and-rest latency", Buckets: prometheus.LinearBuckets(1, 5, 20)})
	RestingOrders        = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "resting_orders", Help: "Resting limit orders by side"}, []string{"side"})
)

func Init(logger zerolog.Logger) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		OrdersSubmittedTotal, OrdersRejectedTotal, TradesExecutedTotal, TradedVolumeTotal, MatchLatencyMs, RestingOrders,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = reg.Register(c)
	}
	logger.Info().Msg("Prometheus metrics initialized")
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
