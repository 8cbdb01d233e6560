// Package api is the HTTP adapter: it validates raw submissions into
// well-typed orders and translates execution outcomes into responses.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"exchange/exchange"
	"exchange/metrics"
)

type Server struct {
	exchange *exchange.Exchange
	logger   zerolog.Logger
	router   *gin.Engine
}

func New(x *exchange.Exchange, reg *prometheus.Registry, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{exchange: x, logger: logger, router: router}
	router.Use(s.requestLog)
	router.GET("/ping", s.ping)
	router.POST("/order", s.submitOrder)
	router.GET("/book", s.bookSnapshot)
	router.GET("/transactions", s.transactionHistory)
	if reg != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(reg)))
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (s *Server) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}
