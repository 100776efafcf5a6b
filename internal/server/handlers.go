package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookvault/orderflow/internal/algo/searchalgo"
	"github.com/bookvault/orderflow/internal/algo/selector"
	"github.com/bookvault/orderflow/internal/engine"
	"github.com/bookvault/orderflow/pkg/errors"
)

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) addOrder(c *gin.Context) {
	var req engine.AddOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := s.engine.AddOrder(req)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (s *Server) processNext(c *gin.Context) {
	res, err := s.engine.ProcessNext(c.Request.Context())

	// The engine holds finalized orders in memory only; durable storage
	// is this layer's responsibility, for failed orders too.
	if res != nil && res.Order != nil {
		if sinkErr := s.sink.SaveOrder(c.Request.Context(), res.Order); sinkErr != nil {
			s.logger.Error("failed to persist order",
				zap.String("order_number", res.Order.OrderNumber),
				zap.Error(sinkErr))
		}
	}

	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) searchOrders(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}
	hint := selector.SearchHint(c.DefaultQuery("type", string(selector.HintOrderNumber)))
	override := searchalgo.Algorithm(c.Query("algorithm"))

	resp := s.engine.SearchOrders(term, hint, override)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) queueStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Status())
}

func (s *Server) getHistory(c *gin.Context) {
	n := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		n = parsed
	}
	c.JSON(http.StatusOK, gin.H{"entries": s.engine.History(n)})
}

func (s *Server) undoLast(c *gin.Context) {
	entry, err := s.engine.UndoLast()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"undone": entry})
}

// renderError maps engine error kinds onto HTTP status codes.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.KindOf(err) {
	case errors.KindValidation:
		status = http.StatusBadRequest
	case errors.KindEmptyQueue:
		status = http.StatusNotFound
	case errors.KindNotUndoable:
		status = http.StatusConflict
	case errors.KindAvailability:
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": string(errors.KindOf(err))})
}
