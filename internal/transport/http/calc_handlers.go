package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avelichko/gameroom-server/internal/calc"
)

// CalcHandlers provides HTTP handlers for the stateless calculation
// service.
type CalcHandlers struct {
	svc *calc.Service
	log *zerolog.Logger
}

// NewCalcHandlers creates a new calc handlers instance.
func NewCalcHandlers(svc *calc.Service, logger *zerolog.Logger) *CalcHandlers {
	return &CalcHandlers{
		svc: svc,
		log: logger,
	}
}

// PairRequest carries two operands.
type PairRequest struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// SumRequest carries a list of values to sum.
type SumRequest struct {
	Values []int64 `json:"values"`
}

// VectorRequest carries a three-component vector.
type VectorRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IntResult is a single integer result.
type IntResult struct {
	Result int64 `json:"result"`
}

// OpsResult holds the four basic operations applied to a pair.
type OpsResult struct {
	Add int64 `json:"add"`
	Sub int64 `json:"sub"`
	Mul int64 `json:"mul"`
	Div int64 `json:"div"`
}

// FloatResult is a single float result.
type FloatResult struct {
	Result float64 `json:"result"`
}

// Mul handles multiplication.
// POST /api/calc/mul
func (h *CalcHandlers) Mul(c *gin.Context) {
	var req PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, IntResult{Result: h.svc.Mul(req.X, req.Y)})
}

// Sum handles summing a list of values.
// POST /api/calc/sum
func (h *CalcHandlers) Sum(c *gin.Context) {
	var req SumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, IntResult{Result: h.svc.Sum(req.Values)})
}

// Operations handles the four basic operations on a pair.
// POST /api/calc/ops
func (h *CalcHandlers) Operations(c *gin.Context) {
	var req PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ops, err := h.svc.Operations(req.X, req.Y)
	if err != nil {
		if errors.Is(err, calc.ErrDivideByZero) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "divide by zero"})
			return
		}
		h.log.Error().Err(err).Msg("operations failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, OpsResult{Add: ops[0], Sub: ops[1], Mul: ops[2], Div: ops[3]})
}

// VectorSum handles summing a vector's components.
// POST /api/calc/vector-sum
func (h *CalcHandlers) VectorSum(c *gin.Context) {
	var req VectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, FloatResult{
		Result: h.svc.VectorSum(calc.Vector{X: req.X, Y: req.Y, Z: req.Z}),
	})
}
