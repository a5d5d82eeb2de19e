package handler

import (
	"time"

	"points-exchange/internal/adapter/http/dto"
	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/apperror"
	"points-exchange/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RateHandler handles rate read and feed-ingest endpoints.
type RateHandler struct {
	resolver ports.RateResolver
	feed     ports.RateFeedStore
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(resolver ports.RateResolver, feed ports.RateFeedStore) *RateHandler {
	return &RateHandler{resolver: resolver, feed: feed}
}

// GetRate handles GET /api/v1/rates?from=&to=.
func (h *RateHandler) GetRate(c *gin.Context) {
	from, ok := domain.ParseProgram(c.Query("from"))
	if !ok {
		response.Error(c, apperror.ErrUnknownProgram(c.Query("from")))
		return
	}
	to, ok := domain.ParseProgram(c.Query("to"))
	if !ok {
		response.Error(c, apperror.ErrUnknownProgram(c.Query("to")))
		return
	}

	rate, err := h.resolver.Resolve(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.RateResponse{
		FromProgram: string(from),
		ToProgram:   string(to),
		Rate:        rate.String(),
	})
}

// ListPrograms handles GET /api/v1/programs.
func (h *RateHandler) ListPrograms(c *gin.Context) {
	response.OK(c, dto.ProgramsResponse{Programs: domain.Programs()})
}

// PublishRate handles POST /api/v1/admin/rates, the hook the rate feed
// scheduler calls with fresh snapshots.
func (h *RateHandler) PublishRate(c *gin.Context) {
	var req dto.PublishRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil || !rate.IsPositive() {
		response.Error(c, apperror.Validation("rate must be a positive decimal"))
		return
	}

	snapshot := &domain.ExchangeRate{
		FromProgram: domain.Program(req.FromProgram),
		ToProgram:   domain.Program(req.ToProgram),
		Rate:        rate,
		AsOf:        time.Now().UTC(),
	}
	if err := h.feed.Upsert(c.Request.Context(), snapshot); err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, dto.RateResponse{
		FromProgram: req.FromProgram,
		ToProgram:   req.ToProgram,
		Rate:        rate.String(),
	})
}
