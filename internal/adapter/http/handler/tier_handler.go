package handler

import (
	"strconv"

	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/apperror"
	"points-exchange/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TierHandler handles tier and reward read endpoints.
type TierHandler struct {
	tierSvc   ports.TierService
	rewardSvc ports.RewardService
}

// NewTierHandler creates a new TierHandler.
func NewTierHandler(tierSvc ports.TierService, rewardSvc ports.RewardService) *TierHandler {
	return &TierHandler{tierSvc: tierSvc, rewardSvc: rewardSvc}
}

// GetTierStatus handles GET /api/v1/users/:id/tier.
func (h *TierHandler) GetTierStatus(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	status, err := h.tierSvc.GetTierStatus(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, status)
}

// ValuateRewards handles GET /api/v1/rewards/:program.
func (h *TierHandler) ValuateRewards(c *gin.Context) {
	program, ok := domain.ParseProgram(c.Param("program"))
	if !ok {
		response.Error(c, apperror.ErrUnknownProgram(c.Param("program")))
		return
	}

	balance, err := strconv.ParseInt(c.Query("balance"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("balance query parameter is required and must be an integer"))
		return
	}

	valuation, err := h.rewardSvc.Valuate(program, balance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, valuation)
}
