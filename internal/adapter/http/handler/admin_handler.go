package handler

import (
	"net/http"
	"time"

	"points-exchange/internal/adapter/http/dto"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the scheduler hooks: expired-offer sweep and the
// monthly tier rollover. Both are idempotent.
type AdminHandler struct {
	tradeSvc ports.TradeService
	tierSvc  ports.TierService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(tradeSvc ports.TradeService, tierSvc ports.TierService) *AdminHandler {
	return &AdminHandler{tradeSvc: tradeSvc, tierSvc: tierSvc}
}

// SweepExpired handles POST /api/v1/admin/sweep-expired.
func (h *AdminHandler) SweepExpired(c *gin.Context) {
	expired, err := h.tradeSvc.SweepExpired(c.Request.Context(), time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SweepResponse{OffersExpired: expired})
}

// Rollover handles POST /api/v1/admin/rollover.
func (h *AdminHandler) Rollover(c *gin.Context) {
	reset, err := h.tierSvc.RolloverMonth(c.Request.Context(), time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RolloverResponse{UsersReset: reset})
}

// HealthCheck verifies connectivity of every registered dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
