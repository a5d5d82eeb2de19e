package handler

import (
	"points-exchange/internal/adapter/http/dto"
	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/apperror"
	"points-exchange/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// ListWallets handles GET /api/v1/users/:id/wallets.
func (h *WalletHandler) ListWallets(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	wallets, err := h.walletSvc.ListWallets(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, toWalletResponse(&wallets[i]))
	}
	response.OK(c, items)
}

// Topup handles POST /api/v1/wallets/topup.
func (h *WalletHandler) Topup(c *gin.Context) {
	var req dto.TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("user_id must be a UUID"))
		return
	}

	wallet, err := h.walletSvc.Topup(c.Request.Context(), userID, domain.Program(req.Program), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(wallet))
}

func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	return dto.WalletResponse{
		ID:        w.ID.String(),
		Program:   string(w.Program),
		Balance:   w.Balance,
		Escrowed:  w.Escrowed,
		Available: w.Available(),
	}
}
