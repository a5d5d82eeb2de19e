package handler

import (
	"strconv"
	"time"

	"points-exchange/internal/adapter/http/dto"
	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/apperror"
	"points-exchange/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TradeHandler handles trade offer endpoints.
type TradeHandler struct {
	tradeSvc ports.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeSvc ports.TradeService) *TradeHandler {
	return &TradeHandler{tradeSvc: tradeSvc}
}

// CreateOffer handles POST /api/v1/trades.
func (h *TradeHandler) CreateOffer(c *gin.Context) {
	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	creatorID, err := uuid.Parse(req.CreatorID)
	if err != nil {
		response.Error(c, apperror.Validation("creator_id must be a UUID"))
		return
	}
	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		response.Error(c, apperror.Validation("expires_at must be RFC 3339"))
		return
	}

	offer, err := h.tradeSvc.CreateOffer(c.Request.Context(), ports.CreateOfferRequest{
		CreatorID:       creatorID,
		FromProgram:     domain.Program(req.FromProgram),
		ToProgram:       domain.Program(req.ToProgram),
		AmountOffered:   req.AmountOffered,
		AmountRequested: req.AmountRequested,
		ExpiresAt:       expiresAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toOfferResponse(offer))
}

// ListOffers handles GET /api/v1/trades.
func (h *TradeHandler) ListOffers(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			response.Error(c, apperror.Validation("limit must be between 1 and 200"))
			return
		}
		limit = n
	}

	offers, err := h.tradeSvc.ListOffers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.OfferResponse, 0, len(offers))
	for i := range offers {
		items = append(items, toOfferResponse(&offers[i]))
	}
	response.OK(c, items)
}

// AcceptOffer handles POST /api/v1/trades/:id/accept.
func (h *TradeHandler) AcceptOffer(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	var req dto.OfferActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	acceptorID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("user_id must be a UUID"))
		return
	}

	trade, err := h.tradeSvc.AcceptOffer(c.Request.Context(), offerID, acceptorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTradeResponse(trade))
}

// CancelOffer handles POST /api/v1/trades/:id/cancel.
func (h *TradeHandler) CancelOffer(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	var req dto.OfferActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	callerID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("user_id must be a UUID"))
		return
	}

	if err := h.tradeSvc.CancelOffer(c.Request.Context(), offerID, callerID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"status": "cancelled"})
}

func toOfferResponse(o *domain.TradeOffer) dto.OfferResponse {
	return dto.OfferResponse{
		ID:              o.ID.String(),
		CreatorID:       o.CreatorID.String(),
		FromProgram:     string(o.FromProgram),
		ToProgram:       string(o.ToProgram),
		AmountOffered:   o.AmountOffered,
		AmountRequested: o.AmountRequested,
		CustomRate:      o.CustomRate.String(),
		MarketRate:      o.MarketRate.String(),
		SavingsPct:      o.SavingsPct().String(),
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		ExpiresAt:       o.ExpiresAt.Format(time.RFC3339),
	}
}

func toTradeResponse(t *domain.TradeTransaction) dto.TradeResponse {
	return dto.TradeResponse{
		ID:              t.ID.String(),
		OfferID:         t.OfferID.String(),
		SellerID:        t.SellerID.String(),
		BuyerID:         t.BuyerID.String(),
		AmountSold:      t.AmountSold,
		AmountBought:    t.AmountBought,
		FacilitationFee: t.FacilitationFee,
		FeeRate:         t.FeeRate.String(),
		CompletedAt:     t.CompletedAt.Format(time.RFC3339),
	}
}
