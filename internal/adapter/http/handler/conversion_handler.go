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

// ConversionHandler handles conversion endpoints.
type ConversionHandler struct {
	convSvc ports.ConversionService
	txLog   ports.TransactionLog
}

// NewConversionHandler creates a new ConversionHandler.
func NewConversionHandler(convSvc ports.ConversionService, txLog ports.TransactionLog) *ConversionHandler {
	return &ConversionHandler{convSvc: convSvc, txLog: txLog}
}

// Convert handles POST /api/v1/conversions.
func (h *ConversionHandler) Convert(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("user_id must be a UUID"))
		return
	}

	txn, err := h.convSvc.Convert(c.Request.Context(), ports.ConvertRequest{
		UserID:      userID,
		FromProgram: domain.Program(req.FromProgram),
		ToProgram:   domain.Program(req.ToProgram),
		Amount:      req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toConversionResponse(txn))
}

// ListTransactions handles GET /api/v1/users/:id/transactions.
func (h *ConversionHandler) ListTransactions(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			response.Error(c, apperror.Validation("limit must be between 1 and 200"))
			return
		}
		limit = n
	}

	txns, err := h.txLog.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	items := make([]dto.ConversionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toConversionResponse(&txns[i]))
	}
	response.OK(c, items)
}

func toConversionResponse(txn *domain.Transaction) dto.ConversionResponse {
	return dto.ConversionResponse{
		ID:          txn.ID.String(),
		UserID:      txn.UserID.String(),
		FromProgram: string(txn.FromProgram),
		ToProgram:   string(txn.ToProgram),
		AmountFrom:  txn.AmountFrom,
		AmountTo:    txn.AmountTo,
		FeeApplied:  txn.FeeApplied,
		Rate:        txn.Rate.String(),
		Status:      string(txn.Status),
		CreatedAt:   txn.CreatedAt.Format(time.RFC3339),
	}
}
