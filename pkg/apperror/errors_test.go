package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("BAL_001", "insufficient available balance", http.StatusPaymentRequired),
			expected: "[BAL_001] insufficient available balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Validation", Validation("amount must be positive"), "VAL_001", 400},
		{"UnknownProgram", ErrUnknownProgram("SKYWARDS"), "VAL_002", 400},
		{"SameProgram", ErrSameProgram(), "VAL_003", 400},
		{"InvalidAmount", ErrInvalidAmount(), "VAL_004", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.False(t, tt.err.Retryable)
		})
	}
}

func TestBusinessErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InsufficientBalance", ErrInsufficientBalance(), "BAL_001", 402},
		{"RateUnavailable", ErrRateUnavailable("QANTAS", "FLYBUYS"), "RATE_001", 503},
		{"RateStale", ErrRateStale("QANTAS", "XPOINTS"), "RATE_002", 503},
		{"NotFound", ErrNotFound("wallet"), "NF_001", 404},
		{"NotOfferCreator", ErrNotOfferCreator(), "AUTHZ_001", 403},
		{"OfferNotActive", ErrOfferNotActive(), "TRD_001", 409},
		{"OfferExpired", ErrOfferExpired(), "TRD_002", 410},
		{"SelfTrade", ErrSelfTrade(), "TRD_003", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestConcurrencyConflict_IsRetryable(t *testing.T) {
	err := ErrConcurrencyConflict(fmt.Errorf("deadlock detected"))
	assert.Equal(t, "CONC_001", err.Code)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
	assert.True(t, IsRetryable(err))

	wrapped := fmt.Errorf("convert: %w", err)
	assert.True(t, IsRetryable(wrapped))

	assert.False(t, IsRetryable(ErrInsufficientBalance()))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestErrRateUnavailable_Message(t *testing.T) {
	err := ErrRateUnavailable("VELOCITY", "KRISFLYER")
	assert.Contains(t, err.Message, "VELOCITY -> KRISFLYER")
}

func TestInfrastructureErrors(t *testing.T) {
	limit := ErrRateLimitExceeded()
	assert.Equal(t, "LIMIT_001", limit.Code)
	assert.Equal(t, http.StatusTooManyRequests, limit.HTTPStatus)
	assert.Equal(t, "rate limit exceeded", limit.Message)

	internal := InternalError(errors.New("boom"))
	assert.Equal(t, "SYS_001", internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.Equal(t, "internal server error", internal.Message)
}
