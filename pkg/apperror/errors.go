package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Retryable  bool   `json:"-"` // Transient failure, safe to retry
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// IsRetryable reports whether err is a transient AppError that callers may retry.
func IsRetryable(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Retryable
}

// ---- Validation (VAL) ----

// Validation returns a generic validation error with field context in the message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrUnknownProgram(program string) *AppError {
	return New("VAL_002", fmt.Sprintf("unknown loyalty program: %s", program), http.StatusBadRequest)
}

func ErrSameProgram() *AppError {
	return New("VAL_003", "source and destination program must differ", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_004", "amount must be a positive number of points", http.StatusBadRequest)
}

// ---- Balances (BAL) ----

func ErrInsufficientBalance() *AppError {
	return New("BAL_001", "insufficient available balance", http.StatusPaymentRequired)
}

// ---- Exchange rates (RATE) ----

func ErrRateUnavailable(from, to string) *AppError {
	return New("RATE_001", fmt.Sprintf("no exchange rate available for %s -> %s", from, to), http.StatusServiceUnavailable)
}

func ErrRateStale(from, to string) *AppError {
	return New("RATE_002", fmt.Sprintf("exchange rate for %s -> %s is stale", from, to), http.StatusServiceUnavailable)
}

// ---- Concurrency (CONC) ----

// ErrConcurrencyConflict is returned once the internal retry budget is exhausted.
func ErrConcurrencyConflict(err error) *AppError {
	e := Wrap("CONC_001", "operation conflicted with a concurrent update, please retry", http.StatusConflict, err)
	e.Retryable = true
	return e
}

// ---- Lookup & authorization (NF / AUTHZ) ----

func ErrNotFound(entity string) *AppError {
	return New("NF_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrNotOfferCreator() *AppError {
	return New("AUTHZ_001", "only the offer creator may cancel this offer", http.StatusForbidden)
}

// ---- Trade offers (TRD) ----

func ErrOfferNotActive() *AppError {
	return New("TRD_001", "offer is no longer active", http.StatusConflict)
}

func ErrOfferExpired() *AppError {
	return New("TRD_002", "offer has expired", http.StatusGone)
}

func ErrSelfTrade() *AppError {
	return New("TRD_003", "cannot accept your own offer", http.StatusBadRequest)
}

// ---- Rate Limiting (LIMIT) ----

func ErrRateLimitExceeded() *AppError {
	return New("LIMIT_001", "rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "internal server error", http.StatusInternalServerError, err)
}
