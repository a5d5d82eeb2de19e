package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"points-exchange/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGin() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestOK_Envelope(t *testing.T) {
	c, w := setupGin()
	c.Set("request_id", "req-123")

	OK(c, map[string]string{"status": "COMPLETED"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-123", resp.RequestID)
	assert.NotEmpty(t, resp.Timestamp)
	assert.NotNil(t, resp.Data)
}

func TestCreated_Status(t *testing.T) {
	c, w := setupGin()

	Created(c, gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestError_AppError(t *testing.T) {
	c, w := setupGin()

	Error(c, apperror.ErrInsufficientBalance())

	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BAL_001", resp.ErrorCode)
	assert.False(t, resp.Retryable)
}

func TestError_RetryableFlag(t *testing.T) {
	c, w := setupGin()

	Error(c, apperror.ErrConcurrencyConflict(errors.New("deadlock")))

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CONC_001", resp.ErrorCode)
	assert.True(t, resp.Retryable)
}

func TestError_UnknownError(t *testing.T) {
	c, w := setupGin()

	Error(c, errors.New("something exploded"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_000", resp.ErrorCode)
	assert.NotContains(t, resp.Message, "exploded", "internal details must not leak")
}

func TestGetRequestID_GeneratedWhenMissing(t *testing.T) {
	c, w := setupGin()

	OK(c, nil)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
}
