package dto

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"points-exchange/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bindConvert(t *testing.T, body string) int {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req ConvertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, req)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w.Code
}

func TestProgramTag_AcceptsEveryProgram(t *testing.T) {
	for _, p := range domain.Programs() {
		body := `{"user_id":"a3bbf1ce-9a66-4cb9-b161-0862a1c60e0f","from_program":"` + string(p) + `","to_program":"XPOINTS","amount":1000}`
		if p == domain.ProgramXPoints {
			body = `{"user_id":"a3bbf1ce-9a66-4cb9-b161-0862a1c60e0f","from_program":"XPOINTS","to_program":"QANTAS","amount":1000}`
		}
		assert.Equal(t, http.StatusOK, bindConvert(t, body), "program %s must bind", p)
	}
}

func TestConvertRequest_Binding(t *testing.T) {
	valid := `{"user_id":"a3bbf1ce-9a66-4cb9-b161-0862a1c60e0f","from_program":"QANTAS","to_program":"XPOINTS","amount":1000}`
	assert.Equal(t, http.StatusOK, bindConvert(t, valid))

	tests := []struct {
		name string
		body string
	}{
		{"unknown program", `{"user_id":"a3bbf1ce-9a66-4cb9-b161-0862a1c60e0f","from_program":"MARRIOTT","to_program":"XPOINTS","amount":1000}`},
		{"lower-case program", `{"user_id":"a3bbf1ce-9a66-4cb9-b161-0862a1c60e0f","from_program":"qantas","to_program":"XPOINTS","amount":1000}`},
		{"zero amount", `{"user_id":"a3bbf1ce-9a66-4cb9-b161-0862a1c60e0f","from_program":"QANTAS","to_program":"XPOINTS","amount":0}`},
		{"negative amount", `{"user_id":"a3bbf1ce-9a66-4cb9-b161-0862a1c60e0f","from_program":"QANTAS","to_program":"XPOINTS","amount":-5}`},
		{"bad uuid", `{"user_id":"not-a-uuid","from_program":"QANTAS","to_program":"XPOINTS","amount":1000}`},
		{"missing fields", `{"amount":1000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, bindConvert(t, tt.body))
		})
	}
}
