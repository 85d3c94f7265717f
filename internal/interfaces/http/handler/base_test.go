package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/integration"
	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shoplite/storefront/internal/domain/trade"
	"github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set(logger.GinRequestIDKey, "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(RequestIDHeader, "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(logger.GinRequestIDKey, "ctx-id")
				c.Request.Header.Set(RequestIDHeader, "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext()
			tt.setup(c)
			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.Created(c, map[string]int64{"order_id": 7})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerNoContent(t *testing.T) {
	h := &BaseHandler{}

	router := gin.New()
	router.DELETE("/test", func(c *gin.Context) {
		h.NoContent(c)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/test", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	tests := []struct {
		name         string
		method       func(*BaseHandler, *gin.Context)
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "BadRequest",
			method:       func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "Invalid request") },
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeBadRequest,
		},
		{
			name:         "NotFound",
			method:       func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "Resource not found") },
			expectedCode: http.StatusNotFound,
			expectedErr:  dto.ErrCodeNotFound,
		},
		{
			name:         "InternalError",
			method:       func(h *BaseHandler, c *gin.Context) { h.InternalError(c, "Server error") },
			expectedCode: http.StatusInternalServerError,
			expectedErr:  dto.ErrCodeInternal,
		},
		{
			name:         "ErrorWithCode derives the status",
			method:       func(h *BaseHandler, c *gin.Context) { h.ErrorWithCode(c, dto.ErrCodeEmptyCart, "Cart is empty") },
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  dto.ErrCodeEmptyCart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			c.Set(logger.GinRequestIDKey, "req-"+tt.name)

			tt.method(&BaseHandler{}, c)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
			assert.Equal(t, "req-"+tt.name, resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerBindJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name" binding:"required"`
	}

	tests := []struct {
		name     string
		body     string
		ok       bool
		wantCode string
	}{
		{name: "valid", body: `{"name": "Widget"}`, ok: true},
		{name: "malformed", body: `{"name":`, wantCode: dto.ErrCodeInvalidJSON},
		{name: "missing required field", body: `{}`, wantCode: dto.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var p payload
			ok := (&BaseHandler{}).BindJSON(c, &p)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, "Widget", p.Name)
				return
			}
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
		message      string
	}{
		{
			name:         "generic not found",
			err:          shared.NewDomainError("NOT_FOUND", "Resource not found"),
			expectedCode: http.StatusNotFound,
			expectedErr:  dto.ErrCodeNotFound,
		},
		{
			name:         "wrapped cart error keeps its message",
			err:          fmt.Errorf("index 5 of 2: %w", cart.ErrIndexOutOfRange),
			expectedCode: http.StatusNotFound,
			expectedErr:  dto.ErrCodeIndexOutOfRange,
			message:      cart.ErrIndexOutOfRange.Message,
		},
		{
			name:         "invalid price",
			err:          cart.ErrInvalidPrice,
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeInvalidPrice,
		},
		{
			name:         "persistence unavailable",
			err:          cart.ErrPersistenceUnavailable,
			expectedCode: http.StatusServiceUnavailable,
			expectedErr:  dto.ErrCodePersistenceUnavailable,
		},
		{
			name:         "order rejected wrapping an api failure",
			err:          fmt.Errorf("%w: %w", trade.ErrOrderRejected, integration.ErrAPIRequestFailed),
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  dto.ErrCodeOrderRejected,
			message:      trade.ErrOrderRejected.Message,
		},
		{
			name:         "api unavailable",
			err:          fmt.Errorf("get products: %w", integration.ErrAPIUnavailable),
			expectedCode: http.StatusBadGateway,
			expectedErr:  dto.ErrCodeUpstreamUnavailable,
		},
		{
			name:         "api not found",
			err:          integration.ErrAPINotFound,
			expectedCode: http.StatusNotFound,
			expectedErr:  dto.ErrCodeNotFound,
		},
		{
			name:         "api request failed",
			err:          fmt.Errorf("%w: HTTP 500: secret detail", integration.ErrAPIRequestFailed),
			expectedCode: http.StatusBadGateway,
			expectedErr:  dto.ErrCodeUpstreamFailed,
			message:      "The storefront API request failed",
		},
		{
			name:         "api invalid response",
			err:          integration.ErrAPIInvalidResponse,
			expectedCode: http.StatusBadGateway,
			expectedErr:  dto.ErrCodeUpstreamInvalid,
		},
		{
			name:         "plain error",
			err:          assert.AnError,
			expectedCode: http.StatusInternalServerError,
			expectedErr:  dto.ErrCodeInternal,
			message:      "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			(&BaseHandler{}).HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Error.Message)
			}
			assert.Len(t, c.Errors, 1)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		(&BaseHandler{}).HandleError(c, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})
}
