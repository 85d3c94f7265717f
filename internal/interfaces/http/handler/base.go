package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shoplite/storefront/internal/domain/integration"
	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/interfaces/http/dto"
	"github.com/shoplite/storefront/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RequestIDHeader is the header carrying the request ID
const RequestIDHeader = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.GinRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindJSON binds the request body, answering 400 itself when binding fails.
// It reports whether the handler should continue.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			middleware.HandleValidationError(c, verrs)
			return false
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
		return false
	}
	return true
}

// HandleError converts domain and integration errors to HTTP responses.
//
// Domain errors keep their message. Storefront API failures become 502 with
// a generic message; the detail is logged, not returned.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	if code, message, ok := upstreamError(err); ok {
		logger.GetGinLogger(c).Warn("Storefront API call failed", zap.Error(err))
		h.ErrorWithCode(c, code, message)
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}

func upstreamError(err error) (code, message string, ok bool) {
	switch {
	case errors.Is(err, integration.ErrAPIUnavailable):
		return dto.ErrCodeUpstreamUnavailable, "The storefront API is unavailable", true
	case errors.Is(err, integration.ErrAPINotFound):
		return dto.ErrCodeNotFound, "Resource not found", true
	case errors.Is(err, integration.ErrAPIRequestFailed):
		return dto.ErrCodeUpstreamFailed, "The storefront API request failed", true
	case errors.Is(err, integration.ErrAPIInvalidResponse):
		return dto.ErrCodeUpstreamInvalid, "The storefront API returned an invalid response", true
	}
	return "", "", false
}
