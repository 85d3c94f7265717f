package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeIndexOutOfRange, http.StatusNotFound},
		{ErrCodeLineNotFound, http.StatusNotFound},
		{ErrCodeInvalidPrice, http.StatusBadRequest},
		{ErrCodePersistenceUnavailable, http.StatusServiceUnavailable},
		{ErrCodeProductNotFound, http.StatusNotFound},
		{ErrCodeEmptyCart, http.StatusUnprocessableEntity},
		{ErrCodeInvalidCustomer, http.StatusBadRequest},
		{ErrCodeOrderRejected, http.StatusUnprocessableEntity},
		{ErrCodeInvalidDays, http.StatusBadRequest},
		{ErrCodeUpstreamUnavailable, http.StatusBadGateway},
		{ErrCodeUpstreamFailed, http.StatusBadGateway},
		{ErrCodeUpstreamInvalid, http.StatusBadGateway},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"INDEX_OUT_OF_RANGE", ErrCodeIndexOutOfRange},
		{"LINE_NOT_FOUND", ErrCodeLineNotFound},
		{"INVALID_PRICE", ErrCodeInvalidPrice},
		{"PERSISTENCE_UNAVAILABLE", ErrCodePersistenceUnavailable},
		{"EMPTY_CART", ErrCodeEmptyCart},
		{"ORDER_REJECTED", ErrCodeOrderRejected},
		{"INVALID_DAYS", ErrCodeInvalidDays},
		// API codes pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestDomainErrorCodeMapping_AllCodesHaveStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "code %s (from %s) has no HTTP status", apiCode, domainCode)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeEmptyCart, "Cart is empty", "req-1")

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_CHECKOUT_EMPTY_CART","message":"Cart is empty","request_id":"req-1"}}`, string(body))
}

func TestNewSuccessResponse_OmitsError(t *testing.T) {
	body, err := json.Marshal(NewSuccessResponse(map[string]int{"order_id": 7}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"order_id":7}}`, string(body))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-2", []ValidationDetail{
		{Field: "name", Message: "This field is required"},
	})

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-2", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}
