package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when the request body is not valid JSON
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
)

// Cart error codes
const (
	ErrCodeIndexOutOfRange        = "ERR_CART_INDEX_OUT_OF_RANGE"
	ErrCodeLineNotFound           = "ERR_CART_LINE_NOT_FOUND"
	ErrCodeInvalidPrice           = "ERR_CART_INVALID_PRICE"
	ErrCodeInvalidProductID       = "ERR_CART_INVALID_PRODUCT_ID"
	ErrCodePersistenceUnavailable = "ERR_CART_PERSISTENCE_UNAVAILABLE"
)

// Catalog, checkout and report error codes
const (
	ErrCodeProductNotFound = "ERR_PRODUCT_NOT_FOUND"
	ErrCodeEmptyCart       = "ERR_CHECKOUT_EMPTY_CART"
	ErrCodeInvalidCustomer = "ERR_CHECKOUT_INVALID_CUSTOMER"
	ErrCodeOrderRejected   = "ERR_CHECKOUT_ORDER_REJECTED"
	ErrCodeOrderNotFound   = "ERR_ORDER_NOT_FOUND"
	ErrCodeInvalidDays     = "ERR_REPORT_INVALID_DAYS"
)

// Upstream error codes, for failures talking to the storefront API
const (
	// ErrCodeUpstreamUnavailable is used when the API cannot be reached
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
	// ErrCodeUpstreamFailed is used when the API answered with an error status
	ErrCodeUpstreamFailed = "ERR_UPSTREAM_FAILED"
	// ErrCodeUpstreamInvalid is used when the API answer could not be read
	ErrCodeUpstreamInvalid = "ERR_UPSTREAM_INVALID_RESPONSE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	// Cart errors
	ErrCodeIndexOutOfRange:        http.StatusNotFound,
	ErrCodeLineNotFound:           http.StatusNotFound,
	ErrCodeInvalidPrice:           http.StatusBadRequest,
	ErrCodeInvalidProductID:       http.StatusBadRequest,
	ErrCodePersistenceUnavailable: http.StatusServiceUnavailable,

	ErrCodeProductNotFound: http.StatusNotFound,
	ErrCodeOrderNotFound:   http.StatusNotFound,
	ErrCodeInvalidCustomer: http.StatusBadRequest,
	ErrCodeInvalidDays:     http.StatusBadRequest,

	// Checkout business rules -> 422 Unprocessable Entity
	ErrCodeEmptyCart:     http.StatusUnprocessableEntity,
	ErrCodeOrderRejected: http.StatusUnprocessableEntity,

	// Upstream errors -> 502 Bad Gateway
	ErrCodeUpstreamUnavailable: http.StatusBadGateway,
	ErrCodeUpstreamFailed:      http.StatusBadGateway,
	ErrCodeUpstreamInvalid:     http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":               ErrCodeNotFound,
	"INDEX_OUT_OF_RANGE":      ErrCodeIndexOutOfRange,
	"LINE_NOT_FOUND":          ErrCodeLineNotFound,
	"INVALID_PRICE":           ErrCodeInvalidPrice,
	"INVALID_PRODUCT_ID":      ErrCodeInvalidProductID,
	"PERSISTENCE_UNAVAILABLE": ErrCodePersistenceUnavailable,
	"PRODUCT_NOT_FOUND":       ErrCodeProductNotFound,
	"EMPTY_CART":              ErrCodeEmptyCart,
	"INVALID_CUSTOMER":        ErrCodeInvalidCustomer,
	"ORDER_NOT_FOUND":         ErrCodeOrderNotFound,
	"ORDER_REJECTED":          ErrCodeOrderRejected,
	"INVALID_DAYS":            ErrCodeInvalidDays,
}

// NormalizeErrorCode converts a domain error code to its API form.
// Codes already in the API form, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
