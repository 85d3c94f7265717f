package integration

import "errors"

// Storefront API errors. Adapters wrap these so callers can tell transport
// trouble from a refused request.
var (
	ErrAPIUnavailable     = errors.New("integration: storefront API unavailable")
	ErrAPIRequestFailed   = errors.New("integration: storefront API request failed")
	ErrAPINotFound        = errors.New("integration: storefront API resource not found")
	ErrAPIInvalidResponse = errors.New("integration: invalid storefront API response")
)
