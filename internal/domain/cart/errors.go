package cart

import (
	"errors"

	"github.com/shoplite/storefront/internal/domain/shared"
)

// Cart domain errors
var (
	ErrIndexOutOfRange        = shared.NewDomainError("INDEX_OUT_OF_RANGE", "Cart line index is out of range")
	ErrLineNotFound           = shared.NewDomainError("LINE_NOT_FOUND", "Product is not in the cart")
	ErrInvalidPrice           = shared.NewDomainError("INVALID_PRICE", "Unit price must be a non-negative decimal number")
	ErrInvalidProductID       = shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	ErrPersistenceUnavailable = shared.NewDomainError("PERSISTENCE_UNAVAILABLE", "Cart storage is unavailable")
)

// ErrDecode reports a persisted cart value that cannot be read back.
// It never leaves the cart store; a corrupt value is treated as an absent cart.
var ErrDecode = errors.New("cart: persisted value is not a valid cart")
