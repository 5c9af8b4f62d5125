package checkout

import "errors"

// Client errors. Line specific failures wrap ErrProductMissing or
// ErrProductInactive with the offending cart item or product.
var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrProductMissing       = errors.New("product not found for cart item")
	ErrProductInactive      = errors.New("product is not available")
	ErrNonPositiveTotal     = errors.New("order total must be greater than zero")
)

// Server errors. Any partially written order is removed before they are returned.
var (
	ErrStorageNotReady = errors.New("order storage is not provisioned, run the schema migration")
	ErrOrderCreate     = errors.New("failed to create order")
	ErrOrderItemCreate = errors.New("failed to create order items")
)

// IsValidation reports whether err was caused by the caller's input or cart
// contents rather than by the server.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidPaymentMethod,
		ErrEmptyCart,
		ErrProductMissing,
		ErrProductInactive,
		ErrNonPositiveTotal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
