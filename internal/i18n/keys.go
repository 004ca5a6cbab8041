// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired       = "auth.required"
	KeyAuthInvalidSession = "auth.invalid_session"
	KeyAuthServiceError   = "auth.service_error"
	KeyAuthLogoutSuccess  = "auth.logout_success"
	KeyAccessDenied       = "auth.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Cart
	KeyCartItemAdded  = "cart.item_added"
	KeyCartUpdated    = "cart.updated"
	KeyCartCleared    = "cart.cleared"
	KeyCartBundleVoid = "cart.bundle_voided"
	KeyCartEmpty      = "cart.empty"

	// Orders
	KeyOrderPlacedTitle   = "order.placed_title"
	KeyOrderPlacedBody    = "order.placed_body"
	KeyOrderStatusTitle   = "order.status_title"
	KeyOrderStatusBody    = "order.status_body"
	KeyOrderNewTitle      = "order.new_title"
	KeyOrderNewBody       = "order.new_body"
	KeyOrderAssistedTitle = "order.assisted_title"
	KeyOrderAssistedBody  = "order.assisted_body"

	// Products
	KeyProductCreated = "product.created"
	KeyProductUpdated = "product.updated"
	KeyProductDeleted = "product.deleted"
)
