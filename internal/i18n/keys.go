// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyServerRunning = "server.running"
	KeyInternalError = "server.internal_error"
	KeyRateLimited   = "server.rate_limited"

	// Authentication
	KeyAuthRequired  = "auth.required"
	KeyAuthForbidden = "auth.forbidden"

	// Users
	KeyUserNotFound    = "user.not_found"
	KeyUserInvalidRole = "user.invalid_role"

	// Products
	KeyProductNotFound        = "product.not_found"
	KeyProductAlreadyApproved = "product.already_approved"
	KeyProductInvalidPrice    = "product.invalid_price"

	// Advertisements
	KeyAdvertisementNotFound      = "advertisement.not_found"
	KeyAdvertisementInvalidStatus = "advertisement.invalid_status"

	// Watchlist
	KeyWatchlistNotFound  = "watchlist.not_found"
	KeyWatchlistDuplicate = "watchlist.duplicate"

	// Reviews
	KeyReviewDuplicate = "review.duplicate"

	// Generic resource
	KeyResourceNotFound = "resource.not_found"
	KeyResourceConflict = "resource.conflict"

	// Validation
	KeyValidationInvalid = "validation.invalid"
	KeyValidationID      = "validation.invalid_id"

	// File Upload
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileRequired     = "file.required"
)
