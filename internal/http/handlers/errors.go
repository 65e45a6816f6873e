// HTTP-layer error codes returned in ErrorResponse.Code. Codes are lowercase
// snake_case and stable: clients branch on them programmatically, the message
// field is for humans.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeValidation   = "validation_failed"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeUploadFailed     = "upload_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
