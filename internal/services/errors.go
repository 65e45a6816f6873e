// Package services defines the business logic for the registry: officials,
// barangays, senior citizens, SMS credentials and broadcasts, and user
// accounts. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed at
// the handler layer. The Is* helpers classify sentinels into the four
// caller-visible kinds (not found, conflict, validation, persistence).
package services

import "errors"

// Not-found errors.
var (
	// ErrOfficialNotFound indicates that the requested official does not exist.
	ErrOfficialNotFound = errors.New("official not found")

	// ErrBarangayNotFound indicates that the requested barangay does not exist.
	ErrBarangayNotFound = errors.New("barangay not found")

	// ErrCitizenNotFound indicates that the requested senior citizen does not
	// exist (or is soft-deleted, for operations addressing the active set).
	ErrCitizenNotFound = errors.New("senior citizen not found")

	// ErrCredentialNotFound indicates no SMS gateway credential is configured.
	ErrCredentialNotFound = errors.New("sms credentials not configured")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Conflict errors (uniqueness/exclusivity violations and invalid
// lifecycle transitions).
var (
	// ErrPositionTaken is returned when creating or repositioning an official
	// into an exclusive position (head, vice) already held by someone else.
	ErrPositionTaken = errors.New("position is already held by another official")

	// ErrBarangayNameTaken is returned when a barangay name is already in use.
	ErrBarangayNameTaken = errors.New("barangay name already exists")

	// ErrOscaIDTaken is returned when an OSCA ID is already assigned,
	// including to a record sitting in the recycle bin.
	ErrOscaIDTaken = errors.New("osca id already assigned")

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrAlreadyDeleted is returned when soft-deleting a record that is
	// already in the recycle bin.
	ErrAlreadyDeleted = errors.New("record is already in the recycle bin")

	// ErrNotDeleted is returned when restoring or purging a record that is
	// not in the recycle bin.
	ErrNotDeleted = errors.New("record is not in the recycle bin")
)

// Validation errors.
var (
	// ErrMissingName is returned when a required name field is blank.
	ErrMissingName = errors.New("name is required")

	// ErrMissingPosition is returned when an official's position is blank.
	ErrMissingPosition = errors.New("position is required")

	// ErrMissingOscaID is returned when a citizen's OSCA ID is blank.
	ErrMissingOscaID = errors.New("osca id is required")

	// ErrMissingApiKey is returned when saving credentials without a key.
	ErrMissingApiKey = errors.New("api key is required")

	// ErrMissingMessage is returned when broadcasting an empty message.
	ErrMissingMessage = errors.New("message is required")

	// ErrNoRecipients is returned when a broadcast matches no contact numbers.
	ErrNoRecipients = errors.New("no recipients match the selection")

	// ErrInvalidRegistration is returned when a registration payload is
	// missing email or password.
	ErrInvalidRegistration = errors.New("email and password are required")
)

// ErrInvalidCredentials is returned for a failed login. It deliberately does
// not reveal whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

var notFoundErrs = []error{
	ErrOfficialNotFound, ErrBarangayNotFound, ErrCitizenNotFound,
	ErrCredentialNotFound, ErrUserNotFound,
}

var conflictErrs = []error{
	ErrPositionTaken, ErrBarangayNameTaken, ErrOscaIDTaken, ErrEmailTaken,
	ErrAlreadyDeleted, ErrNotDeleted,
}

var validationErrs = []error{
	ErrMissingName, ErrMissingPosition, ErrMissingOscaID, ErrMissingApiKey,
	ErrMissingMessage, ErrNoRecipients, ErrInvalidRegistration,
}

func errIn(err error, list []error) bool {
	for _, e := range list {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a service-level not-found error.
func IsNotFound(err error) bool { return errIn(err, notFoundErrs) }

// IsConflict reports whether err is a uniqueness or lifecycle conflict.
func IsConflict(err error) bool { return errIn(err, conflictErrs) }

// IsValidation reports whether err is a caller-input validation failure.
func IsValidation(err error) bool { return errIn(err, validationErrs) }
