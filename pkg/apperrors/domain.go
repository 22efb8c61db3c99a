package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a missing-record error into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a unique-violation error into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// --- Auth ---

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrIdentifierRequired = New(
	CodeValidationFailed,
	"auth",
	"Either email or phone_number is required",
	http.StatusBadRequest,
)

// --- OTP ---

var ErrOTPNotIssued = New(
	CodeValidationFailed,
	"auth",
	"No OTP was generated for this user",
	http.StatusBadRequest,
)

var ErrOTPExpired = New(
	CodeValidationFailed,
	"auth",
	"OTP has expired",
	http.StatusBadRequest,
)

var ErrOTPMismatch = New(
	CodeValidationFailed,
	"auth",
	"Invalid OTP",
	http.StatusBadRequest,
)

// ErrOTPDispatchFailed fails the request: without the code the user cannot
// proceed, so delivery errors must not be swallowed.
func ErrOTPDispatchFailed(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "auth",
		"Failed to send OTP", http.StatusServiceUnavailable)
}

// --- Posts & applications ---

var ErrPostClosed = New(
	CodeValidationFailed,
	"post",
	"Post is no longer accepting applications",
	http.StatusBadRequest,
)

var ErrSelfApplication = New(
	CodeValidationFailed,
	"post",
	"You cannot apply to your own post",
	http.StatusBadRequest,
)

var ErrAlreadyApplied = New(
	CodeValidationFailed,
	"post",
	"You have already applied to this post",
	http.StatusBadRequest,
)

// ErrInvalidStatusFilter rejects unknown application-status values in query
// filters and path operations.
var ErrInvalidStatusFilter = New(
	CodeInvalidStatus,
	"application",
	"status must be pending, accepted or rejected",
	http.StatusBadRequest,
)

var ErrNotPostOwner = New(
	CodeForbidden,
	"post",
	"Only the post owner may perform this operation",
	http.StatusForbidden,
)
