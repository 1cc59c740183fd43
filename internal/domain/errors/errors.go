package errors

import (
	"net/http"
	"strings"

	"pgbee/internal/errors"
)

// Kind is the coarse failure class the error classifier switches on.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindDuplicate   Kind = "duplicate"
	KindAuth        Kind = "auth"
	KindNotFound    Kind = "not_found"
	KindPersistence Kind = "persistence"
	KindUnexpected  Kind = "unexpected"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int       // HTTP status code
	ErrorCode() string   // Business error code
	Message() string     // User-facing message
	Details() string     // Extra detail, never sent for non-operational errors
	Kind() Kind          // Failure class
	IsOperational() bool // Expected failure whose message is safe to show verbatim
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	kind      Kind
}

// NewBaseError creates a new operational error.
func NewBaseError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		kind:      kind,
	}
}

func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches on error code so that copies made through WithDetails or
// WithMessage still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

func (e *BaseError) HTTPCode() int       { return e.httpCode }
func (e *BaseError) ErrorCode() string   { return e.errorCode }
func (e *BaseError) Message() string     { return e.message }
func (e *BaseError) Details() string     { return e.details }
func (e *BaseError) Kind() Kind          { return e.kind }
func (e *BaseError) IsOperational() bool { return true }

// WithDetails returns a copy carrying details.
func (e *BaseError) WithDetails(details string) *BaseError {
	cp := *e
	cp.details = details

	return &cp
}

// WithMessage returns a copy with a replaced user-facing message.
func (e *BaseError) WithMessage(message string) *BaseError {
	cp := *e
	cp.message = message

	return &cp
}

// Validation and conflicts
var (
	ErrValidationFailed = NewBaseError(KindValidation, http.StatusBadRequest,
		"VALIDATION_FAILED", "Invalid input data")

	ErrInvalidID = NewBaseError(KindValidation, http.StatusBadRequest,
		"INVALID_ID", "Invalid Data Format")

	ErrUnsupportedFileType = NewBaseError(KindValidation, http.StatusBadRequest,
		"UNSUPPORTED_FILE_TYPE", "Only JPEG and PNG images are allowed")

	ErrFileTooLarge = NewBaseError(KindValidation, http.StatusBadRequest,
		"FILE_TOO_LARGE", "Uploaded file is too large")

	ErrDuplicateValue = NewBaseError(KindDuplicate, http.StatusBadRequest,
		"DUPLICATE_VALUE", "Duplicate field value")
)

// Authentication and authorization
var (
	ErrUnauthorized = NewBaseError(KindAuth, http.StatusUnauthorized,
		"UNAUTHORIZED", "Unauthorized access")

	ErrInvalidCredentials = NewBaseError(KindAuth, http.StatusUnauthorized,
		"INVALID_CREDENTIALS", "Invalid email or password")

	ErrInvalidToken = NewBaseError(KindAuth, http.StatusUnauthorized,
		"INVALID_TOKEN", "Invalid Token")

	ErrRefreshTokenInvalid = NewBaseError(KindAuth, http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID", "Invalid or expired refresh token")

	ErrMissingProfileEmail = NewBaseError(KindAuth, http.StatusUnauthorized,
		"MISSING_PROFILE_EMAIL", "No email found in profile")

	ErrOAuthStateInvalid = NewBaseError(KindAuth, http.StatusUnauthorized,
		"OAUTH_STATE_INVALID", "Invalid or expired OAuth state")

	ErrOAuthFailed = NewBaseError(KindAuth, http.StatusUnauthorized,
		"OAUTH_FAILED", "Google authentication failed")

	ErrHostelForbidden = NewBaseError(KindAuth, http.StatusForbidden,
		"HOSTEL_FORBIDDEN", "You are not allowed to modify this hostel")

	ErrReviewForbidden = NewBaseError(KindAuth, http.StatusForbidden,
		"REVIEW_FORBIDDEN", "You are not allowed to modify this review")

	ErrTooManyRequests = NewBaseError(KindAuth, http.StatusTooManyRequests,
		"TOO_MANY_REQUESTS", "Too many requests, please try again later")
)

// Missing resources
var (
	ErrNotFound        = NewBaseError(KindNotFound, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrUserNotFound    = NewBaseError(KindNotFound, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	ErrHostelNotFound  = NewBaseError(KindNotFound, http.StatusNotFound, "HOSTEL_NOT_FOUND", "Hostel not found")
	ErrNoHostels       = NewBaseError(KindNotFound, http.StatusNotFound, "NO_HOSTELS", "No hostels found")
	ErrOwnerNotFound   = NewBaseError(KindNotFound, http.StatusNotFound, "OWNER_NOT_FOUND", "Owner not found")
	ErrStudentNotFound = NewBaseError(KindNotFound, http.StatusNotFound, "STUDENT_NOT_FOUND", "Student not found")
	ErrReviewNotFound  = NewBaseError(KindNotFound, http.StatusNotFound, "REVIEW_NOT_FOUND", "Review not found")
	ErrAmenityNotFound = NewBaseError(KindNotFound, http.StatusNotFound, "AMENITIES_NOT_FOUND", "Amenities not found")
	ErrRentNotFound    = NewBaseError(KindNotFound, http.StatusNotFound, "RENT_NOT_FOUND", "Rent not found")
	ErrEnquiryNotFound = NewBaseError(KindNotFound, http.StatusNotFound, "ENQUIRY_NOT_FOUND", "Enquiry not found")
	ErrFileNotFound    = NewBaseError(KindNotFound, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
)

var ErrInternalError = NewBaseError(KindUnexpected, http.StatusInternalServerError,
	"INTERNAL_ERROR", "Internal Server Error")

// NewValidationError lists every field violation in the message, the way
// clients of the original API expect: "Invalid input data. a. b".
func NewValidationError(violations ...string) *BaseError {
	if len(violations) == 0 {
		return ErrValidationFailed
	}

	return ErrValidationFailed.WithMessage(
		ErrValidationFailed.Message() + ". " + strings.Join(violations, ". "),
	)
}

// NewDuplicateError names the offending columns.
func NewDuplicateError(fields ...string) *BaseError {
	if len(fields) == 0 {
		return ErrDuplicateValue
	}

	return ErrDuplicateValue.WithMessage(
		ErrDuplicateValue.Message() + ": " + strings.Join(fields, ", "),
	)
}

// PersistenceError represents a storage-layer fault. Its cause is logged but
// never rendered to the client.
type PersistenceError struct {
	err     error
	details string
}

// NewPersistenceError creates a database-related error
func NewPersistenceError(err error, details string) AppError {
	return &PersistenceError{
		err:     err,
		details: details,
	}
}

func (e *PersistenceError) Error() string {
	return errors.Wrap(e.err, e.details).Error()
}

func (e *PersistenceError) Unwrap() error       { return e.err }
func (e *PersistenceError) HTTPCode() int       { return http.StatusInternalServerError }
func (e *PersistenceError) ErrorCode() string   { return "DATABASE_ERROR" }
func (e *PersistenceError) Message() string     { return "Database error" }
func (e *PersistenceError) Details() string     { return e.details }
func (e *PersistenceError) Kind() Kind          { return KindPersistence }
func (e *PersistenceError) IsOperational() bool { return false }

// KindOf classifies err, defaulting to KindUnexpected.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindUnexpected
}
