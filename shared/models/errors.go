package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound     = errors.New("resource not found")
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")

	// Authentication Errors. Login reports the same message for an unknown
	// email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email verification required")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrUnauthorized       = errors.New("unauthorized")

	// Token Errors
	ErrTokenInvalid             = errors.New("token is invalid")
	ErrTokenMalformed           = errors.New("token is malformed")
	ErrTokenExpired             = errors.New("token has expired")
	ErrTokenNotFound            = errors.New("token not found in storage")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification link")

	// Conflicts
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrAdminAlreadyExists = errors.New("admin account already exists")
	ErrNoAdminToDelete    = errors.New("no admin account to delete")
	ErrRoleAlreadyHeld    = errors.New("role already has a holder")

	// Authorization
	ErrForbidden = errors.New("forbidden")

	// General Request/Server Errors
	ErrValidation       = errors.New("validation error")
	ErrSiteNameRequired = errors.New("site_name is required")
	ErrInternalServer   = errors.New("internal server error")
)

// ErrorKind is the caller-facing class of a failure.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindUnauthorized
	KindBadRequest
	KindConflict
	KindForbidden
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// KindOf classifies an error. Anything unrecognised is internal.
// ErrRoleNotFound stays internal: a missing catalog row is a server fault.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrEmailNotVerified),
		errors.Is(err, ErrAccountDisabled),
		errors.Is(err, ErrAccountSuspended),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenNotFound):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidVerificationToken),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrSiteNameRequired):
		return KindBadRequest
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrAdminAlreadyExists),
		errors.Is(err, ErrNoAdminToDelete),
		errors.Is(err, ErrRoleAlreadyHeld):
		return KindConflict
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
