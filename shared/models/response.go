package models

// Коды ошибок API.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeWrongCredentials   = "WRONG_CREDENTIALS"
	ErrCodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	ErrCodeAccountDisabled    = "ACCOUNT_DISABLED"
	ErrCodeAccountSuspended   = "ACCOUNT_SUSPENDED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeVerificationFailed = "VERIFICATION_LINK_INVALID"
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	ErrCodeAdminExists        = "ADMIN_EXISTS"
	ErrCodeNoAdmin            = "NO_ADMIN"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse - стандартное тело ответа об ошибке.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse - тело простых подтверждений.
type MessageResponse struct {
	Message string `json:"message"`
}
