package handler

import (
	"errors"
	"net/http"

	"community-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeWrongCredentials, Message: "Invalid email or password"}
	case errors.Is(err, models.ErrEmailNotVerified):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeEmailNotVerified, Message: "Email verification required"}
	case errors.Is(err, models.ErrAccountDisabled):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeAccountDisabled, Message: "Account is disabled"}
	case errors.Is(err, models.ErrAccountSuspended):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeAccountSuspended, Message: "Account is suspended"}
	case errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenExpired, Message: "Token has expired"}
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed),
		errors.Is(err, models.ErrTokenNotFound), errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Token is invalid or malformed"}
	case errors.Is(err, models.ErrInvalidVerificationToken):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeVerificationFailed, Message: "Invalid or expired verification link"}
	case errors.Is(err, models.ErrEmailAlreadyExists):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeDuplicateEmail, Message: "Email already in use"}
	case errors.Is(err, models.ErrAdminAlreadyExists), errors.Is(err, models.ErrRoleAlreadyHeld):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeAdminExists, Message: "Admin account already exists"}
	case errors.Is(err, models.ErrNoAdminToDelete):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeNoAdmin, Message: "There is no admin account to delete"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Code: models.ErrCodeForbidden, Message: "Insufficient privileges"}
	case errors.Is(err, models.ErrUserNotFound), errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeNotFound, Message: "Resource not found"}
	case errors.Is(err, models.ErrSiteNameRequired), errors.Is(err, models.ErrValidation):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeValidation, Message: err.Error()}
	default:
		statusCode = statusForKind(models.KindOf(err))
		if statusCode == http.StatusInternalServerError {
			zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
			errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
		} else {
			errResp = models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: err.Error()}
		}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	case models.KindBadRequest:
		return http.StatusBadRequest
	case models.KindConflict:
		return http.StatusConflict
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: message})
}
