package handler

import (
	"errors"
	"net/http"

	"community-server/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// parseUUIDParam reads a path parameter; on failure the request is already aborted.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		zap.L().Warn("Invalid UUID path parameter", zap.String("param", name), zap.String("value", raw))
		abortBadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUIDQuery returns nil when the query parameter is absent.
func parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		abortBadRequest(c, "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}

func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(models.CtxKeyUserID)
	if !exists {
		zap.L().Error("User ID not found in context after AuthMiddleware")
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Unauthorized"})
		return uuid.Nil, errors.New("user id not in context")
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		zap.L().Error("Invalid user ID type in context", zap.Any("value", val))
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Code: models.ErrCodeInternal, Message: "Internal server error"})
		return uuid.Nil, errors.New("invalid user id type in context")
	}
	return userID, nil
}
