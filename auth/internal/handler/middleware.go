package handler

import (
	sharedMiddleware "community-server/shared/middleware"
	"community-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware validates the bearer session and stores the caller in the context.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := sharedMiddleware.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			h.logger.Debug("Bearer token missing or malformed", zap.String("path", c.Request.URL.Path))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrUnauthorized)
			return
		}

		claims, err := h.authService.VerifySession(c.Request.Context(), tokenString)
		if err != nil {
			h.logger.Warn("Session verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(models.CtxKeyUserID, userID)
		c.Set(models.CtxKeyUserEmail, claims.Email)
		c.Set(models.CtxKeySessionID, claims.ID)
		c.Next()
	}
}
