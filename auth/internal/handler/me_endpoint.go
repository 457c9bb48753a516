package handler

import (
	"net/http"

	"community-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @Summary Текущий пользователь
// @Tags user
// @Produce json
// @Success 200 {object} models.PublicUser
// @Failure 401 {object} models.ErrorResponse "Неавторизован"
// @Security BearerAuth
// @Router /api/auth/me [get]
func (h *AuthHandler) getMe(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}

	user, err := h.authService.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.logger.Warn("Failed to load current user", zap.String("userID", userID.String()), zap.Error(err))
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// getPermissions returns the effective permission set. With ?capability= it
// answers a single yes/no question instead.
func (h *AuthHandler) getPermissions(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	boardID, ok := parseOptionalUUIDQuery(c, "board_id")
	if !ok {
		return
	}

	if raw := c.Query("capability"); raw != "" {
		capability, err := models.ParseCapability(raw)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		perms, err := h.authService.GetPermissions(c.Request.Context(), userID, boardID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, capabilityResponse{
			Capability: string(capability),
			Allowed:    perms.Permissions.Allows(capability),
			Role:       perms.Role.String(),
		})
		return
	}

	perms, err := h.authService.GetPermissions(c.Request.Context(), userID, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, perms)
}
