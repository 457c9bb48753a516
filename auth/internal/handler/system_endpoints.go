package handler

import (
	"net/http"

	"community-server/auth/internal/service"
	"community-server/shared/models"

	"github.com/gin-gonic/gin"
)

// @Summary Настройки сайта
// @Tags system
// @Produce json
// @Success 200 {object} models.SiteSettings
// @Failure 404 {object} models.ErrorResponse "Настройки еще не созданы"
// @Router /system/config [get]
func (h *AuthHandler) getConfig(c *gin.Context) {
	settings, err := h.systemService.GetConfig(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *AuthHandler) createConfig(c *gin.Context) {
	requesterID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	var req models.SiteSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.systemService.CreateConfig(c.Request.Context(), requesterID, req)
	adminOperationsTotal.WithLabelValues("create_config", statusLabel(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, settings)
}

func (h *AuthHandler) updateConfig(c *gin.Context) {
	requesterID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.SiteSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.systemService.UpdateConfig(c.Request.Context(), requesterID, id, req)
	adminOperationsTotal.WithLabelValues("update_config", statusLabel(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary Состояние аккаунта администратора
// @Tags system
// @Produce json
// @Success 200 {object} service.AdminStatus
// @Failure 403 {object} models.ErrorResponse "Только для system_admin"
// @Security BearerAuth
// @Router /system/admin [get]
func (h *AuthHandler) getAdmin(c *gin.Context) {
	requesterID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	status, err := h.systemService.GetAdmin(c.Request.Context(), requesterID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *AuthHandler) createAdmin(c *gin.Context) {
	requesterID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	admin, err := h.systemService.CreateAdmin(c.Request.Context(), requesterID, service.CreateAdminInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	adminOperationsTotal.WithLabelValues("create_admin", statusLabel(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

func (h *AuthHandler) deleteAdmin(c *gin.Context) {
	requesterID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	deleted, err := h.systemService.DeleteAdmin(c.Request.Context(), requesterID)
	adminOperationsTotal.WithLabelValues("delete_admin", statusLabel(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleteAdminResponse{Deleted: deleted})
}
