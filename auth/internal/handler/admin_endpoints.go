package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *AuthHandler) banUser(c *gin.Context) {
	requesterID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	targetID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	var req banRequest
	// Тело необязательно: бан без причины и без срока
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err = h.authService.BanUser(c.Request.Context(), requesterID, targetID, req.Reason, req.Until)
	adminOperationsTotal.WithLabelValues("ban", statusLabel(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.logger.Info("User banned via API", zap.String("targetID", targetID.String()), zap.String("requesterID", requesterID.String()))
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) unbanUser(c *gin.Context) {
	requesterID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	targetID, ok := parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	err = h.authService.UnbanUser(c.Request.Context(), requesterID, targetID)
	adminOperationsTotal.WithLabelValues("unban", statusLabel(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
