package handler

import (
	"net/http"

	"community-server/auth/internal/service"
	"community-server/shared/models"

	"github.com/gin-gonic/gin"
)

// @Summary Вход в систему
// @Description Аутентификация по email и паролю, выдает JWT сессию на 7 дней
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Данные для входа"
// @Success 200 {object} service.LoginResult
// @Failure 401 {object} models.ErrorResponse "Неверные учетные данные или аккаунт недоступен"
// @Router /api/auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	loginsTotal.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Регистрация
// @Description Создает неподтвержденный аккаунт и отправляет письмо со ссылкой
// @Tags auth
// @Accept json
// @Produce json
// @Param request body signupRequest true "Данные для регистрации"
// @Success 201 {object} service.SignupResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Email уже занят"
// @Router /api/auth/signup [post]
func (h *AuthHandler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Email:           req.Email,
		Name:            req.Name,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	signupsTotal.Inc()
	c.JSON(http.StatusCreated, result)
}

// verifyEmail accepts the token either as a path segment or as ?token=.
func (h *AuthHandler) verifyEmail(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		emailVerificationsTotal.WithLabelValues("failure").Inc()
		handleServiceError(c, models.ErrInvalidVerificationToken)
		return
	}

	err := h.authService.VerifyEmail(c.Request.Context(), token)
	emailVerificationsTotal.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Email verified"})
}

func (h *AuthHandler) resendVerification(c *gin.Context) {
	var req resendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		handleServiceError(c, err)
		return
	}

	h.logger.Debug("Verification resend handled")
	c.JSON(http.StatusAccepted, models.MessageResponse{
		Message: "If the account exists and is not verified yet, a new link has been sent",
	})
}
