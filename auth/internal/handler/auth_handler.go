package handler

import (
	"community-server/auth/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService   service.AuthService
	systemService service.SystemService
	logger        *zap.Logger
}

func NewAuthHandler(authService service.AuthService, systemService service.SystemService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		systemService: systemService,
		logger:        logger.Named("AuthHandler"),
	}
}

// RegisterRoutes mounts every endpoint. rateLimit guards the credential
// endpoints and may be nil.
func (h *AuthHandler) RegisterRoutes(router *gin.Engine, rateLimit gin.HandlerFunc) {
	limited := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if rateLimit == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{rateLimit, handler}
	}

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", limited(h.login)...)
		authGroup.POST("/signup", limited(h.signup)...)
		authGroup.GET("/verify-email", h.verifyEmail)
		authGroup.GET("/verify-email/:token", h.verifyEmail)
		authGroup.POST("/verify-email/resend", limited(h.resendVerification)...)
		authGroup.GET("/me", h.AuthMiddleware(), h.getMe)
	}

	protected := router.Group("/api")
	protected.Use(h.AuthMiddleware())
	{
		protected.GET("/me/permissions", h.getPermissions)
		protected.POST("/users/:user_id/ban", h.banUser)
		protected.DELETE("/users/:user_id/ban", h.unbanUser)
	}

	systemGroup := router.Group("/system")
	{
		systemGroup.GET("/config", h.getConfig)
		systemGroup.POST("/config", h.AuthMiddleware(), h.createConfig)
		systemGroup.PUT("/config/:id", h.AuthMiddleware(), h.updateConfig)

		admin := systemGroup.Group("/admin", h.AuthMiddleware())
		admin.GET("", h.getAdmin)
		admin.POST("", h.createAdmin)
		admin.DELETE("", h.deleteAdmin)
	}
}
