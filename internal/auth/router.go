package auth

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all auth routes
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller, authLimiter gin.HandlerFunc) {
	auth := rg.Group("/auth")
	if authLimiter != nil {
		auth.Use(authLimiter)
	}
	{
		// Public routes (no authentication required)
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/refresh", controller.RefreshToken)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.PUT("/change-password", controller.ChangePassword)
			protected.GET("/me", controller.GetMe)
		}
	}
}
