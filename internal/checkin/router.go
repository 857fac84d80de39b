package checkin

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCheckInRoutes configures the gate check-in route
func SetupCheckInRoutes(rg *gin.RouterGroup, controller Controller, checkinLimiter gin.HandlerFunc) {
	gate := rg.Group("/checkin")
	gate.Use(middleware.JWTAuth(), middleware.RequireRoles("MANAGER", "ADMIN"))
	{
		if checkinLimiter != nil {
			gate.POST("", checkinLimiter, controller.CheckIn)
		} else {
			gate.POST("", controller.CheckIn)
		}
	}
}
