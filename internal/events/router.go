package events

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupEventRoutes configures all event-related routes
func SetupEventRoutes(rg *gin.RouterGroup, controller Controller) {
	events := rg.Group("/events")
	{
		// Public browsing
		events.GET("", controller.GetAllEvents)
		events.GET("/upcoming", controller.GetUpcomingEvents)
		events.GET("/:eventId", controller.GetEvent)

		// Management routes
		manage := events.Group("")
		manage.Use(middleware.JWTAuth(), middleware.RequireRoles("MANAGER", "ADMIN"))
		{
			manage.POST("", controller.CreateEvent)
			manage.PATCH("/:eventId", controller.UpdateEvent)
			manage.DELETE("/:eventId", controller.DeleteEvent)
		}
	}
}
