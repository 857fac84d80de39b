package seats

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSeatRoutes configures seat availability routes
func SetupSeatRoutes(rg *gin.RouterGroup, controller Controller) {
	seats := rg.Group("/events/:eventId/seats")
	{
		// Public availability counters
		seats.GET("", controller.GetSeatStats)

		// Occupied seat map is for gate staff and managers
		seats.GET("/occupied", middleware.JWTAuth(), middleware.RequireRoles("MANAGER", "ADMIN"), controller.GetOccupiedSeats)
	}
}
