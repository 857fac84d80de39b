package cancellation

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCancellationRoutes configures the ticket cancellation route
func SetupCancellationRoutes(rg *gin.RouterGroup, controller Controller) {
	cancel := rg.Group("/tickets")
	cancel.Use(middleware.JWTAuth())
	{
		cancel.POST("/:ticketId/cancel", controller.CancelTicket)
	}
}
