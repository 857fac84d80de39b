package bookings

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures ticket booking and retrieval routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller Controller, bookingLimiter gin.HandlerFunc) {
	ticketRoutes := rg.Group("/tickets")
	ticketRoutes.Use(middleware.JWTAuth())
	{
		if bookingLimiter != nil {
			ticketRoutes.POST("", bookingLimiter, controller.BookTicket)
		} else {
			ticketRoutes.POST("", controller.BookTicket)
		}
		ticketRoutes.GET("/:ticketId", controller.GetTicket)
		ticketRoutes.GET("/:ticketId/eticket", controller.GetETicket)
	}

	userRoutes := rg.Group("/users")
	userRoutes.Use(middleware.JWTAuth())
	{
		userRoutes.GET("/tickets", controller.GetUserTickets)
	}
}
