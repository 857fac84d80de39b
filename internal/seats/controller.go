package seats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/events"
	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	GetSeatStats(c *gin.Context)
	GetOccupiedSeats(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetSeatStats(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	stats, err := ctrl.service.GetSeatStats(c.Request.Context(), eventID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, events.ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat availability retrieved successfully", stats, nil)
}

func (ctrl *controller) GetOccupiedSeats(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	seats, err := ctrl.service.GetOccupiedSeats(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve occupied seats", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Occupied seats retrieved successfully", seats, nil)
}
