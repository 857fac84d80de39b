package checkin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/credentials"
	"ticketly/internal/shared/utils/response"
	"ticketly/internal/tickets"
)

type Controller interface {
	CheckIn(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	staffID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}
	staffUUID, err := uuid.Parse(staffID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return
	}

	result, err := ctrl.service.CheckIn(c.Request.Context(), staffUUID, req)
	if err != nil {
		status, message := checkInErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Check-in successful", result, nil)
}

func checkInErrorStatus(err error) (int, string) {
	var malformed *credentials.MalformedCredentialError
	var mismatch *CredentialMismatchError
	var notFound *tickets.TicketNotFoundError
	var alreadyIn *tickets.AlreadyCheckedInError
	var notActive *tickets.TicketNotActiveError
	var eventDead *EventNotActiveError

	switch {
	case errors.As(err, &malformed):
		return http.StatusBadRequest, malformed.Error()
	case errors.As(err, &mismatch):
		return http.StatusBadRequest, mismatch.Error()
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(err, &alreadyIn):
		return http.StatusConflict, alreadyIn.Error()
	case errors.As(err, &notActive):
		return http.StatusUnprocessableEntity, notActive.Error()
	case errors.As(err, &eventDead):
		return http.StatusUnprocessableEntity, eventDead.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
