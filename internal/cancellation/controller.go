package cancellation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/shared/utils/response"
	"ticketly/internal/tickets"
)

type Controller interface {
	CancelTicket(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CancelTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	actorID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}
	actorUUID, err := uuid.Parse(actorID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return
	}

	ticket, err := ctrl.service.CancelTicket(c.Request.Context(), ticketID, actorUUID, c.GetString("role"))
	if err != nil {
		status, message := cancellationErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket cancelled successfully", ticket, nil)
}

func cancellationErrorStatus(err error) (int, string) {
	var notFound *tickets.TicketNotFoundError
	var notActive *tickets.TicketNotActiveError
	var windowClosed *CancellationWindowClosedError
	var invalidTransition *tickets.InvalidTransitionError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.Is(err, ErrNotTicketOwner):
		return http.StatusForbidden, err.Error()
	case errors.As(err, &notActive):
		return http.StatusUnprocessableEntity, notActive.Error()
	case errors.As(err, &windowClosed):
		return http.StatusUnprocessableEntity, windowClosed.Error()
	case errors.As(err, &invalidTransition):
		return http.StatusConflict, invalidTransition.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
