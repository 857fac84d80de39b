package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/events"
	"ticketly/internal/seats"
	"ticketly/internal/shared/utils/response"
	"ticketly/internal/tickets"
)

type Controller interface {
	BookTicket(c *gin.Context)
	GetTicket(c *gin.Context)
	GetUserTickets(c *gin.Context)
	GetETicket(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) BookTicket(c *gin.Context) {
	var req BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	result, err := ctrl.service.BookTicket(c.Request.Context(), userID, req)
	if err != nil {
		status, message := bookingErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Ticket booked successfully", result, nil)
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	ticket, err := ctrl.service.GetTicket(c.Request.Context(), ticketID, userID, c.GetString("role"))
	if err != nil {
		status, message := bookingErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

func (ctrl *controller) GetUserTickets(c *gin.Context) {
	var query ListTicketsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	result, err := ctrl.service.GetUserTickets(c.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve tickets", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets retrieved successfully", result, nil)
}

func (ctrl *controller) GetETicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	pdfBytes, filename, err := ctrl.service.GetETicketPDF(c.Request.Context(), ticketID, userID, c.GetString("role"))
	if err != nil {
		status, message := bookingErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// bookingErrorStatus maps domain errors onto HTTP statuses: conflicts for
// races lost, 422 for events that cannot take bookings, 404 for unknown
// resources, 403 for ownership failures.
func bookingErrorStatus(err error) (int, string) {
	var seatTaken *seats.SeatTakenError
	var soldOut *seats.SoldOutError
	var notBookable *seats.EventNotBookableError
	var notFound *tickets.TicketNotFoundError

	switch {
	case errors.As(err, &seatTaken):
		return http.StatusConflict, seatTaken.Error()
	case errors.As(err, &soldOut):
		return http.StatusConflict, soldOut.Error()
	case errors.As(err, &notBookable):
		return http.StatusUnprocessableEntity, notBookable.Error()
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.Is(err, events.ErrEventNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrNotTicketOwner):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, tickets.ErrTicketNumberExhausted):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
