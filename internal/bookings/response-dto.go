package bookings

import "ticketly/internal/tickets"

// BookTicketResponse is returned on successful booking. The QR path is empty
// when rendering failed; the credential payload still admits the holder.
type BookTicketResponse struct {
	Ticket     tickets.TicketResponse `json:"ticket"`
	QRCodePath string                 `json:"qr_code_path,omitempty"`
}

// UserTicketsResponse is a page of the user's ticket history.
type UserTicketsResponse struct {
	Tickets []tickets.TicketResponse `json:"tickets"`
	Count   int                      `json:"count"`
	Limit   int                      `json:"limit"`
	Offset  int                      `json:"offset"`
}
