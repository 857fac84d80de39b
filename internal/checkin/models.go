package checkin

import "time"

// CheckInRequest carries the scanned credential and the gate it was scanned
// at.
type CheckInRequest struct {
	Credential string `json:"credential" binding:"required"`
	Gate       string `json:"gate" binding:"omitempty,max=20"`
}

// CheckInResponse is the gate confirmation: just enough for staff to wave
// the attendee through.
type CheckInResponse struct {
	TicketNumber string    `json:"ticket_number"`
	SeatNumber   string    `json:"seat_number"`
	AttendeeName string    `json:"attendee_name"`
	EventName    string    `json:"event_name,omitempty"`
	Gate         string    `json:"gate,omitempty"`
	CheckedInAt  time.Time `json:"checked_in_at"`
}
