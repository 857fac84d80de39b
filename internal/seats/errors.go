package seats

import (
	"fmt"

	"ticketly/internal/events"
	"ticketly/internal/tickets"

	"github.com/google/uuid"
)

// ErrCounterInvariant aliases the canonical sentinel so the ledger and the
// expiry sweep classify counter corruption identically.
var ErrCounterInvariant = tickets.ErrCounterInvariant

// SeatTakenError indicates the requested seat is held by a live ticket.
type SeatTakenError struct {
	EventID    uuid.UUID
	SeatNumber string
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat %s is already taken for event %s", e.SeatNumber, e.EventID)
}

// SoldOutError indicates the event has no seats left.
type SoldOutError struct {
	EventID uuid.UUID
}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("event %s is sold out", e.EventID)
}

// EventNotBookableError indicates the event does not accept bookings: it is
// not published, or it has already started.
type EventNotBookableError struct {
	EventID uuid.UUID
	Status  events.EventStatus
	Reason  string
}

func (e *EventNotBookableError) Error() string {
	return fmt.Sprintf("event %s is not bookable (status %s): %s", e.EventID, e.Status, e.Reason)
}
