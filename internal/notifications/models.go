package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TicketEventType enumerates the ticket lifecycle events published to Kafka.
type TicketEventType string

const (
	EventTicketBooked    TicketEventType = "TICKET_BOOKED"
	EventTicketCancelled TicketEventType = "TICKET_CANCELLED"
	EventTicketCheckedIn TicketEventType = "TICKET_CHECKED_IN"
)

// TicketEvent is the message body for ticket lifecycle notifications.
// Downstream consumers (email, analytics) key off Type.
type TicketEvent struct {
	ID            uuid.UUID       `json:"id"`
	Type          TicketEventType `json:"type"`
	TicketID      uuid.UUID       `json:"ticket_id"`
	TicketNumber  string          `json:"ticket_number"`
	EventID       uuid.UUID       `json:"event_id"`
	UserID        uuid.UUID       `json:"user_id"`
	SeatNumber    string          `json:"seat_number"`
	AttendeeEmail string          `json:"attendee_email"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func (e *TicketEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events of one event's tickets to one partition
// so consumers see them in order.
func (e *TicketEvent) GetPartitionKey() string {
	return e.EventID.String()
}
