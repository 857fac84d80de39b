package checkin

import (
	"fmt"

	"github.com/google/uuid"

	"ticketly/internal/events"
)

// CredentialMismatchError indicates a decodable credential whose fields do
// not match the stored ticket. The stored row is authoritative.
type CredentialMismatchError struct {
	TicketID uuid.UUID
	Field    string
}

func (e *CredentialMismatchError) Error() string {
	return fmt.Sprintf("credential does not match ticket %s: %s mismatch", e.TicketID, e.Field)
}

// EventNotActiveError indicates the ticket's event no longer admits anyone.
type EventNotActiveError struct {
	EventID uuid.UUID
	Status  events.EventStatus
}

func (e *EventNotActiveError) Error() string {
	return fmt.Sprintf("event %s does not admit check-ins (status %s)", e.EventID, e.Status)
}
