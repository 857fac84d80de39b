package credentials

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Payload is the machine-readable credential embedded in the QR code and
// stored verbatim on the ticket row. The stored copy is authoritative: a
// scanned credential is only honored after it matches the persisted ticket.
type Payload struct {
	TicketID     uuid.UUID `json:"ticket_id"`
	TicketNumber string    `json:"ticket_number"`
	EventID      uuid.UUID `json:"event_id"`
	SeatNumber   string    `json:"seat_number"`
	AttendeeName string    `json:"attendee_name"`
}

// MalformedCredentialError indicates a scanned credential that could not be
// decoded or failed field validation. It carries no ticket detail because a
// malformed credential identifies nothing.
type MalformedCredentialError struct {
	Reason string
}

func (e *MalformedCredentialError) Error() string {
	return fmt.Sprintf("malformed credential: %s", e.Reason)
}

// Encode serializes a payload to its canonical JSON form. Encoding is our
// own write path, so the full payload is required.
func Encode(p Payload) (string, error) {
	if err := validateIdentity(p); err != nil {
		return "", err
	}
	if p.SeatNumber == "" {
		return "", &MalformedCredentialError{Reason: "missing seat_number"}
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode credential: %w", err)
	}
	return string(raw), nil
}

// Decode parses and validates a scanned credential string. Only the fields
// that locate a ticket are required; everything else is verified against
// the stored row at the gate.
func Decode(raw string) (*Payload, error) {
	if raw == "" {
		return nil, &MalformedCredentialError{Reason: "empty credential"}
	}

	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, &MalformedCredentialError{Reason: "invalid JSON"}
	}
	if err := validateIdentity(p); err != nil {
		return nil, err
	}
	return &p, nil
}

func validateIdentity(p Payload) error {
	switch {
	case p.TicketID == uuid.Nil:
		return &MalformedCredentialError{Reason: "missing ticket_id"}
	case p.TicketNumber == "":
		return &MalformedCredentialError{Reason: "missing ticket_number"}
	case p.EventID == uuid.Nil:
		return &MalformedCredentialError{Reason: "missing event_id"}
	}
	return nil
}
