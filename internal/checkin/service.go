package checkin

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ticketly/internal/credentials"
	"ticketly/internal/events"
	"ticketly/internal/tickets"
	"ticketly/pkg/logger"
)

// TicketStore is the slice of the ticket repository the gate needs
// (interface declared here to avoid a circular dependency).
type TicketStore interface {
	GetByIDWithEvent(ctx context.Context, id uuid.UUID) (*tickets.Ticket, error)
	TransitionToUsed(ctx context.Context, id uuid.UUID, staffID uuid.UUID, gate string) (*tickets.Ticket, error)
}

// Notifier publishes check-in events, best effort.
type Notifier interface {
	TicketCheckedIn(ctx context.Context, ticket *tickets.Ticket)
}

type Service interface {
	CheckIn(ctx context.Context, staffID uuid.UUID, req CheckInRequest) (*CheckInResponse, error)
}

type service struct {
	ticketStore TicketStore
	notifier    Notifier
}

func NewService(ticketStore TicketStore, notifier Notifier) Service {
	return &service{ticketStore: ticketStore, notifier: notifier}
}

// CheckIn admits the holder of a scanned credential. The credential only
// locates the ticket; every admission decision is made against the stored
// row, and the ACTIVE to USED flip is a single conditional update so a
// replayed scan cannot admit twice.
func (s *service) CheckIn(ctx context.Context, staffID uuid.UUID, req CheckInRequest) (*CheckInResponse, error) {
	payload, err := credentials.Decode(req.Credential)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketStore.GetByIDWithEvent(ctx, payload.TicketID)
	if err != nil {
		return nil, err
	}

	if err := matchCredential(payload, ticket); err != nil {
		return nil, err
	}

	// Only a published event admits; drafts, cancelled and completed events
	// all turn scans away.
	if ticket.Event != nil && ticket.Event.Status != events.StatusPublished {
		return nil, &EventNotActiveError{EventID: ticket.EventID, Status: ticket.Event.Status}
	}

	// A ticket past its validity window is inadmissible even if the expiry
	// sweep has not flipped it yet.
	now := time.Now()
	if now.After(ticket.ValidUntil) {
		return nil, &tickets.TicketNotActiveError{TicketID: ticket.ID, Status: tickets.StatusExpired}
	}

	used, err := s.ticketStore.TransitionToUsed(ctx, ticket.ID, staffID, req.Gate)
	if err != nil {
		return nil, err
	}

	logger.LogCheckIn(used.TicketNumber, used.EventID.String(), req.Gate)

	if s.notifier != nil {
		s.notifier.TicketCheckedIn(ctx, used)
	}

	resp := &CheckInResponse{
		TicketNumber: used.TicketNumber,
		SeatNumber:   used.SeatNumber,
		AttendeeName: used.AttendeeName,
		Gate:         used.Gate,
	}
	if used.CheckedInAt != nil {
		resp.CheckedInAt = *used.CheckedInAt
	}
	if used.Event != nil {
		resp.EventName = used.Event.Name
	}
	return resp, nil
}

func matchCredential(payload *credentials.Payload, ticket *tickets.Ticket) error {
	switch {
	case payload.TicketNumber != ticket.TicketNumber:
		return &CredentialMismatchError{TicketID: ticket.ID, Field: "ticket_number"}
	case payload.EventID != ticket.EventID:
		return &CredentialMismatchError{TicketID: ticket.ID, Field: "event_id"}
	case payload.SeatNumber != ticket.SeatNumber:
		return &CredentialMismatchError{TicketID: ticket.ID, Field: "seat_number"}
	}
	return nil
}
