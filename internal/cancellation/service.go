package cancellation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ticketly/internal/tickets"
	"ticketly/internal/users"
	"ticketly/pkg/logger"
)

// TicketStore is the slice of the ticket repository cancellation needs
// (interface declared here to avoid a circular dependency).
type TicketStore interface {
	GetByIDWithEvent(ctx context.Context, id uuid.UUID) (*tickets.Ticket, error)
}

// SeatLedger performs the atomic cancel-and-release.
type SeatLedger interface {
	ReleaseAndCancel(ctx context.Context, ticketID uuid.UUID) (*tickets.Ticket, error)
}

// Notifier publishes cancellation events, best effort.
type Notifier interface {
	TicketCancelled(ctx context.Context, ticket *tickets.Ticket)
}

type Service interface {
	CancelTicket(ctx context.Context, ticketID, actorID uuid.UUID, actorRole string) (*tickets.TicketResponse, error)
}

type service struct {
	ticketStore TicketStore
	ledger      SeatLedger
	notifier    Notifier
	embargo     time.Duration
}

// NewService creates the cancellation service. The embargo is the window
// before the event start during which cancellation is refused; it defaults
// to 24 hours.
func NewService(ticketStore TicketStore, ledger SeatLedger, notifier Notifier, embargo time.Duration) Service {
	if embargo <= 0 {
		embargo = 24 * time.Hour
	}
	return &service{
		ticketStore: ticketStore,
		ledger:      ledger,
		notifier:    notifier,
		embargo:     embargo,
	}
}

// CancelTicket cancels an ACTIVE ticket, marks its payment refunded, and
// returns the seat to the pool. Only the ticket owner or an ADMIN may
// cancel, and never inside the embargo window before the event starts.
func (s *service) CancelTicket(ctx context.Context, ticketID, actorID uuid.UUID, actorRole string) (*tickets.TicketResponse, error) {
	ticket, err := s.ticketStore.GetByIDWithEvent(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.UserID != actorID && actorRole != string(users.RoleAdmin) {
		return nil, ErrNotTicketOwner
	}

	if !ticket.IsActive() {
		return nil, &tickets.InvalidTransitionError{
			TicketID:  ticket.ID,
			Current:   ticket.Status,
			Attempted: tickets.StatusCancelled,
		}
	}

	if ticket.Event != nil {
		deadline := ticket.Event.StartsAt.Add(-s.embargo)
		if time.Now().After(deadline) {
			return nil, &CancellationWindowClosedError{
				TicketID: ticket.ID,
				StartsAt: ticket.Event.StartsAt,
				Deadline: deadline,
			}
		}
	}

	// The ledger re-checks the ACTIVE status under the event row lock, so a
	// racing check-in between the guard above and here loses nothing.
	cancelled, err := s.ledger.ReleaseAndCancel(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	logger.LogTicketCancelled(cancelled.TicketNumber, cancelled.EventID.String(), cancelled.SeatNumber)

	if s.notifier != nil {
		s.notifier.TicketCancelled(ctx, cancelled)
	}

	cancelled.Event = ticket.Event
	resp := cancelled.ToResponse()
	return &resp, nil
}
