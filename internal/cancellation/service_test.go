package cancellation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly/internal/events"
	"ticketly/internal/tickets"
	"ticketly/internal/users"
)

// cancelLedger emulates ReleaseAndCancel: the cancel and the seat release
// happen together under a lock, and only an ACTIVE ticket can be cancelled.
type cancelLedger struct {
	mu       sync.Mutex
	ticket   *tickets.Ticket
	released int
}

func (l *cancelLedger) GetByIDWithEvent(ctx context.Context, id uuid.UUID) (*tickets.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ticket == nil || l.ticket.ID != id {
		return nil, &tickets.TicketNotFoundError{TicketID: id}
	}
	snapshot := *l.ticket
	return &snapshot, nil
}

func (l *cancelLedger) ReleaseAndCancel(ctx context.Context, ticketID uuid.UUID) (*tickets.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ticket == nil || l.ticket.ID != ticketID {
		return nil, &tickets.TicketNotFoundError{TicketID: ticketID}
	}
	if l.ticket.Status != tickets.StatusActive {
		return nil, &tickets.InvalidTransitionError{
			TicketID:  ticketID,
			Current:   l.ticket.Status,
			Attempted: tickets.StatusCancelled,
		}
	}

	now := time.Now()
	l.ticket.Status = tickets.StatusCancelled
	l.ticket.CancelledAt = &now
	l.ticket.PaymentStatus = tickets.PaymentRefunded
	l.released++

	snapshot := *l.ticket
	return &snapshot, nil
}

func cancellableTicket() *tickets.Ticket {
	event := &events.Event{
		ID:       uuid.New(),
		Name:     "Winter Gala",
		Status:   events.StatusPublished,
		StartsAt: time.Now().Add(72 * time.Hour),
		EndsAt:   time.Now().Add(76 * time.Hour),
	}
	return &tickets.Ticket{
		ID:            uuid.New(),
		TicketNumber:  "EVT-20250615-00007",
		EventID:       event.ID,
		UserID:        uuid.New(),
		SeatNumber:    "C3",
		Status:        tickets.StatusActive,
		PaymentStatus: tickets.PaymentCompleted,
		Event:         event,
	}
}

func TestCancelTicketByOwner(t *testing.T) {
	ticket := cancellableTicket()
	ledger := &cancelLedger{ticket: ticket}
	svc := NewService(ledger, ledger, nil, 0)

	resp, err := svc.CancelTicket(context.Background(), ticket.ID, ticket.UserID, string(users.RoleUser))
	require.NoError(t, err)

	assert.Equal(t, string(tickets.StatusCancelled), resp.Status)
	assert.Equal(t, string(tickets.PaymentRefunded), resp.PaymentStatus)
	assert.Equal(t, "Winter Gala", resp.EventName)
	assert.Equal(t, 1, ledger.released)
}

func TestCancelTicketByAdmin(t *testing.T) {
	ticket := cancellableTicket()
	ledger := &cancelLedger{ticket: ticket}
	svc := NewService(ledger, ledger, nil, 0)

	_, err := svc.CancelTicket(context.Background(), ticket.ID, uuid.New(), string(users.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.released)
}

func TestCancelTicketAuthorization(t *testing.T) {
	tests := []struct {
		name string
		role users.Role
	}{
		{"stranger user", users.RoleUser},
		// Managers run gates, they do not own refunds.
		{"manager", users.RoleManager},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := cancellableTicket()
			ledger := &cancelLedger{ticket: ticket}
			svc := NewService(ledger, ledger, nil, 0)

			_, err := svc.CancelTicket(context.Background(), ticket.ID, uuid.New(), string(tt.role))
			assert.True(t, errors.Is(err, ErrNotTicketOwner))
			assert.Equal(t, 0, ledger.released)
			assert.Equal(t, tickets.StatusActive, ledger.ticket.Status)
		})
	}
}

func TestCancelTicketInsideEmbargo(t *testing.T) {
	ticket := cancellableTicket()
	ticket.Event.StartsAt = time.Now().Add(6 * time.Hour)
	ledger := &cancelLedger{ticket: ticket}
	svc := NewService(ledger, ledger, nil, 24*time.Hour)

	_, err := svc.CancelTicket(context.Background(), ticket.ID, ticket.UserID, string(users.RoleUser))
	require.Error(t, err)

	var closed *CancellationWindowClosedError
	require.ErrorAs(t, err, &closed)
	assert.Equal(t, ticket.Event.StartsAt.Add(-24*time.Hour), closed.Deadline)
	assert.Equal(t, 0, ledger.released)
}

func TestCancelTicketAfterEventStart(t *testing.T) {
	ticket := cancellableTicket()
	ticket.Event.StartsAt = time.Now().Add(-time.Hour)
	ledger := &cancelLedger{ticket: ticket}
	svc := NewService(ledger, ledger, nil, 0)

	_, err := svc.CancelTicket(context.Background(), ticket.ID, ticket.UserID, string(users.RoleUser))
	require.Error(t, err)

	var closed *CancellationWindowClosedError
	assert.ErrorAs(t, err, &closed)
}

func TestCancelTicketNotActive(t *testing.T) {
	tests := []struct {
		name   string
		status tickets.Status
	}{
		{"used ticket", tickets.StatusUsed},
		{"already cancelled", tickets.StatusCancelled},
		{"expired ticket", tickets.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := cancellableTicket()
			ticket.Status = tt.status
			ledger := &cancelLedger{ticket: ticket}
			svc := NewService(ledger, ledger, nil, 0)

			_, err := svc.CancelTicket(context.Background(), ticket.ID, ticket.UserID, string(users.RoleUser))
			require.Error(t, err)

			var invalid *tickets.InvalidTransitionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.status, invalid.Current)
			assert.Equal(t, tickets.StatusCancelled, invalid.Attempted)
			assert.Equal(t, 0, ledger.released)
		})
	}
}

func TestCancelTicketNotFound(t *testing.T) {
	ledger := &cancelLedger{}
	svc := NewService(ledger, ledger, nil, 0)

	_, err := svc.CancelTicket(context.Background(), uuid.New(), uuid.New(), string(users.RoleUser))
	require.Error(t, err)

	var notFound *tickets.TicketNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCancelTicketDoubleCancel(t *testing.T) {
	ticket := cancellableTicket()
	ledger := &cancelLedger{ticket: ticket}
	svc := NewService(ledger, ledger, nil, 0)

	_, err := svc.CancelTicket(context.Background(), ticket.ID, ticket.UserID, string(users.RoleUser))
	require.NoError(t, err)

	_, err = svc.CancelTicket(context.Background(), ticket.ID, ticket.UserID, string(users.RoleUser))
	require.Error(t, err)

	var invalid *tickets.InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, ledger.released)
}
