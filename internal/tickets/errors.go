package tickets

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrTicketNumberExhausted is returned when ticket number generation keeps
// colliding after the bounded retry. It is an integrity failure, never
// retried further.
var ErrTicketNumberExhausted = errors.New("ticket number space exhausted after retry")

// ErrCounterInvariant signals a broken available + sold == total seat
// counter invariant. It is fatal: the enclosing transaction is rolled back
// and the error logged.
var ErrCounterInvariant = errors.New("seat counter invariant violated")

// TicketNotFoundError indicates no ticket exists for the given ID.
type TicketNotFoundError struct {
	TicketID uuid.UUID
}

func (e *TicketNotFoundError) Error() string {
	return fmt.Sprintf("ticket %s not found", e.TicketID)
}

// InvalidTransitionError indicates a forbidden state machine transition.
type InvalidTransitionError struct {
	TicketID  uuid.UUID
	Current   Status
	Attempted Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("ticket %s: invalid transition %s -> %s", e.TicketID, e.Current, e.Attempted)
}

// TicketNotActiveError indicates an operation that requires an ACTIVE ticket.
type TicketNotActiveError struct {
	TicketID uuid.UUID
	Status   Status
}

func (e *TicketNotActiveError) Error() string {
	return fmt.Sprintf("ticket %s is not active (status %s)", e.TicketID, e.Status)
}

// AlreadyCheckedInError guards against replayed check-in scans.
type AlreadyCheckedInError struct {
	TicketID    uuid.UUID
	CheckedInAt *time.Time
}

func (e *AlreadyCheckedInError) Error() string {
	if e.CheckedInAt != nil {
		return fmt.Sprintf("ticket %s already checked in at %s", e.TicketID, e.CheckedInAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("ticket %s already checked in", e.TicketID)
}
