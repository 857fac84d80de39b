package cancellation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotTicketOwner is returned when the actor neither owns the ticket nor
// holds the ADMIN role.
var ErrNotTicketOwner = errors.New("ticket does not belong to this user")

// CancellationWindowClosedError indicates the embargo before the event start
// has begun: refundable cancellation is no longer possible.
type CancellationWindowClosedError struct {
	TicketID uuid.UUID
	StartsAt time.Time
	Deadline time.Time
}

func (e *CancellationWindowClosedError) Error() string {
	return fmt.Sprintf("ticket %s can no longer be cancelled: cancellation closed at %s for event starting %s",
		e.TicketID, e.Deadline.Format(time.RFC3339), e.StartsAt.Format(time.RFC3339))
}
