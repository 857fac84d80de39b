package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketly/internal/events"
	"ticketly/internal/tickets"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the seat ledger: the single writer of per-event seat
// occupancy and the total/available/sold counters. Its mutating operations
// are single transactions serialized per event by a FOR UPDATE row lock on
// the events row, so bookings for different events never contend.
type Repository interface {
	// ReserveAndCreate atomically verifies the event is bookable, the seat
	// is free and capacity remains, persists the ticket, and commits the
	// counter update. Exactly one of two racing calls for the same
	// (event, seat) succeeds; the loser gets SeatTakenError.
	ReserveAndCreate(ctx context.Context, ticket *tickets.Ticket) error

	// ReleaseAndCancel atomically flips an ACTIVE ticket to CANCELLED with
	// refund stamps and returns its seat to the counters.
	ReleaseAndCancel(ctx context.Context, ticketID uuid.UUID) (*tickets.Ticket, error)

	GetSeatStats(ctx context.Context, eventID uuid.UUID) (*SeatStats, error)
	GetOccupiedSeats(ctx context.Context, eventID uuid.UUID) ([]SeatInfo, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// lockedEvent is the minimal projection read under the row lock.
type lockedEvent struct {
	ID             uuid.UUID `gorm:"column:id"`
	TotalSeats     int       `gorm:"column:total_seats"`
	AvailableSeats int       `gorm:"column:available_seats"`
	SoldSeats      int       `gorm:"column:sold_seats"`
	Status         string    `gorm:"column:status"`
	StartsAt       time.Time `gorm:"column:starts_at"`
}

// eventLockQuery builds the SELECT ... FOR UPDATE that serializes every
// ledger write for one event on its events row.
func eventLockQuery(tx *gorm.DB, eventID uuid.UUID) *gorm.DB {
	return tx.Table("events").
		Select("id, total_seats, available_seats, sold_seats, status, starts_at").
		Where("id = ?", eventID).
		Clauses(clause.Locking{Strength: "UPDATE"})
}

// adjustCounters moves one seat between available and sold with arithmetic
// updates guarded in the WHERE clause. soldDelta is +1 for a reservation,
// -1 for a release. The guard re-checks capacity and the
// available + sold == total invariant at write time, so a write that would
// corrupt the counters affects zero rows instead of committing.
func adjustCounters(tx *gorm.DB, eventID uuid.UUID, soldDelta int, now time.Time) *gorm.DB {
	guard := "available_seats > 0"
	if soldDelta < 0 {
		guard = "sold_seats > 0"
	}
	return tx.Model(&events.Event{}).
		Where("id = ? AND "+guard+" AND available_seats + sold_seats = total_seats", eventID).
		Updates(map[string]interface{}{
			"available_seats": gorm.Expr("available_seats - ?", soldDelta),
			"sold_seats":      gorm.Expr("sold_seats + ?", soldDelta),
			"updated_at":      now,
		})
}

func (r *repository) ReserveAndCreate(ctx context.Context, ticket *tickets.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event row to serialize all bookings for this event.
		var event lockedEvent
		err := eventLockQuery(tx, ticket.EventID).First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return events.ErrEventNotFound
			}
			return fmt.Errorf("failed to lock event: %w", err)
		}

		// 2. Bookability guards.
		now := time.Now()
		if event.Status != string(events.StatusPublished) {
			return &EventNotBookableError{
				EventID: event.ID,
				Status:  events.EventStatus(event.Status),
				Reason:  "event is not published",
			}
		}
		if now.After(event.StartsAt) {
			return &EventNotBookableError{
				EventID: event.ID,
				Status:  events.EventStatus(event.Status),
				Reason:  "event has already started",
			}
		}

		// 3. Capacity guard.
		if event.AvailableSeats <= 0 {
			return &SoldOutError{EventID: event.ID}
		}

		// 4. Seat occupancy guard. Only ACTIVE and USED tickets hold a seat;
		// cancelled and expired ones free it for re-booking.
		var occupied int64
		err = tx.Model(&tickets.Ticket{}).
			Where("event_id = ? AND seat_number = ? AND status IN ?",
				ticket.EventID, ticket.SeatNumber,
				[]tickets.Status{tickets.StatusActive, tickets.StatusUsed}).
			Count(&occupied).Error
		if err != nil {
			return fmt.Errorf("failed to check seat occupancy: %w", err)
		}
		if occupied > 0 {
			return &SeatTakenError{EventID: ticket.EventID, SeatNumber: ticket.SeatNumber}
		}

		// 5. Persist the ticket. The partial unique index on
		// (event_id, seat_number) for live tickets backstops the guard above
		// against writers that slipped past the row lock.
		if err := tx.Create(ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &SeatTakenError{EventID: ticket.EventID, SeatNumber: ticket.SeatNumber}
			}
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		// 6. Commit the counters. Zero affected rows means the guarded update
		// refused to run the counters negative or break the invariant.
		res := adjustCounters(tx, ticket.EventID, 1, now)
		if res.Error != nil {
			return fmt.Errorf("failed to commit seat counters: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: event %s rejected reservation (available=%d sold=%d total=%d)",
				ErrCounterInvariant, event.ID, event.AvailableSeats, event.SoldSeats, event.TotalSeats)
		}

		return nil
	})
}

func (r *repository) ReleaseAndCancel(ctx context.Context, ticketID uuid.UUID) (*tickets.Ticket, error) {
	var cancelled tickets.Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket tickets.Ticket
		if err := tx.Where("id = ?", ticketID).First(&ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &tickets.TicketNotFoundError{TicketID: ticketID}
			}
			return err
		}

		// Serialize against concurrent bookings on the same event.
		var event lockedEvent
		if err := eventLockQuery(tx, ticket.EventID).First(&event).Error; err != nil {
			return fmt.Errorf("failed to lock event: %w", err)
		}

		// Flip the ticket conditionally so a racing check-in or second
		// cancellation loses deterministically.
		now := time.Now()
		result := tx.Model(&tickets.Ticket{}).
			Where("id = ? AND status = ?", ticketID, tickets.StatusActive).
			Updates(map[string]interface{}{
				"status":         tickets.StatusCancelled,
				"payment_status": tickets.PaymentRefunded,
				"refunded_at":    now,
				"cancelled_at":   now,
				"updated_at":     now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &tickets.InvalidTransitionError{
				TicketID:  ticketID,
				Current:   ticket.Status,
				Attempted: tickets.StatusCancelled,
			}
		}

		// Return the seat to the counters.
		res := adjustCounters(tx, ticket.EventID, -1, now)
		if res.Error != nil {
			return fmt.Errorf("failed to release seat counters: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: event %s rejected release (available=%d sold=%d total=%d)",
				ErrCounterInvariant, event.ID, event.AvailableSeats, event.SoldSeats, event.TotalSeats)
		}

		if err := tx.Where("id = ?", ticketID).First(&cancelled).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &cancelled, nil
}

func (r *repository) GetSeatStats(ctx context.Context, eventID uuid.UUID) (*SeatStats, error) {
	var event lockedEvent
	err := r.db.WithContext(ctx).Table("events").
		Select("id, total_seats, available_seats, sold_seats, status, starts_at").
		Where("id = ?", eventID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, events.ErrEventNotFound
		}
		return nil, err
	}

	return &SeatStats{
		EventID:   event.ID.String(),
		Total:     event.TotalSeats,
		Available: event.AvailableSeats,
		Sold:      event.SoldSeats,
	}, nil
}

func (r *repository) GetOccupiedSeats(ctx context.Context, eventID uuid.UUID) ([]SeatInfo, error) {
	var rows []tickets.Ticket
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status IN ?", eventID,
			[]tickets.Status{tickets.StatusActive, tickets.StatusUsed}).
		Order("seat_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	seats := make([]SeatInfo, 0, len(rows))
	for i := range rows {
		seats = append(seats, SeatInfo{
			SeatNumber:   rows[i].SeatNumber,
			TicketNumber: rows[i].TicketNumber,
			AttendeeName: rows[i].AttendeeName,
			Status:       string(rows[i].Status),
		})
	}
	return seats, nil
}
