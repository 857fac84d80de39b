package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetByIDWithEvent(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetByTicketNumber(ctx context.Context, ticketNumber string) (*Ticket, error)
	ExistsByNumber(ctx context.Context, ticketNumber string) (bool, error)
	GetUserTickets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Ticket, error)
	GetEventTickets(ctx context.Context, eventID uuid.UUID) ([]Ticket, error)
	UpdateQRCodePath(ctx context.Context, id uuid.UUID, path string) error

	// TransitionToUsed performs the idempotent ACTIVE -> USED check-in
	// transition as a single conditional update.
	TransitionToUsed(ctx context.Context, id uuid.UUID, staffID uuid.UUID, gate string) (*Ticket, error)

	// ExpireOverdue flips ACTIVE tickets whose valid_until has passed to
	// EXPIRED and releases their seats, returning the number expired.
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &TicketNotFoundError{TicketID: id}
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByIDWithEvent(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &TicketNotFoundError{TicketID: id}
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByTicketNumber(ctx context.Context, ticketNumber string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("ticket_number = ?", ticketNumber).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &TicketNotFoundError{}
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) ExistsByNumber(ctx context.Context, ticketNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("ticket_number = ?", ticketNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) GetUserTickets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&tickets).Error
	return tickets, err
}

func (r *repository) GetEventTickets(ctx context.Context, eventID uuid.UUID) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("seat_number ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *repository) UpdateQRCodePath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ?", id).
		Update("qr_code_path", path).Error
}

func (r *repository) TransitionToUsed(ctx context.Context, id uuid.UUID, staffID uuid.UUID, gate string) (*Ticket, error) {
	now := time.Now()

	// Conditional update: the WHERE clause carries both the state machine
	// guard and the replay guard, so two concurrent scans of the same ticket
	// resolve to exactly one winner.
	result := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ? AND status = ? AND is_checked_in = ?", id, StatusActive, false).
		Updates(map[string]interface{}{
			"status":        StatusUsed,
			"is_checked_in": true,
			"checked_in_at": now,
			"checked_in_by": staffID,
			"gate":          gate,
			"updated_at":    now,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Re-read to report the precise reason the guard failed.
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.IsCheckedIn {
			return nil, &AlreadyCheckedInError{TicketID: id, CheckedInAt: current.CheckedInAt}
		}
		return nil, &TicketNotActiveError{TicketID: id, Status: current.Status}
	}

	return r.GetByIDWithEvent(ctx, id)
}

func (r *repository) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	expired := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var overdue []Ticket
		if err := tx.
			Where("status = ? AND valid_until < ?", StatusActive, now).
			Find(&overdue).Error; err != nil {
			return err
		}
		if len(overdue) == 0 {
			return nil
		}

		perEvent := make(map[uuid.UUID]int)
		for i := range overdue {
			result := tx.Model(&Ticket{}).
				Where("id = ? AND status = ?", overdue[i].ID, StatusActive).
				Updates(map[string]interface{}{
					"status":     StatusExpired,
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				perEvent[overdue[i].EventID]++
				expired++
			}
		}

		// Expired tickets free their seats: return them to the counters.
		for eventID, count := range perEvent {
			res := releaseSeats(tx, eventID, count, now)
			if res.Error != nil {
				return fmt.Errorf("failed to release seats for event %s: %w", eventID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: event %s rejected release of %d expired seats",
					ErrCounterInvariant, eventID, count)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return expired, nil
}

// releaseSeats returns count expired seats to the event counters. The guard
// refuses to run the counters negative or break the
// available + sold == total invariant; zero affected rows is an integrity
// failure surfaced by the caller.
func releaseSeats(tx *gorm.DB, eventID uuid.UUID, count int, now time.Time) *gorm.DB {
	return tx.Exec(`
		UPDATE events
		SET available_seats = available_seats + ?,
		    sold_seats = sold_seats - ?,
		    updated_at = ?
		WHERE id = ? AND sold_seats >= ? AND available_seats + sold_seats = total_seats`,
		count, count, now, eventID, count)
}
