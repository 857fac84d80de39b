package events

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Venue       string    `json:"venue" gorm:"not null;size:255"`
	StartsAt    time.Time `json:"starts_at" gorm:"not null"`
	EndsAt      time.Time `json:"ends_at" gorm:"not null"`

	// Seat counters. available_seats + sold_seats == total_seats holds after
	// every committed mutation; the seat ledger is the only writer.
	TotalSeats     int `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	AvailableSeats int `json:"available_seats" gorm:"not null;check:available_seats >= 0"`
	SoldSeats      int `json:"sold_seats" gorm:"not null;default:0;check:sold_seats >= 0"`

	TicketPrice       float64    `json:"ticket_price" gorm:"not null;check:ticket_price >= 0"`
	EarlyBirdPrice    *float64   `json:"early_bird_price,omitempty"`
	EarlyBirdDeadline *time.Time `json:"early_bird_deadline,omitempty"`

	Status EventStatus `json:"status" gorm:"type:varchar(20);default:'draft'"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type EventResponse struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Venue             string      `json:"venue"`
	StartsAt          time.Time   `json:"starts_at"`
	EndsAt            time.Time   `json:"ends_at"`
	TotalSeats        int         `json:"total_seats"`
	AvailableSeats    int         `json:"available_seats"`
	SoldSeats         int         `json:"sold_seats"`
	TicketPrice       float64     `json:"ticket_price"`
	EarlyBirdPrice    *float64    `json:"early_bird_price,omitempty"`
	EarlyBirdDeadline *time.Time  `json:"early_bird_deadline,omitempty"`
	Status            EventStatus `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type CreateEventRequest struct {
	Name              string     `json:"name" binding:"required,min=3,max=255"`
	Description       string     `json:"description" binding:"max=2000"`
	Venue             string     `json:"venue" binding:"required,min=3,max=255"`
	StartsAt          time.Time  `json:"starts_at" binding:"required"`
	EndsAt            time.Time  `json:"ends_at" binding:"required"`
	TotalSeats        int        `json:"total_seats" binding:"required,min=1,max=100000"`
	TicketPrice       float64    `json:"ticket_price" binding:"min=0"`
	EarlyBirdPrice    *float64   `json:"early_bird_price" binding:"omitempty,min=0"`
	EarlyBirdDeadline *time.Time `json:"early_bird_deadline"`
}

type UpdateEventRequest struct {
	Name              *string    `json:"name" binding:"omitempty,min=3,max=255"`
	Description       *string    `json:"description" binding:"omitempty,max=2000"`
	Venue             *string    `json:"venue" binding:"omitempty,min=3,max=255"`
	StartsAt          *time.Time `json:"starts_at"`
	EndsAt            *time.Time `json:"ends_at"`
	TicketPrice       *float64   `json:"ticket_price" binding:"omitempty,min=0"`
	EarlyBirdPrice    *float64   `json:"early_bird_price" binding:"omitempty,min=0"`
	EarlyBirdDeadline *time.Time `json:"early_bird_deadline"`
	Status            *string    `json:"status" binding:"omitempty,oneof=draft published cancelled completed"`
}

type EventListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Venue    string `form:"venue"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published cancelled completed"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// IsBookable reports whether new tickets may be issued for the event at the
// given instant: the event must be published and not yet started.
func (e *Event) IsBookable(now time.Time) bool {
	return e.Status == StatusPublished && !now.After(e.StartsAt)
}

// EarlyBirdActive reports whether the early-bird price applies at the given
// instant.
func (e *Event) EarlyBirdActive(now time.Time) bool {
	return e.EarlyBirdPrice != nil && e.EarlyBirdDeadline != nil && now.Before(*e.EarlyBirdDeadline)
}

func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:                e.ID.String(),
		Name:              e.Name,
		Description:       e.Description,
		Venue:             e.Venue,
		StartsAt:          e.StartsAt,
		EndsAt:            e.EndsAt,
		TotalSeats:        e.TotalSeats,
		AvailableSeats:    e.AvailableSeats,
		SoldSeats:         e.SoldSeats,
		TicketPrice:       e.TicketPrice,
		EarlyBirdPrice:    e.EarlyBirdPrice,
		EarlyBirdDeadline: e.EarlyBirdDeadline,
		Status:            e.Status,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
