package tickets

import (
	"time"

	"ticketly/internal/events"

	"github.com/google/uuid"
)

// Ticket is the durable record of one seat sold for one event. Rows are
// retained indefinitely once payment completes; cancellation and expiry flip
// the status, they never delete.
type Ticket struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TicketNumber string    `gorm:"uniqueIndex;not null;size:20" json:"ticket_number"`
	EventID      uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	SeatNumber   string    `gorm:"not null;size:10" json:"seat_number"`

	// Attendee details, defaulted from the booking user's profile.
	AttendeeName  string  `gorm:"not null" json:"attendee_name"`
	AttendeeEmail string  `gorm:"not null" json:"attendee_email"`
	AttendeePhone string  `json:"attendee_phone,omitempty"`
	AttendeeAge   *int    `json:"attendee_age,omitempty"`
	AttendeeGender *string `json:"attendee_gender,omitempty"`

	OriginalPrice float64 `gorm:"not null;check:original_price >= 0" json:"original_price"`
	FinalPrice    float64 `gorm:"not null;check:final_price >= 0" json:"final_price"`
	Discount      float64 `gorm:"not null;default:0" json:"discount"`
	Currency      string  `gorm:"type:varchar(3);default:'USD'" json:"currency"`

	PaymentMethod string        `gorm:"type:varchar(50);not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);check:payment_status IN ('PENDING', 'COMPLETED', 'FAILED', 'REFUNDED');default:'PENDING'" json:"payment_status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	RefundedAt    *time.Time    `json:"refunded_at,omitempty"`

	Status Status `gorm:"type:varchar(20);check:status IN ('ACTIVE', 'USED', 'CANCELLED', 'EXPIRED');default:'ACTIVE'" json:"status"`

	IsCheckedIn bool       `gorm:"not null;default:false" json:"is_checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	CheckedInBy *uuid.UUID `gorm:"type:uuid" json:"checked_in_by,omitempty"`
	Gate        string     `json:"gate,omitempty"`

	PurchaseDate time.Time `gorm:"not null" json:"purchase_date"`
	ValidUntil   time.Time `gorm:"not null" json:"valid_until"`

	// CredentialPayload is the serialized admission credential; it is the
	// authoritative form, the rendered QR image is regenerable from it.
	CredentialPayload string `gorm:"type:text;not null" json:"credential_payload"`
	QRCodePath        string `json:"qr_code_path,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Event *events.Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// PaymentStatus mirrors the declared (not gateway-processed) payment state.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

func (Ticket) TableName() string {
	return "tickets"
}

func (t *Ticket) IsActive() bool {
	return t.Status == StatusActive
}

// OccupiesSeat reports whether the ticket currently holds its seat. Cancelled
// and expired tickets free the seat for re-booking.
func (t *Ticket) OccupiesSeat() bool {
	return t.Status == StatusActive || t.Status == StatusUsed
}

// MarkCheckedIn stamps check-in metadata and moves the ticket to USED.
func (t *Ticket) MarkCheckedIn(staffID uuid.UUID, gate string, now time.Time) {
	t.Status = StatusUsed
	t.IsCheckedIn = true
	t.CheckedInAt = &now
	t.CheckedInBy = &staffID
	t.Gate = gate
	t.UpdatedAt = now
}

// MarkCancelled moves the ticket to CANCELLED and records the refund.
func (t *Ticket) MarkCancelled(now time.Time) {
	t.Status = StatusCancelled
	t.PaymentStatus = PaymentRefunded
	t.RefundedAt = &now
	t.CancelledAt = &now
	t.UpdatedAt = now
}

// DefaultValidUntil returns the default admission validity horizon for a
// ticket of the given event: 24 hours past the event end.
func DefaultValidUntil(event *events.Event) time.Time {
	return event.EndsAt.Add(24 * time.Hour)
}
