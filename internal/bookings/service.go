package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ticketly/internal/credentials"
	"ticketly/internal/events"
	"ticketly/internal/seats"
	"ticketly/internal/tickets"
	"ticketly/internal/users"
	"ticketly/pkg/logger"
)

// ErrNotTicketOwner is returned when a user requests a ticket that belongs
// to someone else and lacks a staff role.
var ErrNotTicketOwner = errors.New("ticket does not belong to this user")

// SeatLedger is the slice of the seat ledger the booking flow needs
// (interface declared here to avoid a circular dependency).
type SeatLedger interface {
	ReserveAndCreate(ctx context.Context, ticket *tickets.Ticket) error
}

// TicketStore is the slice of the ticket repository the booking flow needs.
type TicketStore interface {
	GetByIDWithEvent(ctx context.Context, id uuid.UUID) (*tickets.Ticket, error)
	GetUserTickets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]tickets.Ticket, error)
	ExistsByNumber(ctx context.Context, ticketNumber string) (bool, error)
	UpdateQRCodePath(ctx context.Context, id uuid.UUID, path string) error
}

// EventReader resolves events for pre-transaction guards and pricing.
type EventReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

// UserReader resolves the booking user for attendee defaulting.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*users.User, error)
}

// Notifier publishes booking lifecycle events. Implementations must be
// non-blocking best effort; a publish failure never fails the booking.
type Notifier interface {
	TicketBooked(ctx context.Context, ticket *tickets.Ticket)
}

// QRRenderer materializes the credential QR after the booking commits.
type QRRenderer interface {
	RenderQR(ticketNumber, encodedPayload string) (string, error)
}

// ETicketRenderer renders the printable PDF on demand.
type ETicketRenderer interface {
	Generate(ticket *tickets.Ticket) ([]byte, error)
}

// Service interface defines the contract for the booking flow
type Service interface {
	BookTicket(ctx context.Context, userID uuid.UUID, req BookTicketRequest) (*BookTicketResponse, error)
	GetTicket(ctx context.Context, ticketID, actorID uuid.UUID, actorRole string) (*tickets.TicketResponse, error)
	GetUserTickets(ctx context.Context, userID uuid.UUID, query ListTicketsQuery) (*UserTicketsResponse, error)
	GetETicketPDF(ctx context.Context, ticketID, actorID uuid.UUID, actorRole string) ([]byte, string, error)
}

type service struct {
	ledger      SeatLedger
	ticketStore TicketStore
	eventReader EventReader
	userReader  UserReader
	notifier    Notifier
	qrRenderer  QRRenderer
	pdfRenderer ETicketRenderer
	currency    string
}

func NewService(
	ledger SeatLedger,
	ticketStore TicketStore,
	eventReader EventReader,
	userReader UserReader,
	notifier Notifier,
	qrRenderer QRRenderer,
	pdfRenderer ETicketRenderer,
	currency string,
) Service {
	if currency == "" {
		currency = "USD"
	}
	return &service{
		ledger:      ledger,
		ticketStore: ticketStore,
		eventReader: eventReader,
		userReader:  userReader,
		notifier:    notifier,
		qrRenderer:  qrRenderer,
		pdfRenderer: pdfRenderer,
		currency:    currency,
	}
}

// BookTicket runs the full booking flow: guards, pricing, ticket number
// generation, credential encoding, and the atomic seat reservation. The
// ticket number and credential are prepared before the transaction so no
// generation work happens under the per-event lock.
func (s *service) BookTicket(ctx context.Context, userID uuid.UUID, req BookTicketRequest) (*BookTicketResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	user, err := s.userReader.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve booking user: %w", err)
	}

	event, err := s.eventReader.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Cheap pre-checks outside the transaction. The ledger re-verifies both
	// under the row lock; these only short-circuit the obvious failures.
	now := time.Now()
	if !event.IsBookable(now) {
		reason := "event is not published"
		if now.After(event.StartsAt) {
			reason = "event has already started"
		}
		return nil, &seats.EventNotBookableError{EventID: event.ID, Status: event.Status, Reason: reason}
	}
	if event.AvailableSeats <= 0 {
		return nil, &seats.SoldOutError{EventID: event.ID}
	}

	ticketNumber, err := tickets.NewUniqueTicketNumber(ctx, s.ticketStore, now)
	if err != nil {
		return nil, err
	}

	ticket := s.buildTicket(user, event, req, ticketNumber, now)

	encoded, err := credentials.Encode(credentials.Payload{
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		EventID:      ticket.EventID,
		SeatNumber:   ticket.SeatNumber,
		AttendeeName: ticket.AttendeeName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode admission credential: %w", err)
	}
	ticket.CredentialPayload = encoded

	if err := s.ledger.ReserveAndCreate(ctx, ticket); err != nil {
		return nil, err
	}

	logger.LogTicketBooked(ticket.TicketNumber, ticket.EventID.String(), ticket.SeatNumber, ticket.FinalPrice)

	// Post-commit side effects are best effort: the persisted payload can
	// regenerate the QR, and notifications are advisory.
	qrPath := ""
	if s.qrRenderer != nil {
		path, renderErr := s.qrRenderer.RenderQR(ticket.TicketNumber, encoded)
		if renderErr != nil {
			logger.Warn("QR render failed for ticket " + ticket.TicketNumber + ": " + renderErr.Error())
		} else {
			qrPath = path
			ticket.QRCodePath = path
			if updateErr := s.ticketStore.UpdateQRCodePath(ctx, ticket.ID, path); updateErr != nil {
				logger.Warn("failed to persist QR path for ticket " + ticket.TicketNumber + ": " + updateErr.Error())
			}
		}
	}

	if s.notifier != nil {
		s.notifier.TicketBooked(ctx, ticket)
	}

	ticket.Event = event
	resp := &BookTicketResponse{
		Ticket:     ticket.ToResponse(),
		QRCodePath: qrPath,
	}
	return resp, nil
}

func (s *service) buildTicket(user *users.User, event *events.Event, req BookTicketRequest, ticketNumber string, now time.Time) *tickets.Ticket {
	attendeeName := req.AttendeeName
	if attendeeName == "" {
		attendeeName = user.FullName()
	}
	attendeeEmail := req.AttendeeEmail
	if attendeeEmail == "" {
		attendeeEmail = user.Email
	}
	attendeePhone := req.AttendeePhone
	if attendeePhone == "" {
		attendeePhone = user.Phone
	}

	originalPrice := event.TicketPrice
	finalPrice := originalPrice
	discount := 0.0
	if event.EarlyBirdActive(now) {
		finalPrice = *event.EarlyBirdPrice
		discount = originalPrice - finalPrice
	}

	ticket := &tickets.Ticket{
		ID:             uuid.New(),
		TicketNumber:   ticketNumber,
		EventID:        event.ID,
		UserID:         user.ID,
		SeatNumber:     strings.ToUpper(strings.TrimSpace(req.SeatNumber)),
		AttendeeName:   attendeeName,
		AttendeeEmail:  attendeeEmail,
		AttendeePhone:  attendeePhone,
		AttendeeAge:    req.AttendeeAge,
		AttendeeGender: req.AttendeeGender,
		OriginalPrice:  originalPrice,
		FinalPrice:     finalPrice,
		Discount:       discount,
		Currency:       s.currency,
		PaymentMethod:  req.PaymentMethod,
		Status:         tickets.StatusActive,
		PurchaseDate:   now,
		ValidUntil:     tickets.DefaultValidUntil(event),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Payments are recorded, not gateway-processed. Cash settles at the
	// venue; everything else is treated as paid now.
	method := PaymentMethod(req.PaymentMethod)
	if method.SettlesImmediately() {
		ticket.PaymentStatus = tickets.PaymentCompleted
		ticket.TransactionID = generateTransactionID(now)
		ticket.PaidAt = &now
	} else {
		ticket.PaymentStatus = tickets.PaymentPending
	}

	return ticket
}

func generateTransactionID(now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("TXN_%d_%s", now.Unix(), short)
}

func (s *service) GetTicket(ctx context.Context, ticketID, actorID uuid.UUID, actorRole string) (*tickets.TicketResponse, error) {
	ticket, err := s.authorizedTicket(ctx, ticketID, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	resp := ticket.ToResponse()
	return &resp, nil
}

func (s *service) GetUserTickets(ctx context.Context, userID uuid.UUID, query ListTicketsQuery) (*UserTicketsResponse, error) {
	if query.Limit <= 0 {
		query.Limit = 20
	}

	rows, err := s.ticketStore.GetUserTickets(ctx, userID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user tickets: %w", err)
	}

	responses := make([]tickets.TicketResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, rows[i].ToResponse())
	}

	return &UserTicketsResponse{
		Tickets: responses,
		Count:   len(responses),
		Limit:   query.Limit,
		Offset:  query.Offset,
	}, nil
}

func (s *service) GetETicketPDF(ctx context.Context, ticketID, actorID uuid.UUID, actorRole string) ([]byte, string, error) {
	ticket, err := s.authorizedTicket(ctx, ticketID, actorID, actorRole)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := s.pdfRenderer.Generate(ticket)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("%s.pdf", ticket.TicketNumber), nil
}

func (s *service) authorizedTicket(ctx context.Context, ticketID, actorID uuid.UUID, actorRole string) (*tickets.Ticket, error) {
	ticket, err := s.ticketStore.GetByIDWithEvent(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != actorID && actorRole != string(users.RoleManager) && actorRole != string(users.RoleAdmin) {
		return nil, ErrNotTicketOwner
	}
	return ticket, nil
}
