package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly/internal/credentials"
	"ticketly/internal/events"
	"ticketly/internal/seats"
	"ticketly/internal/tickets"
	"ticketly/internal/users"
)

// fakeLedger reproduces the seat ledger's semantics in memory: mutex
// serialization instead of a row lock, same guards, same typed errors.
type fakeLedger struct {
	mu      sync.Mutex
	event   *events.Event
	taken   map[string]bool
	created []*tickets.Ticket
}

func newFakeLedger(event *events.Event) *fakeLedger {
	return &fakeLedger{
		event: event,
		taken: make(map[string]bool),
	}
}

func (f *fakeLedger) ReserveAndCreate(ctx context.Context, ticket *tickets.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	if f.event.Status != events.StatusPublished {
		return &seats.EventNotBookableError{EventID: f.event.ID, Status: f.event.Status, Reason: "event is not published"}
	}
	if now.After(f.event.StartsAt) {
		return &seats.EventNotBookableError{EventID: f.event.ID, Status: f.event.Status, Reason: "event has already started"}
	}
	if f.event.AvailableSeats <= 0 {
		return &seats.SoldOutError{EventID: f.event.ID}
	}
	if f.taken[ticket.SeatNumber] {
		return &seats.SeatTakenError{EventID: f.event.ID, SeatNumber: ticket.SeatNumber}
	}

	f.taken[ticket.SeatNumber] = true
	f.event.AvailableSeats--
	f.event.SoldSeats++
	f.created = append(f.created, ticket)
	return nil
}

// release emulates ReleaseAndCancel returning the seat to the pool.
func (f *fakeLedger) release(seat string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.taken, seat)
	f.event.AvailableSeats++
	f.event.SoldSeats--
}

func (f *fakeLedger) counters() (available, sold int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.event.AvailableSeats, f.event.SoldSeats
}

type fakeTicketStore struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]*tickets.Ticket
	numbers map[string]bool
	qrPaths map[uuid.UUID]string
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{
		tickets: make(map[uuid.UUID]*tickets.Ticket),
		numbers: make(map[string]bool),
		qrPaths: make(map[uuid.UUID]string),
	}
}

func (f *fakeTicketStore) GetByIDWithEvent(ctx context.Context, id uuid.UUID) (*tickets.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, &tickets.TicketNotFoundError{TicketID: id}
	}
	return ticket, nil
}

func (f *fakeTicketStore) GetUserTickets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]tickets.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []tickets.Ticket
	for _, t := range f.tickets {
		if t.UserID == userID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (f *fakeTicketStore) ExistsByNumber(ctx context.Context, ticketNumber string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.numbers[ticketNumber], nil
}

func (f *fakeTicketStore) UpdateQRCodePath(ctx context.Context, id uuid.UUID, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.qrPaths[id] = path
	return nil
}

func (f *fakeTicketStore) add(ticket *tickets.Ticket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tickets[ticket.ID] = ticket
	f.numbers[ticket.TicketNumber] = true
}

// fakeEventReader reads through the ledger's lock so pre-checks observe
// committed counter updates without racing the reservation path.
type fakeEventReader struct {
	ledger *fakeLedger
}

func (f *fakeEventReader) GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	f.ledger.mu.Lock()
	defer f.ledger.mu.Unlock()
	if f.ledger.event.ID != id {
		return nil, events.ErrEventNotFound
	}
	snapshot := *f.ledger.event
	return &snapshot, nil
}

type fakeUserReader struct {
	user *users.User
}

func (f *fakeUserReader) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, users.ErrUserNotFound
	}
	return f.user, nil
}

func testEvent(totalSeats int) *events.Event {
	return &events.Event{
		ID:             uuid.New(),
		Name:           "Autumn Jazz Night",
		Venue:          "Riverside Hall",
		StartsAt:       time.Now().Add(72 * time.Hour),
		EndsAt:         time.Now().Add(76 * time.Hour),
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
		SoldSeats:      0,
		TicketPrice:    50,
		Status:         events.StatusPublished,
	}
}

func testUser() *users.User {
	return &users.User{
		ID:        uuid.New(),
		FirstName: "Maya",
		LastName:  "Lindqvist",
		Email:     "maya@example.com",
		Phone:     "+46701234567",
		Role:      users.RoleUser,
	}
}

type bookingFixture struct {
	service Service
	ledger  *fakeLedger
	store   *fakeTicketStore
	event   *events.Event
	user    *users.User
}

func newBookingFixture(t *testing.T, event *events.Event) *bookingFixture {
	t.Helper()

	user := testUser()
	ledger := newFakeLedger(event)
	store := newFakeTicketStore()
	reader := &fakeEventReader{ledger: ledger}

	svc := NewService(ledger, store, reader, &fakeUserReader{user: user}, nil, nil, nil, "USD")
	return &bookingFixture{
		service: svc,
		ledger:  ledger,
		store:   store,
		event:   event,
		user:    user,
	}
}

func (fx *bookingFixture) request(seat string) BookTicketRequest {
	return BookTicketRequest{
		EventID:       fx.event.ID.String(),
		SeatNumber:    seat,
		PaymentMethod: string(MethodCreditCard),
	}
}

func TestBookTicketHappyPath(t *testing.T) {
	fx := newBookingFixture(t, testEvent(100))

	resp, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("a12"))
	require.NoError(t, err)

	ticket := resp.Ticket
	assert.Regexp(t, `^EVT-\d{8}-\d{5}$`, ticket.TicketNumber)
	assert.Equal(t, "A12", ticket.SeatNumber)
	assert.Equal(t, "Maya Lindqvist", ticket.AttendeeName)
	assert.Equal(t, "maya@example.com", ticket.AttendeeEmail)
	assert.Equal(t, 50.0, ticket.OriginalPrice)
	assert.Equal(t, 50.0, ticket.FinalPrice)
	assert.Equal(t, 0.0, ticket.Discount)
	assert.Equal(t, string(tickets.StatusActive), ticket.Status)
	assert.False(t, ticket.IsCheckedIn)
	assert.Equal(t, fx.event.EndsAt.Add(24*time.Hour), ticket.ValidUntil)

	available, sold := fx.ledger.counters()
	assert.Equal(t, 99, available)
	assert.Equal(t, 1, sold)
}

func TestBookTicketCredentialMatchesTicket(t *testing.T) {
	fx := newBookingFixture(t, testEvent(10))

	resp, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("B7"))
	require.NoError(t, err)

	require.Len(t, fx.ledger.created, 1)
	stored := fx.ledger.created[0]

	payload, err := credentials.Decode(stored.CredentialPayload)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, payload.TicketID)
	assert.Equal(t, resp.Ticket.TicketNumber, payload.TicketNumber)
	assert.Equal(t, fx.event.ID, payload.EventID)
	assert.Equal(t, "B7", payload.SeatNumber)
	assert.Equal(t, "Maya Lindqvist", payload.AttendeeName)
}

func TestBookTicketCardPaymentSettlesImmediately(t *testing.T) {
	fx := newBookingFixture(t, testEvent(10))

	resp, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("C1"))
	require.NoError(t, err)

	assert.Equal(t, string(tickets.PaymentCompleted), resp.Ticket.PaymentStatus)
	assert.Regexp(t, `^TXN_\d+_[0-9A-F]{8}$`, resp.Ticket.TransactionID)
}

func TestBookTicketCashStaysPending(t *testing.T) {
	fx := newBookingFixture(t, testEvent(10))

	req := fx.request("C2")
	req.PaymentMethod = string(MethodCash)

	resp, err := fx.service.BookTicket(context.Background(), fx.user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, string(tickets.PaymentPending), resp.Ticket.PaymentStatus)
	assert.Empty(t, resp.Ticket.TransactionID)
}

func TestBookTicketEarlyBirdPricing(t *testing.T) {
	event := testEvent(10)
	earlyPrice := 35.0
	deadline := time.Now().Add(24 * time.Hour)
	event.EarlyBirdPrice = &earlyPrice
	event.EarlyBirdDeadline = &deadline

	fx := newBookingFixture(t, event)

	resp, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("D1"))
	require.NoError(t, err)

	assert.Equal(t, 50.0, resp.Ticket.OriginalPrice)
	assert.Equal(t, 35.0, resp.Ticket.FinalPrice)
	assert.Equal(t, 15.0, resp.Ticket.Discount)
}

func TestBookTicketAfterEarlyBirdDeadline(t *testing.T) {
	event := testEvent(10)
	earlyPrice := 35.0
	deadline := time.Now().Add(-time.Hour)
	event.EarlyBirdPrice = &earlyPrice
	event.EarlyBirdDeadline = &deadline

	fx := newBookingFixture(t, event)

	resp, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("D2"))
	require.NoError(t, err)

	assert.Equal(t, 50.0, resp.Ticket.FinalPrice)
	assert.Equal(t, 0.0, resp.Ticket.Discount)
}

func TestBookTicketAttendeeOverrides(t *testing.T) {
	fx := newBookingFixture(t, testEvent(10))

	req := fx.request("E5")
	req.AttendeeName = "Guest Holder"
	req.AttendeeEmail = "guest@example.com"

	resp, err := fx.service.BookTicket(context.Background(), fx.user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Guest Holder", resp.Ticket.AttendeeName)
	assert.Equal(t, "guest@example.com", resp.Ticket.AttendeeEmail)
}

func TestBookTicketUnpublishedEvent(t *testing.T) {
	event := testEvent(10)
	event.Status = events.StatusDraft

	fx := newBookingFixture(t, event)

	_, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("F1"))
	require.Error(t, err)

	var notBookable *seats.EventNotBookableError
	assert.ErrorAs(t, err, &notBookable)
}

func TestBookTicketStartedEvent(t *testing.T) {
	event := testEvent(10)
	event.StartsAt = time.Now().Add(-time.Hour)

	fx := newBookingFixture(t, event)

	_, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("F2"))
	require.Error(t, err)

	var notBookable *seats.EventNotBookableError
	assert.ErrorAs(t, err, &notBookable)
}

func TestBookTicketSoldOut(t *testing.T) {
	event := testEvent(1)
	fx := newBookingFixture(t, event)

	_, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("G1"))
	require.NoError(t, err)

	_, err = fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("G2"))
	require.Error(t, err)

	var soldOut *seats.SoldOutError
	assert.ErrorAs(t, err, &soldOut)
}

func TestConcurrentBookingSameSeatSingleWinner(t *testing.T) {
	fx := newBookingFixture(t, testEvent(100))

	const contenders = 20
	errs := make([]error, contenders)

	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("H10"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		var seatTaken *seats.SeatTakenError
		assert.ErrorAs(t, err, &seatTaken)
	}
	assert.Equal(t, 1, winners)

	available, sold := fx.ledger.counters()
	assert.Equal(t, 99, available)
	assert.Equal(t, 1, sold)
}

func TestConcurrentBookingSingleSeatEvent(t *testing.T) {
	fx := newBookingFixture(t, testEvent(1))

	const contenders = 10
	errs := make([]error, contenders)

	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seat := string(rune('A'+i)) + "1"
			_, errs[i] = fx.service.BookTicket(context.Background(), fx.user.ID, fx.request(seat))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		var soldOut *seats.SoldOutError
		assert.ErrorAs(t, err, &soldOut)
	}
	assert.Equal(t, 1, winners)

	available, sold := fx.ledger.counters()
	assert.Equal(t, 0, available)
	assert.Equal(t, 1, sold)
}

func TestBookCancelRebookSingleSeatEvent(t *testing.T) {
	fx := newBookingFixture(t, testEvent(1))

	_, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("A1"))
	require.NoError(t, err)

	// Same seat and any other seat are both rejected while held.
	_, err = fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("A1"))
	require.Error(t, err)
	_, err = fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("B1"))
	var soldOut *seats.SoldOutError
	assert.ErrorAs(t, err, &soldOut)

	// Cancellation returns the seat and capacity to the pool.
	fx.ledger.release("A1")

	resp, err := fx.service.BookTicket(context.Background(), fx.user.ID, fx.request("A1"))
	require.NoError(t, err)
	assert.Equal(t, "A1", resp.Ticket.SeatNumber)

	available, sold := fx.ledger.counters()
	assert.Equal(t, 0, available)
	assert.Equal(t, 1, sold)
}

func TestGetTicketOwnership(t *testing.T) {
	fx := newBookingFixture(t, testEvent(10))

	ticket := &tickets.Ticket{
		ID:           uuid.New(),
		TicketNumber: "EVT-20250615-00001",
		EventID:      fx.event.ID,
		UserID:       fx.user.ID,
		SeatNumber:   "A1",
		Status:       tickets.StatusActive,
	}
	fx.store.add(ticket)

	// Owner can read.
	_, err := fx.service.GetTicket(context.Background(), ticket.ID, fx.user.ID, string(users.RoleUser))
	require.NoError(t, err)

	// A different plain user cannot.
	_, err = fx.service.GetTicket(context.Background(), ticket.ID, uuid.New(), string(users.RoleUser))
	assert.True(t, errors.Is(err, ErrNotTicketOwner))

	// Staff can.
	_, err = fx.service.GetTicket(context.Background(), ticket.ID, uuid.New(), string(users.RoleManager))
	require.NoError(t, err)
}

func TestGetTicketNotFound(t *testing.T) {
	fx := newBookingFixture(t, testEvent(10))

	_, err := fx.service.GetTicket(context.Background(), uuid.New(), fx.user.ID, string(users.RoleUser))
	require.Error(t, err)

	var notFound *tickets.TicketNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
