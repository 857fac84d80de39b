package seats

import (
	"context"
	"fmt"
	"time"

	"ticketly/internal/tickets"
	"ticketly/pkg/cache"

	"github.com/google/uuid"
)

// Service exposes the seat ledger to coordinators and the HTTP layer. Stats
// reads are cache-aside with a short TTL; every mutation invalidates the
// cached entry so callers never observe counters stale across a booking.
type Service interface {
	ReserveAndCreate(ctx context.Context, ticket *tickets.Ticket) error
	ReleaseAndCancel(ctx context.Context, ticketID uuid.UUID) (*tickets.Ticket, error)
	GetSeatStats(ctx context.Context, eventID uuid.UUID) (*SeatStats, error)
	GetOccupiedSeats(ctx context.Context, eventID uuid.UUID) ([]SeatInfo, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	statsTTL time.Duration
}

// NewService creates a seat ledger service. The cache may be nil, in which
// case stats reads always hit the database.
func NewService(repo Repository, cacheService cache.Service, statsTTL time.Duration) Service {
	if statsTTL <= 0 {
		statsTTL = 30 * time.Second
	}
	return &service{
		repo:     repo,
		cache:    cacheService,
		statsTTL: statsTTL,
	}
}

func statsCacheKey(eventID uuid.UUID) string {
	return fmt.Sprintf("ticketly:seatstats:%s", eventID)
}

func (s *service) ReserveAndCreate(ctx context.Context, ticket *tickets.Ticket) error {
	if err := s.repo.ReserveAndCreate(ctx, ticket); err != nil {
		return err
	}
	s.invalidateStats(ctx, ticket.EventID)
	return nil
}

func (s *service) ReleaseAndCancel(ctx context.Context, ticketID uuid.UUID) (*tickets.Ticket, error) {
	ticket, err := s.repo.ReleaseAndCancel(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, ticket.EventID)
	return ticket, nil
}

func (s *service) GetSeatStats(ctx context.Context, eventID uuid.UUID) (*SeatStats, error) {
	if s.cache == nil {
		return s.repo.GetSeatStats(ctx, eventID)
	}

	var stats SeatStats
	err := s.cache.GetOrSet(ctx, statsCacheKey(eventID), s.statsTTL, func() (interface{}, error) {
		return s.repo.GetSeatStats(ctx, eventID)
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *service) GetOccupiedSeats(ctx context.Context, eventID uuid.UUID) ([]SeatInfo, error) {
	return s.repo.GetOccupiedSeats(ctx, eventID)
}

func (s *service) invalidateStats(ctx context.Context, eventID uuid.UUID) {
	if s.cache == nil {
		return
	}
	// Best effort: a stale entry expires within the TTL anyway.
	_ = s.cache.Delete(ctx, statsCacheKey(eventID))
}
