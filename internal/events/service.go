package events

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	CreateEvent(ctx context.Context, creatorID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateEvent(ctx context.Context, creatorID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("event end must be after start")
	}
	if req.EarlyBirdPrice != nil {
		if req.EarlyBirdDeadline == nil {
			return nil, fmt.Errorf("early bird price requires a deadline")
		}
		if *req.EarlyBirdPrice > req.TicketPrice {
			return nil, fmt.Errorf("early bird price cannot exceed ticket price")
		}
	}

	event := &Event{
		Name:              req.Name,
		Description:       req.Description,
		Venue:             req.Venue,
		StartsAt:          req.StartsAt,
		EndsAt:            req.EndsAt,
		TotalSeats:        req.TotalSeats,
		AvailableSeats:    req.TotalSeats,
		SoldSeats:         0,
		TicketPrice:       req.TicketPrice,
		EarlyBirdPrice:    req.EarlyBirdPrice,
		EarlyBirdDeadline: req.EarlyBirdDeadline,
		Status:            StatusDraft,
		CreatedBy:         creatorID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	updates := map[string]interface{}{
		"updated_by": actorID,
		"updated_at": time.Now(),
	}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if req.TicketPrice != nil {
		updates["ticket_price"] = *req.TicketPrice
	}
	if req.EarlyBirdPrice != nil {
		updates["early_bird_price"] = *req.EarlyBirdPrice
	}
	if req.EarlyBirdDeadline != nil {
		updates["early_bird_deadline"] = *req.EarlyBirdDeadline
	}
	if req.Status != nil {
		status := EventStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid event status: %s", *req.Status)
		}
		updates["status"] = status
	}

	// Capacity is deliberately not updatable here: total_seats is owned by the
	// seat ledger invariant once tickets exist.
	event, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.SoldSeats > 0 {
		return fmt.Errorf("cannot delete event with sold tickets")
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	events, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].ToResponse())
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	events, err := s.repo.GetUpcoming(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].ToResponse())
	}
	return responses, nil
}
