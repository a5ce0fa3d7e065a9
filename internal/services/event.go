package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventlottery/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repository and a
// per-call timeout for network-bound operations.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OrganizerID == "" {
		return fmt.Errorf("%w: event organizer is required", domain.ErrInvalidInput)
	}
	if event.Name == "" {
		return fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	if event.Capacity < 0 || event.EntrantsToDraw < 0 {
		return fmt.Errorf("%w: capacity and entrants_to_draw must not be negative", domain.ErrInvalidInput)
	}
	if event.EndTime.Before(event.StartTime) {
		return fmt.Errorf("%w: end_time must not precede start_time", domain.ErrInvalidInput)
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}
