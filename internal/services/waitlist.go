package services

import (
	"context"
	"errors"
	"fmt"

	"eventlottery/internal/domain"
)

type waitlistService struct {
	eventRepo domain.EventRepository
}

// NewWaitlistService creates a WaitlistService backed by the event repository.
func NewWaitlistService(eventRepo domain.EventRepository) domain.WaitlistService {
	return &waitlistService{eventRepo: eventRepo}
}

func (s *waitlistService) Join(ctx context.Context, eventID, userID string, lat, lng *float64) error {
	// Ensure the event exists; joining a missing event is NotFound, not a
	// silent insert against a dangling id.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	// The underlying write is a set union, so a second join for the same
	// user leaves membership identical to the first.
	if err := s.eventRepo.AddToWaitlist(ctx, eventID, userID, lat, lng); err != nil {
		return fmt.Errorf("add to waitlist: %w", err)
	}
	return nil
}

func (s *waitlistService) Leave(ctx context.Context, eventID, userID string) error {
	// Set difference: leaving while absent removes nothing and succeeds.
	if err := s.eventRepo.RemoveFromWaitlist(ctx, eventID, userID); err != nil {
		return fmt.Errorf("remove from waitlist: %w", err)
	}
	return nil
}
