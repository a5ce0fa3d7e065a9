package services

import (
	"context"
	"fmt"
	"time"

	"eventlottery/internal/domain"
)

type notificationService struct {
	notificationRepo domain.NotificationRepository
}

// NewNotificationService creates the notification fan-out service.
func NewNotificationService(notificationRepo domain.NotificationRepository) domain.NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Create(ctx context.Context, t domain.NotificationType, eventID, eventName, message, from, fromID string, recipients []string) (*domain.Notification, error) {
	if !t.Valid() {
		return nil, domain.ErrInvalidInput
	}
	n := domain.NewNotification(t, eventID, eventName, message, from, fromID, recipients, time.Now())
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (s *notificationService) PruneRecipient(ctx context.Context, eventID string, t domain.NotificationType, userID string) error {
	if err := s.notificationRepo.RemoveRecipient(ctx, eventID, t, userID); err != nil {
		return fmt.Errorf("prune recipient: %w", err)
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, id string) error {
	return s.notificationRepo.Delete(ctx, id)
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Notification, int, error) {
	notifications, total, err := s.notificationRepo.ListByRecipient(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, total, nil
}
