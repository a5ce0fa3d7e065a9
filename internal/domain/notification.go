package domain

import (
	"context"
	"time"
)

// NotificationType distinguishes the notification documents the system
// creates.
type NotificationType string

const (
	NotificationLotteryWin    NotificationType = "lottery_win"
	NotificationRatingRequest NotificationType = "rating_request"
	NotificationCustom        NotificationType = "custom"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLotteryWin, NotificationRatingRequest, NotificationCustom:
		return true
	}
	return false
}

// Notification is a single message document addressed to multiple recipient
// ids. Recipients is append-only except for admin deletion of the whole
// document and pruning of a single user id on invitation revoke.
type Notification struct {
	ID         string           `json:"id"`
	Type       NotificationType `json:"type"`
	EventID    string           `json:"event_id"`
	EventName  string           `json:"event_name"`
	Message    string           `json:"message"`
	From       string           `json:"from"`
	FromID     string           `json:"from_id"`
	Recipients []string         `json:"recipients"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewNotification returns a new Notification. ID is typically set by the repository on create.
func NewNotification(t NotificationType, eventID, eventName, message, from, fromID string, recipients []string, createdAt time.Time) *Notification {
	return &Notification{
		Type:       t,
		EventID:    eventID,
		EventName:  eventName,
		Message:    message,
		From:       from,
		FromID:     fromID,
		Recipients: recipients,
		CreatedAt:  createdAt,
	}
}

// NotificationRepository defines storage operations for notification
// documents and their recipient sets.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	// RemoveRecipient removes the user from the recipients of every
	// notification of the given type for the event. The notification
	// documents are kept even when their recipient set becomes empty.
	RemoveRecipient(ctx context.Context, eventID string, t NotificationType, userID string) error
	Delete(ctx context.Context, id string) error
	ListByRecipient(ctx context.Context, userID string, p PaginationParams) ([]*Notification, int, error)
}

// NotificationService is the fan-out surface: creating, listing, and
// deleting recipient-addressed notifications.
type NotificationService interface {
	Create(ctx context.Context, t NotificationType, eventID, eventName, message, from, fromID string, recipients []string) (*Notification, error)
	// PruneRecipient removes the user from every matching notification's
	// recipient list without deleting any notification.
	PruneRecipient(ctx context.Context, eventID string, t NotificationType, userID string) error
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string, p PaginationParams) ([]*Notification, int, error)
}
