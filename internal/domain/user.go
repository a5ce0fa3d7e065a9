package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User represents a registered user. Rating and RatingCount form the
// organizer's reputation aggregate: a running average of 1-5 ratings and the
// number of ratings folded into it. They default to (0.0, 0) and are mutated
// only by the rating aggregator, under a transaction.
// swagger:model User
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	LastName    string    `json:"last_name"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, name, lastName string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:     email,
		Name:      name,
		LastName:  lastName,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// DisplayName returns the user's full name, falling back to the email when
// no name is set.
func (u *User) DisplayName() string {
	switch {
	case u.Name != "" && u.LastName != "":
		return u.Name + " " + u.LastName
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// GetRating returns the organizer's aggregate. A user with no ratings
	// reports (0.0, 0); a missing user is ErrNotFound.
	GetRating(ctx context.Context, userID string) (rating float64, count int, err error)
	// ApplyRating folds a new rating into the organizer's running average
	// and deletes the triggering rating-request notification, all in one
	// transaction. The numeric update is read-dependent and non-commutative,
	// so a lost update here would silently corrupt the average.
	ApplyRating(ctx context.Context, organizerID string, rating float64, notificationID string) error
}

// LoginCodeRepository defines the interface for one-time login code storage.
type LoginCodeRepository interface {
	Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	Consume(ctx context.Context, email, codeHash string) (consumed bool, err error)
}

// UserService defines passwordless authentication and profile lookup.
type UserService interface {
	RequestLoginCode(ctx context.Context, email string) error
	VerifyLoginCode(ctx context.Context, email, code string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// RatingService folds post-event ratings into organizer reputation and
// issues rating-request notifications once an event has ended.
type RatingService interface {
	// SubmitRating applies a 1-5 rating to the organizer's aggregate and
	// consumes the triggering rating-request notification atomically.
	SubmitRating(ctx context.Context, organizerID string, rating float64, notificationID string) error
	// FetchRating returns the organizer's current average, 0.0 when no
	// rating has been recorded. It never errors for a missing aggregate.
	FetchRating(ctx context.Context, organizerID string) (float64, error)
	// SendRatingRequests creates one rating-request notification addressed
	// to the event's final entrants, once the event has ended. An event
	// still in progress and an empty final list are both graceful no-ops.
	SendRatingRequests(ctx context.Context, eventID string) error
}
