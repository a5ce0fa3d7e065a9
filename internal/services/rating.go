package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventlottery/internal/domain"
)

// ratingRequestMessage is the fixed text of the post-event rating request.
const ratingRequestMessage = "The event has ended. Please rate your experience with the organizer."

type ratingService struct {
	userRepo            domain.UserRepository
	eventRepo           domain.EventRepository
	listRepo            domain.InvitationListRepository
	notificationService domain.NotificationService
	emailService        domain.EmailService
	now                 func() time.Time
	logger              *slog.Logger
}

// NewRatingService creates a RatingService. now is injectable so the
// end-of-event gate is testable; pass nil for time.Now.
func NewRatingService(
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	listRepo domain.InvitationListRepository,
	notificationService domain.NotificationService,
	emailService domain.EmailService,
	now func() time.Time,
	logger *slog.Logger,
) domain.RatingService {
	if now == nil {
		now = time.Now
	}
	return &ratingService{
		userRepo:            userRepo,
		eventRepo:           eventRepo,
		listRepo:            listRepo,
		notificationService: notificationService,
		emailService:        emailService,
		now:                 now,
		logger:              logger,
	}
}

func (s *ratingService) SubmitRating(ctx context.Context, organizerID string, rating float64, notificationID string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	// The repository folds the average, bumps the count, and consumes the
	// notification in one transaction. The update is read-dependent, so it
	// must not be retried blindly on timeout.
	if err := s.userRepo.ApplyRating(ctx, organizerID, rating, notificationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("apply rating: %w", err)
	}
	return nil
}

func (s *ratingService) FetchRating(ctx context.Context, organizerID string) (float64, error) {
	rating, _, err := s.userRepo.GetRating(ctx, organizerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// No aggregate yet: report the default, not an error.
			return 0, nil
		}
		return 0, fmt.Errorf("get rating: %w", err)
	}
	return rating, nil
}

func (s *ratingService) SendRatingRequests(ctx context.Context, eventID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.EndTime.After(s.now()) {
		// The event simply hasn't ended yet; success with no effect.
		return nil
	}

	finalists, err := s.listRepo.ListMembers(ctx, eventID, domain.ListFinal)
	if err != nil {
		return fmt.Errorf("list final entrants: %w", err)
	}
	if len(finalists) == 0 {
		return nil
	}

	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		return fmt.Errorf("get organizer: %w", err)
	}

	if _, err := s.notificationService.Create(ctx,
		domain.NotificationRatingRequest,
		event.ID,
		event.Name,
		ratingRequestMessage,
		organizer.DisplayName(),
		organizer.ID,
		finalists,
	); err != nil {
		return fmt.Errorf("create rating request: %w", err)
	}

	s.sendRatingRequestEmails(ctx, event, organizer, finalists)

	return nil
}

func (s *ratingService) sendRatingRequestEmails(ctx context.Context, event *domain.Event, organizer *domain.User, finalists []string) {
	if s.emailService == nil {
		return
	}
	for _, userID := range finalists {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			s.logger.Warn("rating request email lookup failed", "event_id", event.ID, "user_id", userID, "err", err)
			continue
		}
		data := &domain.NotificationEmailData{
			Email:     user.Email,
			EventName: event.Name,
			Message:   ratingRequestMessage,
			From:      organizer.DisplayName(),
		}
		if err := s.emailService.SendNotificationCopy(ctx, domain.NotificationRatingRequest, data); err != nil {
			s.logger.Warn("rating request email send failed", "event_id", event.ID, "user_id", userID, "err", err)
		}
	}
}
