package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventlottery/internal/domain"
)

// lotteryWinMessage is the fixed invitation text fanned out to every drawn
// entrant.
const lotteryWinMessage = "Congratulations! You have been selected in the lottery. Accept your invitation to secure your spot."

type lotteryService struct {
	eventRepo    domain.EventRepository
	listRepo     domain.InvitationListRepository
	userRepo     domain.UserRepository
	emailService domain.EmailService
	sampler      domain.Sampler
	logger       *slog.Logger
}

// NewLotteryService creates a LotteryService. The sampler decides which
// waiting entrants win; injecting it keeps draws reproducible in tests.
func NewLotteryService(
	eventRepo domain.EventRepository,
	listRepo domain.InvitationListRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	sampler domain.Sampler,
	logger *slog.Logger,
) domain.LotteryService {
	return &lotteryService{
		eventRepo:    eventRepo,
		listRepo:     listRepo,
		userRepo:     userRepo,
		emailService: emailService,
		sampler:      sampler,
		logger:       logger,
	}
}

func (s *lotteryService) RunLottery(ctx context.Context, eventID string) (int, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get event: %w", err)
	}

	waiting, err := s.listRepo.ListMembers(ctx, eventID, domain.ListWaiting)
	if err != nil {
		return 0, fmt.Errorf("list waiting entrants: %w", err)
	}
	if len(waiting) == 0 {
		// Nothing to draw: a successful no-op, no notification.
		return 0, nil
	}

	want := event.EntrantsToDraw
	if want < 1 {
		want = 1
	}
	if want > len(waiting) {
		want = len(waiting)
	}

	selected := s.sampler.Pick(waiting, want)

	notification := domain.NewNotification(
		domain.NotificationLotteryWin,
		event.ID,
		event.Name,
		lotteryWinMessage,
		event.Name,
		event.OrganizerID,
		selected,
		time.Now(),
	)
	if err := s.listRepo.PromoteWinners(ctx, eventID, selected, notification); err != nil {
		return 0, fmt.Errorf("promote winners: %w", err)
	}

	s.sendWinnerEmails(ctx, event, selected)

	return len(selected), nil
}

// sendWinnerEmails sends a best-effort email copy of the win notification.
// Email transport failures never fail the draw; the list promotion and the
// in-app notification are already committed.
func (s *lotteryService) sendWinnerEmails(ctx context.Context, event *domain.Event, winners []string) {
	if s.emailService == nil {
		return
	}
	for _, userID := range winners {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			s.logger.Warn("winner email lookup failed", "event_id", event.ID, "user_id", userID, "err", err)
			continue
		}
		data := &domain.NotificationEmailData{
			Email:     user.Email,
			EventName: event.Name,
			Message:   lotteryWinMessage,
			From:      event.Name,
		}
		if err := s.emailService.SendNotificationCopy(ctx, domain.NotificationLotteryWin, data); err != nil {
			s.logger.Warn("winner email send failed", "event_id", event.ID, "user_id", userID, "err", err)
		}
	}
}
