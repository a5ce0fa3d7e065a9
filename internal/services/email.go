package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventlottery/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendLoginCode sends the passwordless login code email using the "login_code" template.
func (s *emailService) SendLoginCode(ctx context.Context, data *domain.LoginCodeEmailData) error {
	if data == nil {
		return fmt.Errorf("login code email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("login_code", data)
	if err != nil {
		return fmt.Errorf("failed to render login_code template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send login code email: %w", err)
	}
	s.logger.Info("login code email sent", "email", data.Email)
	return nil
}

// SendNotificationCopy sends the email copy of a lottery-win or
// rating-request notification using the template named after the type.
func (s *emailService) SendNotificationCopy(ctx context.Context, t domain.NotificationType, data *domain.NotificationEmailData) error {
	if data == nil {
		return fmt.Errorf("notification email data is nil")
	}
	var templateName string
	switch t {
	case domain.NotificationLotteryWin:
		templateName = "lottery_win"
	case domain.NotificationRatingRequest:
		templateName = "rating_request"
	default:
		return fmt.Errorf("no email template for notification type %q", t)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.Info("notification email sent", "type", t, "email", data.Email)
	return nil
}
