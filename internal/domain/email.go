package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// LoginCodeEmailData holds data for the passwordless login code email.
type LoginCodeEmailData struct {
	Email            string
	Code             string
	ExpiresInMinutes int
}

// NotificationEmailData holds data for the email copy of an in-app
// notification (lottery win, rating request).
type NotificationEmailData struct {
	Email     string
	EventName string
	Message   string
	From      string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendLoginCode(ctx context.Context, data *LoginCodeEmailData) error
	// SendNotificationCopy sends an email copy of a notification. Delivery
	// is best-effort; callers log failures and continue.
	SendNotificationCopy(ctx context.Context, t NotificationType, data *NotificationEmailData) error
}
