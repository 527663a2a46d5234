package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeMessageEmailData holds data for the welcome email.
type WelcomeMessageEmailData struct {
	Email     string
	FirstName string
}

// EventCompletedEmailData holds data for the thank-you email sent after an event is completed.
type EventCompletedEmailData struct {
	Email       string
	FirstName   string
	EventTitle  string
	Hours       float64
	TotalEvents int
	TotalHours  float64
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendEventCompleted(ctx context.Context, data *EventCompletedEmailData) error
}
