package services

import (
	"context"
	"fmt"
	"log/slog"

	"volunteerhub/internal/domain"
)

const (
	welcomeTemplate        = "welcome"
	eventCompletedTemplate = "event_completed"
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

// SendWelcomeMessage sends a welcome email using the "welcome" template and the given data.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	if err := s.send(ctx, welcomeTemplate, data.Email, data); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	s.logger.InfoContext(ctx, "welcome email sent", "to", data.Email)
	return nil
}

// SendEventCompleted thanks an attendee after an event they volunteered at is completed.
func (s *emailService) SendEventCompleted(ctx context.Context, data *domain.EventCompletedEmailData) error {
	if data == nil {
		return fmt.Errorf("event completed email data is nil")
	}
	if err := s.send(ctx, eventCompletedTemplate, data.Email, data); err != nil {
		return fmt.Errorf("failed to send event completed email: %w", err)
	}
	s.logger.InfoContext(ctx, "event completed email sent", "to", data.Email, "event", data.EventTitle)
	return nil
}

func (s *emailService) send(ctx context.Context, template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("render %s template: %w", template, err)
	}
	return s.mailer.Send(ctx, to, subject, htmlBody, textBody)
}
