package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"volunteerhub/internal/domain"
)

type completionService struct {
	users        domain.UserRepository
	events       domain.EventRepository
	emails       domain.EmailService
	logger       *slog.Logger
	now          func() time.Time
	writeTimeout time.Duration
}

// CompletionOption configures the completion coordinator.
type CompletionOption func(*completionService)

// WithCompletionEmails sends a thank-you mail to every credited attendee.
func WithCompletionEmails(emails domain.EmailService) CompletionOption {
	return func(s *completionService) { s.emails = emails }
}

// WithClock overrides the clock used for completedDate.
func WithClock(now func() time.Time) CompletionOption {
	return func(s *completionService) { s.now = now }
}

// WithWriteTimeout bounds each write of the fan-out.
func WithWriteTimeout(d time.Duration) CompletionOption {
	return func(s *completionService) { s.writeTimeout = d }
}

// NewCompletionService returns the coordinator that completes an event and credits its roster.
func NewCompletionService(users domain.UserRepository, events domain.EventRepository, logger *slog.Logger, opts ...CompletionOption) domain.CompletionService {
	s := &completionService{
		users:        users,
		events:       events,
		logger:       logger,
		now:          time.Now,
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *completionService) Complete(ctx context.Context, actor *domain.User, eventID string) (*domain.CompletionResult, error) {
	if actor == nil || !actor.Role.CanManageEvents() {
		return nil, domain.ErrForbidden
	}
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Completed {
		return nil, domain.ErrAlreadyCompleted
	}
	hours, err := e.Duration()
	if err != nil {
		return nil, fmt.Errorf("%w: duration: %w", domain.ErrCompleteFailed, err)
	}
	if hours <= 0 {
		s.logger.WarnContext(ctx, "completing event with non-positive duration",
			"event_id", eventID, "start_time", e.StartTime, "end_time", e.EndTime, "hours", hours)
	}

	roster := slices.Clone(e.RegisteredVolunteers)
	credited := make([]*domain.User, 0, len(roster))
	for _, userID := range roster {
		u, err := s.transfer(ctx, userID, eventID, hours)
		if err != nil {
			s.logger.ErrorContext(ctx, "complete: credit attendee failed",
				"event_id", eventID, "user_id", userID, "err", err)
			continue
		}
		credited = append(credited, u)
	}

	wctx, cancel := detach(ctx, s.writeTimeout)
	defer cancel()
	done, err := s.events.MarkCompleted(wctx, eventID, s.now())
	if err != nil {
		s.logger.ErrorContext(ctx, "complete: mark completed failed",
			"event_id", eventID, "volunteers_updated", len(credited), "err", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrCompleteFailed, err)
	}

	s.logger.InfoContext(ctx, "event completed",
		"event_id", eventID, "hours", hours,
		"volunteers_updated", len(credited), "total_volunteers", len(roster))
	s.notify(ctx, done, hours, credited)

	return &domain.CompletionResult{
		Event:             done,
		VolunteersUpdated: len(credited),
		TotalVolunteers:   len(roster),
	}, nil
}

func (s *completionService) transfer(ctx context.Context, userID, eventID string, hours float64) (*domain.User, error) {
	wctx, cancel := detach(ctx, s.writeTimeout)
	defer cancel()
	return s.users.TransferAttendingToAttended(wctx, userID, eventID, hours)
}

func (s *completionService) notify(ctx context.Context, e *domain.Event, hours float64, credited []*domain.User) {
	if s.emails == nil {
		return
	}
	for _, u := range credited {
		data := &domain.EventCompletedEmailData{
			Email:       u.Email,
			FirstName:   u.FirstName,
			EventTitle:  e.Title,
			Hours:       hours,
			TotalEvents: u.TotalEvents,
			TotalHours:  u.TotalHours,
		}
		wctx, cancel := detach(ctx, s.writeTimeout)
		if err := s.emails.SendEventCompleted(wctx, data); err != nil {
			s.logger.WarnContext(ctx, "completion email failed", "event_id", e.ID, "user_id", u.ID, "err", err)
		}
		cancel()
	}
}
