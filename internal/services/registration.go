package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"volunteerhub/internal/domain"
)

// DefaultWriteTimeout bounds each write issued after the first phase has committed.
const DefaultWriteTimeout = 5 * time.Second

// detach returns a context that keeps the caller's values but not its cancellation.
// Writes that follow a committed phase run on it so a client disconnect cannot strand them.
func detach(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

type registrationService struct {
	users        domain.UserRepository
	events       domain.EventRepository
	logger       *slog.Logger
	writeTimeout time.Duration
}

// NewRegistrationService returns the coordinator that keeps event rosters and
// users' attending sets in step. The event roster is written first and is authoritative.
func NewRegistrationService(users domain.UserRepository, events domain.EventRepository, logger *slog.Logger, writeTimeout time.Duration) domain.RegistrationService {
	return &registrationService{users: users, events: events, logger: logger, writeTimeout: writeTimeout}
}

func (s *registrationService) Register(ctx context.Context, userID, eventID string) (*domain.Event, error) {
	e, err := s.precheck(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if e.HasVolunteer(userID) {
		return nil, domain.ErrAlreadyRegistered
	}

	updated, err := s.events.AddVolunteer(ctx, eventID, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "register: add volunteer failed", "user_id", userID, "event_id", eventID, "err", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRegisterFailed, err)
	}

	wctx, cancel := detach(ctx, s.writeTimeout)
	defer cancel()
	if err := s.users.AddAttending(wctx, userID, eventID); err != nil {
		s.logger.ErrorContext(ctx, "register: add attending failed, compensating", "user_id", userID, "event_id", eventID, "err", err)
		if _, cerr := s.events.RemoveVolunteer(wctx, eventID, userID); cerr != nil {
			s.logInconsistency(ctx, "register", userID, eventID, err, cerr)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrRegisterFailed, err)
	}
	s.logger.InfoContext(ctx, "user registered for event", "user_id", userID, "event_id", eventID)
	return updated, nil
}

func (s *registrationService) Unregister(ctx context.Context, userID, eventID string) (*domain.Event, error) {
	e, err := s.precheck(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if !e.HasVolunteer(userID) {
		return nil, domain.ErrNotRegistered
	}

	updated, err := s.events.RemoveVolunteer(ctx, eventID, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "unregister: remove volunteer failed", "user_id", userID, "event_id", eventID, "err", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUnregisterFailed, err)
	}

	wctx, cancel := detach(ctx, s.writeTimeout)
	defer cancel()
	if err := s.users.RemoveAttending(wctx, userID, eventID); err != nil {
		s.logger.ErrorContext(ctx, "unregister: remove attending failed, compensating", "user_id", userID, "event_id", eventID, "err", err)
		if _, cerr := s.events.AddVolunteer(wctx, eventID, userID); cerr != nil {
			s.logInconsistency(ctx, "unregister", userID, eventID, err, cerr)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnregisterFailed, err)
	}
	s.logger.InfoContext(ctx, "user unregistered from event", "user_id", userID, "event_id", eventID)
	return updated, nil
}

// precheck loads the event after confirming the user exists, and refuses completed events.
func (s *registrationService) precheck(ctx context.Context, userID, eventID string) (*domain.Event, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Completed {
		return nil, domain.ErrEventCompleted
	}
	return e, nil
}

func (s *registrationService) logInconsistency(ctx context.Context, op, userID, eventID string, phaseErr, compensateErr error) {
	s.logger.ErrorContext(ctx, "inconsistency",
		"op", op,
		"phase", "compensate",
		"user_id", userID,
		"event_id", eventID,
		"err", phaseErr,
		"compensate_err", compensateErr,
	)
}
