package services

import (
	"context"
	"time"

	"volunteerhub/internal/domain"
)

type userService struct {
	users  domain.UserRepository
	events domain.EventRepository
}

// NewUserService returns a UserService for profile edits and per-user event listings.
func NewUserService(users domain.UserRepository, events domain.EventRepository) domain.UserService {
	return &userService{users: users, events: events}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	if upd.Empty() {
		return nil, domain.ErrNoFields
	}
	return s.users.UpdateProfile(ctx, id, upd)
}

// ListAttending returns the events in the user's attending set.
func (s *userService) ListAttending(ctx context.Context, userID string) ([]*domain.Event, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.events.ListByIDs(ctx, u.EventsAttending)
}

// ListPast returns the events in the user's attended set dated before now.
func (s *userService) ListPast(ctx context.Context, userID string, now time.Time) ([]*domain.Event, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListByIDs(ctx, u.EventsAttended)
	if err != nil {
		return nil, err
	}
	past := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e.Date.Before(now) {
			past = append(past, e)
		}
	}
	return past, nil
}
