package services

import (
	"context"
	"fmt"
	"strings"

	"volunteerhub/internal/domain"
)

type eventService struct {
	events domain.EventRepository
	users  domain.UserRepository
}

// NewEventService returns an EventService for creating and reading events.
func NewEventService(events domain.EventRepository, users domain.UserRepository) domain.EventService {
	return &eventService{events: events, users: users}
}

func (s *eventService) Create(ctx context.Context, actor *domain.User, in domain.CreateEventInput) (*domain.Event, error) {
	if actor == nil || !actor.Role.CanManageEvents() {
		return nil, domain.ErrForbidden
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}
	e := domain.NewEvent(in.Title, in.Description, in.Date, in.Location, in.StartTime, in.EndTime, actor.ID)
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

func validateEventInput(in domain.CreateEventInput) error {
	required := []struct{ name, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"startTime", in.StartTime},
		{"endTime", in.EndTime},
		{"location.country", in.Location.Country},
		{"location.city", in.Location.City},
		{"location.address", in.Location.Address},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if in.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(missing, ", "))
	}

	start, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", domain.ErrInvalidInput, err)
	}
	end, err := domain.ParseClock(in.EndTime)
	if err != nil {
		return fmt.Errorf("%w: endTime: %v", domain.ErrInvalidInput, err)
	}
	if end <= start {
		return fmt.Errorf("%w: endTime must be after startTime", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.ListAll(ctx)
}

// GetDetail returns the event with its roster expanded to attendee projections, in roster order.
// Roster ids that no longer resolve to a user are left out.
func (s *eventService) GetDetail(ctx context.Context, id string) (*domain.EventDetail, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	attendees, err := s.users.ListByIDs(ctx, e.RegisteredVolunteers)
	if err != nil {
		return nil, fmt.Errorf("load attendees: %w", err)
	}
	byID := make(map[string]*domain.Attendee, len(attendees))
	for _, a := range attendees {
		byID[a.ID] = a
	}
	ordered := make([]*domain.Attendee, 0, len(attendees))
	for _, uid := range e.RegisteredVolunteers {
		if a, ok := byID[uid]; ok {
			ordered = append(ordered, a)
			delete(byID, uid)
		}
	}
	return &domain.EventDetail{Event: e, RegisteredVolunteers: ordered}, nil
}
