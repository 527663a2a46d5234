package domain

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Location is where an event takes place. All fields are required.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// Event represents a volunteer event.
// swagger:model Event
type Event struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Date                 time.Time  `json:"date"`
	Location             Location   `json:"location"`
	StartTime            string     `json:"startTime"`
	EndTime              string     `json:"endTime"`
	RegisteredVolunteers []string   `json:"registeredVolunteers"`
	Completed            bool       `json:"completed"`
	CompletedDate        *time.Time `json:"completedDate"`
	CreatedBy            string     `json:"createdBy,omitempty"`
}

// NewEvent returns an event with an empty roster that is not completed.
// ID is set by the repository on create.
func NewEvent(title, description string, date time.Time, loc Location, startTime, endTime, createdBy string) *Event {
	return &Event{
		Title:                title,
		Description:          description,
		Date:                 date,
		Location:             loc,
		StartTime:            startTime,
		EndTime:              endTime,
		RegisteredVolunteers: []string{},
		CreatedBy:            createdBy,
	}
}

// HasVolunteer reports whether userID is on the event roster.
func (e *Event) HasVolunteer(userID string) bool {
	return slices.Contains(e.RegisteredVolunteers, userID)
}

// Duration returns the event length in hours rounded to two decimals.
// A reversed time pair yields a negative value; callers decide what to do with it.
func (e *Event) Duration() (float64, error) {
	return EventDuration(e.StartTime, e.EndTime)
}

// EventDetail is an event whose roster is expanded to attendee projections.
// swagger:model EventDetail
type EventDetail struct {
	*Event
	RegisteredVolunteers []*Attendee `json:"registeredVolunteers"`
}

// CompletionResult reports the outcome of completing an event.
// swagger:model CompletionResult
type CompletionResult struct {
	Event             *Event `json:"event"`
	VolunteersUpdated int    `json:"volunteersUpdated"`
	TotalVolunteers   int    `json:"totalVolunteers"`
}

// ParseClock converts an "HH:MM" 24-hour wall-clock string to minutes after midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// EventDuration returns (end - start) in hours, rounded to two decimals.
func EventDuration(startTime, endTime string) (float64, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return 0, err
	}
	return RoundHours(float64(end-start) / 60), nil
}

// RoundHours rounds h to two decimals, the precision hours are reported in.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// EventRepository defines event storage. Roster mutations are single-document atomic set operations.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Event, error)
	AddVolunteer(ctx context.Context, eventID, userID string) (*Event, error)
	RemoveVolunteer(ctx context.Context, eventID, userID string) (*Event, error)
	// MarkCompleted sets completed and completedDate. Repeating it is not an error at this layer.
	MarkCompleted(ctx context.Context, eventID string, at time.Time) (*Event, error)
}

// CreateEventInput carries the fields an admin supplies for a new event.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    Location
	StartTime   string
	EndTime     string
}

// EventService defines event creation and read operations.
type EventService interface {
	Create(ctx context.Context, actor *User, in CreateEventInput) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	GetDetail(ctx context.Context, id string) (*EventDetail, error)
}

// RegistrationService keeps user.eventsAttending and event.registeredVolunteers in step.
type RegistrationService interface {
	Register(ctx context.Context, userID, eventID string) (*Event, error)
	Unregister(ctx context.Context, userID, eventID string) (*Event, error)
}

// CompletionService completes an event and credits its attendees.
type CompletionService interface {
	Complete(ctx context.Context, actor *User, eventID string) (*CompletionResult, error)
}

// ParseEventDate accepts an RFC 3339 timestamp or a YYYY-MM-DD calendar day (UTC midnight).
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: date %q, use RFC3339 or YYYY-MM-DD", ErrInvalidInput, s)
}
