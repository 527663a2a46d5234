package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"volunteerhub/internal/domain"
)

type userDoc struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	Type            string               `bson:"type"`
	Email           string               `bson:"email"`
	Password        string               `bson:"password,omitempty"`
	Salt            string               `bson:"salt,omitempty"`
	FirstName       string               `bson:"firstName"`
	LastName        string               `bson:"lastName"`
	TotalEvents     int                  `bson:"totalEvents"`
	TotalHours      float64              `bson:"totalHours"`
	EventsAttended  []primitive.ObjectID `bson:"eventsAttended"`
	EventsAttending []primitive.ObjectID `bson:"eventsAttending"`
}

func (d *userDoc) toDomain() *domain.User {
	role := domain.Role(d.Type)
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{
		ID:              d.ID.Hex(),
		Role:            role,
		Email:           d.Email,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		TotalEvents:     d.TotalEvents,
		TotalHours:      domain.RoundHours(d.TotalHours),
		EventsAttended:  hexIDs(d.EventsAttended),
		EventsAttending: hexIDs(d.EventsAttending),
	}
}

func (d *userDoc) toAttendee() *domain.Attendee {
	return &domain.Attendee{ID: d.ID.Hex(), FirstName: d.FirstName, LastName: d.LastName}
}

type locationDoc struct {
	Country string `bson:"country"`
	City    string `bson:"city"`
	Address string `bson:"address"`
}

type eventDoc struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty"`
	Title                string               `bson:"title"`
	Description          string               `bson:"description"`
	Date                 time.Time            `bson:"date"`
	Location             locationDoc          `bson:"location"`
	StartTime            string               `bson:"startTime"`
	EndTime              string               `bson:"endTime"`
	RegisteredVolunteers []primitive.ObjectID `bson:"registeredVolunteers"`
	Completed            bool                 `bson:"completed"`
	CompletedDate        *time.Time           `bson:"completedDate,omitempty"`
	CreatedBy            string               `bson:"createdBy,omitempty"`
}

func newEventDoc(e *domain.Event) (*eventDoc, error) {
	roster, err := objectIDs(e.RegisteredVolunteers)
	if err != nil {
		return nil, err
	}
	return &eventDoc{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location: locationDoc{
			Country: e.Location.Country,
			City:    e.Location.City,
			Address: e.Location.Address,
		},
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		RegisteredVolunteers: roster,
		Completed:            e.Completed,
		CompletedDate:        e.CompletedDate,
		CreatedBy:            e.CreatedBy,
	}, nil
}

func (d *eventDoc) toDomain() *domain.Event {
	var completedDate *time.Time
	if d.CompletedDate != nil {
		t := d.CompletedDate.UTC()
		completedDate = &t
	}
	return &domain.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date.UTC(),
		Location: domain.Location{
			Country: d.Location.Country,
			City:    d.Location.City,
			Address: d.Location.Address,
		},
		StartTime:            d.StartTime,
		EndTime:              d.EndTime,
		RegisteredVolunteers: hexIDs(d.RegisteredVolunteers),
		Completed:            d.Completed,
		CompletedDate:        completedDate,
		CreatedBy:            d.CreatedBy,
	}
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

func objectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, s := range ids {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}
