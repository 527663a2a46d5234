package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"volunteerhub/internal/domain"
)

type eventRepository struct {
	col *mongo.Collection
}

// NewEventRepository returns an EventRepository backed by the given collection.
func NewEventRepository(col *mongo.Collection) domain.EventRepository {
	return &eventRepository{col: col}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	doc, err := newEventDoc(e)
	if err != nil {
		return fmt.Errorf("event roster: %w", err)
	}
	doc.Completed = false
	doc.CompletedDate = nil
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid.Hex()
	}
	e.Completed = false
	e.CompletedDate = nil
	if e.RegisteredVolunteers == nil {
		e.RegisteredVolunteers = []string{}
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	var doc eventDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateEventErr(err)
	}
	return doc.toDomain(), nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return r.find(ctx, bson.M{})
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	oids := validObjectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Event{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *eventRepository) find(ctx context.Context, filter bson.M) ([]*domain.Event, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	var docs []eventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	events := make([]*domain.Event, 0, len(docs))
	for i := range docs {
		events = append(events, docs[i].toDomain())
	}
	return events, nil
}

func (r *eventRepository) AddVolunteer(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	return r.updateRoster(ctx, eventID, userID, "$addToSet")
}

func (r *eventRepository) RemoveVolunteer(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	return r.updateRoster(ctx, eventID, userID, "$pull")
}

func (r *eventRepository) updateRoster(ctx context.Context, eventID, userID, op string) (*domain.Event, error) {
	eid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOneAndUpdate(ctx, eid, bson.M{op: bson.M{"registeredVolunteers": uid}})
}

func (r *eventRepository) MarkCompleted(ctx context.Context, eventID string, at time.Time) (*domain.Event, error) {
	eid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	return r.findOneAndUpdate(ctx, eid, bson.M{"$set": bson.M{"completed": true, "completedDate": at.UTC()}})
}

func (r *eventRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*domain.Event, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc eventDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		return nil, translateEventErr(err)
	}
	return doc.toDomain(), nil
}

func translateEventErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrEventNotFound
	}
	return fmt.Errorf("event query: %w", err)
}
