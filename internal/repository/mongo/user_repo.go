package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"volunteerhub/internal/domain"
)

// userProjection keeps credentials out of every read except GetCredentials.
var userProjection = bson.D{{Key: "password", Value: 0}, {Key: "salt", Value: 0}}

type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns a UserRepository backed by the given collection.
func NewUserRepository(col *mongo.Collection) domain.UserRepository {
	return &userRepository{col: col}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User, passwordHash, salt string) error {
	doc := userDoc{
		Type:            string(u.Role),
		Email:           u.Email,
		Password:        passwordHash,
		Salt:            salt,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		EventsAttended:  []primitive.ObjectID{},
		EventsAttending: []primitive.ObjectID{},
	}
	if doc.Type == "" {
		doc.Type = string(domain.RoleUser)
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return nil
}

func (r *userRepository) GetCredentials(ctx context.Context, email string) (*domain.Credentials, error) {
	var doc userDoc
	opts := options.FindOne().SetProjection(bson.D{
		{Key: "_id", Value: 1}, {Key: "email", Value: 1}, {Key: "password", Value: 1}, {Key: "salt", Value: 1},
	})
	if err := r.col.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doc); err != nil {
		return nil, translateUserErr(err)
	}
	return &domain.Credentials{
		UserID:       doc.ID.Hex(),
		Email:        doc.Email,
		PasswordHash: doc.Password,
		Salt:         doc.Salt,
	}, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	opts := options.FindOne().SetProjection(userProjection)
	if err := r.col.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		return nil, translateUserErr(err)
	}
	return doc.toDomain(), nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(userProjection))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	if upd.Empty() {
		return nil, domain.ErrNoFields
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	set := bson.M{}
	if upd.FirstName != nil {
		set["firstName"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["lastName"] = *upd.LastName
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	user, err := r.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
	if mongo.IsDuplicateKeyError(err) {
		return nil, domain.ErrDuplicateEmail
	}
	return user, err
}

func (r *userRepository) AddAttending(ctx context.Context, userID, eventID string) error {
	return r.updateMembership(ctx, userID, eventID, "$addToSet")
}

func (r *userRepository) RemoveAttending(ctx context.Context, userID, eventID string) error {
	return r.updateMembership(ctx, userID, eventID, "$pull")
}

func (r *userRepository) updateMembership(ctx context.Context, userID, eventID, op string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	eid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return domain.ErrEventNotFound
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{op: bson.M{"eventsAttending": eid}})
	if err != nil {
		return fmt.Errorf("update user %s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) TransferAttendingToAttended(ctx context.Context, userID, eventID string, hours float64) (*domain.User, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	eid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	update := bson.M{
		"$pull":     bson.M{"eventsAttending": eid},
		"$addToSet": bson.M{"eventsAttended": eid},
		"$inc":      bson.M{"totalEvents": 1, "totalHours": hours},
	}
	return r.findOneAndUpdate(ctx, uid, update)
}

func (r *userRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*domain.User, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(userProjection)
	var doc userDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		return nil, translateUserErr(err)
	}
	return doc.toDomain(), nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Attendee, error) {
	oids := validObjectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Attendee{}, nil
	}
	opts := options.Find().SetProjection(bson.D{
		{Key: "_id", Value: 1}, {Key: "firstName", Value: 1}, {Key: "lastName", Value: 1},
	})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find attendees: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode attendees: %w", err)
	}
	out := make([]*domain.Attendee, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toAttendee())
	}
	return out, nil
}

func translateUserErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("user query: %w", err)
}

// validObjectIDs drops ids that are not ObjectID hex; they can never match a document.
func validObjectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, s := range ids {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
