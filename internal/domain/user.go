package domain

import (
	"context"
	"slices"
	"time"
)

// Role is the user's capability tier. It is stored under the "type" key.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// CanManageEvents reports whether the role may create and complete events.
func (r Role) CanManageEvents() bool {
	return r == RoleAdmin
}

// User is the repository projection of a user. It never carries credentials.
// swagger:model User
type User struct {
	ID              string   `json:"id"`
	Role            Role     `json:"type"`
	Email           string   `json:"email"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	TotalEvents     int      `json:"totalEvents"`
	TotalHours      float64  `json:"totalHours"`
	EventsAttended  []string `json:"eventsAttended"`
	EventsAttending []string `json:"eventsAttending"`
}

// NewUser returns a fresh user with role user, empty membership sets and zero counters.
// ID is set by the repository on create.
func NewUser(email, firstName, lastName string) *User {
	return &User{
		Role:            RoleUser,
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		EventsAttended:  []string{},
		EventsAttending: []string{},
	}
}

// IsAttending reports whether eventID is in the user's attending set.
func (u *User) IsAttending(eventID string) bool {
	return slices.Contains(u.EventsAttending, eventID)
}

// HasAttended reports whether eventID is in the user's attended set.
func (u *User) HasAttended(eventID string) bool {
	return slices.Contains(u.EventsAttended, eventID)
}

// Attendee is the public roster projection of a user.
// swagger:model Attendee
type Attendee struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Credentials is the stored secret material for a user, keyed by email.
type Credentials struct {
	UserID       string
	Email        string
	PasswordHash string
	Salt         string
}

// ProfileUpdate carries the owner-editable fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Empty reports whether no field is set.
func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues bearer tokens bound to an email identity.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// TokenVerifier verifies a bearer token and returns the email it was issued for.
// It returns ErrTokenExpired or ErrTokenInvalid on failure.
type TokenVerifier interface {
	Verify(token string) (email string, err error)
}

// UserRepository defines user storage. Membership mutations are single-document
// atomic set operations, so repeating them is harmless.
type UserRepository interface {
	// Create stores u with its credentials and sets u.ID. Returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *User, passwordHash, salt string) error
	GetCredentials(ctx context.Context, email string) (*Credentials, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error)
	AddAttending(ctx context.Context, userID, eventID string) error
	RemoveAttending(ctx context.Context, userID, eventID string) error
	// TransferAttendingToAttended moves eventID from attending to attended and credits
	// one event and hours in a single atomic update.
	TransferAttendingToAttended(ctx context.Context, userID, eventID string, hours float64) (*User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Attendee, error)
}

// CredentialStore registers and verifies password credentials.
type CredentialStore interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*User, error)
	Verify(ctx context.Context, email, password string) (bool, error)
}

// AuthService defines self-registration, login and bearer-token authentication.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	Authenticate(ctx context.Context, token string) (*User, error)
}

// UserService defines profile and per-user event listings.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error)
	ListAttending(ctx context.Context, userID string) ([]*Event, error)
	ListPast(ctx context.Context, userID string, now time.Time) ([]*Event, error)
}
