package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"volunteerhub/internal/domain"
)

const userColumns = `id, type, email, first_name, last_name, total_events, total_hours, events_attended, events_attending`

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var role string
	err := row.Scan(&u.ID, &role, &u.Email, &u.FirstName, &u.LastName, &u.TotalEvents, &u.TotalHours,
		pq.Array(&u.EventsAttended), pq.Array(&u.EventsAttending))
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	if u.EventsAttended == nil {
		u.EventsAttended = []string{}
	}
	if u.EventsAttending == nil {
		u.EventsAttending = []string{}
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User, passwordHash, salt string) error {
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	query := `
		INSERT INTO users (type, email, password_hash, salt, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, string(role), u.Email, passwordHash, salt, u.FirstName, u.LastName).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.Role = role
	return nil
}

func (r *userRepository) GetCredentials(ctx context.Context, email string) (*domain.Credentials, error) {
	query := `SELECT id, email, password_hash, salt FROM users WHERE email = $1`
	c := &domain.Credentials{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&c.UserID, &c.Email, &c.PasswordHash, &c.Salt)
	if err != nil {
		return nil, translateUserErr(err)
	}
	return c, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, translateUserErr(err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrUserNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateUserErr(err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	if upd.Empty() {
		return nil, domain.ErrNoFields
	}
	if !validID(id) {
		return nil, domain.ErrUserNotFound
	}
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    email = COALESCE($4, email),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id, upd.FirstName, upd.LastName, upd.Email))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, translateUserErr(err)
	}
	return u, nil
}

func (r *userRepository) AddAttending(ctx context.Context, userID, eventID string) error {
	query := `
		UPDATE users
		SET events_attending = CASE WHEN $2::text = ANY(events_attending) THEN events_attending
		                            ELSE array_append(events_attending, $2::text) END,
		    updated_at = now()
		WHERE id = $1
	`
	return r.execMembership(ctx, query, userID, eventID)
}

func (r *userRepository) RemoveAttending(ctx context.Context, userID, eventID string) error {
	query := `
		UPDATE users
		SET events_attending = array_remove(events_attending, $2::text),
		    updated_at = now()
		WHERE id = $1
	`
	return r.execMembership(ctx, query, userID, eventID)
}

func (r *userRepository) execMembership(ctx context.Context, query, userID, eventID string) error {
	if !validID(userID) {
		return domain.ErrUserNotFound
	}
	res, err := r.DB.ExecContext(ctx, query, userID, eventID)
	if err != nil {
		return fmt.Errorf("update user membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user membership: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) TransferAttendingToAttended(ctx context.Context, userID, eventID string, hours float64) (*domain.User, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}
	query := `
		UPDATE users
		SET events_attending = array_remove(events_attending, $2::text),
		    events_attended = CASE WHEN $2::text = ANY(events_attended) THEN events_attended
		                           ELSE array_append(events_attended, $2::text) END,
		    total_events = total_events + 1,
		    total_hours = total_hours + $3,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, userID, eventID, hours))
	if err != nil {
		return nil, translateUserErr(err)
	}
	return u, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Attendee, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	out := []*domain.Attendee{}
	if len(valid) == 0 {
		return out, nil
	}
	query := `SELECT id, first_name, last_name FROM users WHERE id = ANY($1::uuid[])`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(valid))
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func translateUserErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("user query: %w", err)
}
