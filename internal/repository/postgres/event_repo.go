package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"volunteerhub/internal/domain"
)

const eventColumns = `id, title, description, date, country, city, address, start_time, end_time,
	registered_volunteers, completed, completed_date, created_by`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var completedDate sql.NullTime
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date,
		&e.Location.Country, &e.Location.City, &e.Location.Address,
		&e.StartTime, &e.EndTime, pq.Array(&e.RegisteredVolunteers),
		&e.Completed, &completedDate, &e.CreatedBy)
	if err != nil {
		return nil, err
	}
	e.Date = e.Date.UTC()
	if completedDate.Valid {
		t := completedDate.Time.UTC()
		e.CompletedDate = &t
	}
	if e.RegisteredVolunteers == nil {
		e.RegisteredVolunteers = []string{}
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, country, city, address, start_time, end_time, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, e.Title, e.Description, e.Date,
		e.Location.Country, e.Location.City, e.Location.Address,
		e.StartTime, e.EndTime, e.CreatedBy).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.RegisteredVolunteers = []string{}
	e.Completed = false
	e.CompletedDate = nil
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if !validID(id) {
		return nil, domain.ErrEventNotFound
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateEventErr(err)
	}
	return e, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date`)
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []*domain.Event{}, nil
	}
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ANY($1::uuid[]) ORDER BY date`, pq.Array(valid))
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) AddVolunteer(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	query := `
		UPDATE events
		SET registered_volunteers = CASE WHEN $2::text = ANY(registered_volunteers) THEN registered_volunteers
		                                 ELSE array_append(registered_volunteers, $2::text) END,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + eventColumns
	return r.updateOne(ctx, eventID, query, userID)
}

func (r *eventRepository) RemoveVolunteer(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	query := `
		UPDATE events
		SET registered_volunteers = array_remove(registered_volunteers, $2::text),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + eventColumns
	return r.updateOne(ctx, eventID, query, userID)
}

func (r *eventRepository) MarkCompleted(ctx context.Context, eventID string, at time.Time) (*domain.Event, error) {
	query := `
		UPDATE events
		SET completed = TRUE, completed_date = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + eventColumns
	return r.updateOne(ctx, eventID, query, at.UTC())
}

func (r *eventRepository) updateOne(ctx context.Context, eventID, query string, arg any) (*domain.Event, error) {
	if !validID(eventID) {
		return nil, domain.ErrEventNotFound
	}
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, eventID, arg))
	if err != nil {
		return nil, translateEventErr(err)
	}
	return e, nil
}

func translateEventErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	return fmt.Errorf("event query: %w", err)
}
