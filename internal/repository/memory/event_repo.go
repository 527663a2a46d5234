package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"volunteerhub/internal/domain"
)

type eventRepository struct {
	s *Store
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = uuid.NewString()
	e.RegisteredVolunteers = []string{}
	e.Completed = false
	e.CompletedDate = nil
	r.s.events[e.ID] = &eventRecord{event: *copyEvent(e), seq: r.s.nextSeq()}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return copyEvent(&rec.event), nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	recs := make([]*eventRecord, 0, len(r.s.events))
	for _, rec := range r.s.events {
		recs = append(recs, rec)
	}
	return sortedEvents(recs), nil
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	recs := make([]*eventRecord, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if rec, ok := r.s.events[id]; ok {
			recs = append(recs, rec)
		}
	}
	return sortedEvents(recs), nil
}

// sortedEvents orders by date, then by insertion.
func sortedEvents(recs []*eventRecord) []*domain.Event {
	sortBySeq(recs, func(rec *eventRecord) int { return rec.seq })
	out := make([]*domain.Event, 0, len(recs))
	for _, rec := range recs {
		out = append(out, copyEvent(&rec.event))
	}
	sortByDate(out)
	return out
}

func (r *eventRepository) AddVolunteer(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	return r.update(eventID, func(e *domain.Event) {
		e.RegisteredVolunteers = addToSet(e.RegisteredVolunteers, userID)
	})
}

func (r *eventRepository) RemoveVolunteer(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	return r.update(eventID, func(e *domain.Event) {
		e.RegisteredVolunteers = pull(e.RegisteredVolunteers, userID)
	})
}

func (r *eventRepository) MarkCompleted(ctx context.Context, eventID string, at time.Time) (*domain.Event, error) {
	return r.update(eventID, func(e *domain.Event) {
		t := at.UTC()
		e.Completed = true
		e.CompletedDate = &t
	})
}

func (r *eventRepository) update(eventID string, fn func(e *domain.Event)) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.events[eventID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	fn(&rec.event)
	return copyEvent(&rec.event), nil
}
