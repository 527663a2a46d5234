package services

import (
	"context"
	"fmt"
	"log/slog"

	"volunteerhub/internal/domain"
)

// ReconcileReport counts what one reconciliation pass changed or flagged.
type ReconcileReport struct {
	Added      int `json:"added"`
	Removed    int `json:"removed"`
	Uncredited int `json:"uncredited"`
}

// Reconciler repairs users' attending sets from event rosters after a
// coordinator left the two sides out of step. Rosters are authoritative.
type Reconciler struct {
	users  domain.UserRepository
	events domain.EventRepository
	logger *slog.Logger
}

func NewReconciler(users domain.UserRepository, events domain.EventRepository, logger *slog.Logger) *Reconciler {
	return &Reconciler{users: users, events: events, logger: logger}
}

// Run performs one pass. Users are read before events so rosters are the fresher snapshot.
// Completed events are never credited here; they are only reported. An event found in both
// of a user's sets loses its attending entry.
func (r *Reconciler) Run(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	users, err := r.users.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list users: %w", err)
	}
	events, err := r.events.ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("list events: %w", err)
	}

	usersByID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}
	eventsByID := make(map[string]*domain.Event, len(events))
	for _, e := range events {
		eventsByID[e.ID] = e
	}

	for _, e := range events {
		if e.Completed {
			continue
		}
		for _, userID := range e.RegisteredVolunteers {
			u, ok := usersByID[userID]
			if !ok || u.IsAttending(e.ID) || u.HasAttended(e.ID) {
				continue
			}
			if !r.stillMissing(ctx, userID, e.ID) {
				continue
			}
			if err := r.users.AddAttending(ctx, userID, e.ID); err != nil {
				r.logger.ErrorContext(ctx, "reconcile: add attending failed", "user_id", userID, "event_id", e.ID, "err", err)
				continue
			}
			report.Added++
		}
	}

	for _, u := range users {
		for _, eventID := range u.EventsAttending {
			e, ok := eventsByID[eventID]
			if !ok {
				continue
			}
			switch {
			case u.HasAttended(eventID):
				// credited already; the attending entry is a late write
			case e.Completed:
				report.Uncredited++
				r.logger.WarnContext(ctx, "reconcile: completed event still in attending set, not credited",
					"user_id", u.ID, "event_id", eventID)
				continue
			case e.HasVolunteer(u.ID):
				continue
			}
			if err := r.users.RemoveAttending(ctx, u.ID, eventID); err != nil {
				r.logger.ErrorContext(ctx, "reconcile: remove attending failed", "user_id", u.ID, "event_id", eventID, "err", err)
				continue
			}
			report.Removed++
		}
	}

	r.logger.InfoContext(ctx, "reconcile finished",
		"added", report.Added, "removed", report.Removed, "uncredited", report.Uncredited)
	return report, nil
}

// stillMissing re-reads the event and the user right before a repair. The snapshot may
// predate a completion fan-out that has since credited the user or completed the event.
func (r *Reconciler) stillMissing(ctx context.Context, userID, eventID string) bool {
	e, err := r.events.GetByID(ctx, eventID)
	if err != nil {
		r.logger.ErrorContext(ctx, "reconcile: reload event failed", "event_id", eventID, "err", err)
		return false
	}
	if e.Completed || !e.HasVolunteer(userID) {
		return false
	}
	u, err := r.users.GetByID(ctx, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "reconcile: reload user failed", "user_id", userID, "err", err)
		return false
	}
	return !u.IsAttending(eventID) && !u.HasAttended(eventID)
}
