package memory

import (
	"context"

	"github.com/google/uuid"

	"volunteerhub/internal/domain"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(ctx context.Context, u *domain.User, passwordHash, salt string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.byEmail[u.Email]; taken {
		return domain.ErrDuplicateEmail
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	u.ID = uuid.NewString()
	r.s.users[u.ID] = &userRecord{
		user:         *copyUser(u),
		passwordHash: passwordHash,
		salt:         salt,
		seq:          r.s.nextSeq(),
	}
	r.s.byEmail[u.Email] = u.ID
	return nil
}

func (r *userRepository) GetCredentials(ctx context.Context, email string) (*domain.Credentials, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.byEmail(email)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.Credentials{
		UserID:       rec.user.ID,
		Email:        rec.user.Email,
		PasswordHash: rec.passwordHash,
		Salt:         rec.salt,
	}, nil
}

func (r *userRepository) byEmail(email string) (*userRecord, bool) {
	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, false
	}
	rec, ok := r.s.users[id]
	return rec, ok
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.byEmail(email)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(&rec.user), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(&rec.user), nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	recs := make([]*userRecord, 0, len(r.s.users))
	for _, rec := range r.s.users {
		recs = append(recs, rec)
	}
	sortBySeq(recs, func(rec *userRecord) int { return rec.seq })
	out := make([]*domain.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, copyUser(&rec.user))
	}
	return out, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	if upd.Empty() {
		return nil, domain.ErrNoFields
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Email != nil && *upd.Email != rec.user.Email {
		if _, taken := r.s.byEmail[*upd.Email]; taken {
			return nil, domain.ErrDuplicateEmail
		}
		delete(r.s.byEmail, rec.user.Email)
		rec.user.Email = *upd.Email
		r.s.byEmail[rec.user.Email] = id
	}
	if upd.FirstName != nil {
		rec.user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		rec.user.LastName = *upd.LastName
	}
	return copyUser(&rec.user), nil
}

func (r *userRepository) AddAttending(ctx context.Context, userID, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.user.EventsAttending = addToSet(rec.user.EventsAttending, eventID)
	return nil
}

func (r *userRepository) RemoveAttending(ctx context.Context, userID, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.user.EventsAttending = pull(rec.user.EventsAttending, eventID)
	return nil
}

func (r *userRepository) TransferAttendingToAttended(ctx context.Context, userID, eventID string, hours float64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	rec.user.EventsAttending = pull(rec.user.EventsAttending, eventID)
	rec.user.EventsAttended = addToSet(rec.user.EventsAttended, eventID)
	rec.user.TotalEvents++
	rec.user.TotalHours += hours
	return copyUser(&rec.user), nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Attendee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Attendee, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if rec, ok := r.s.users[id]; ok {
			out = append(out, &domain.Attendee{ID: rec.user.ID, FirstName: rec.user.FirstName, LastName: rec.user.LastName})
		}
	}
	return out, nil
}
