// Package memory implements the user and event repositories in process memory.
// Each method holds the store lock for its whole read-modify-write, which gives
// the same single-record atomicity the document stores provide.
package memory

import (
	"slices"
	"sort"
	"sync"

	"volunteerhub/internal/domain"
)

type userRecord struct {
	user         domain.User
	passwordHash string
	salt         string
	seq          int
}

type eventRecord struct {
	event domain.Event
	seq   int
}

// Store holds users and events. The zero value is not usable; call NewStore.
type Store struct {
	mu      sync.RWMutex
	seq     int
	users   map[string]*userRecord
	byEmail map[string]string
	events  map[string]*eventRecord
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]*userRecord),
		byEmail: make(map[string]string),
		events:  make(map[string]*eventRecord),
	}
}

// Users returns a UserRepository view of the store.
func (s *Store) Users() domain.UserRepository {
	return &userRepository{s: s}
}

// Events returns an EventRepository view of the store.
func (s *Store) Events() domain.EventRepository {
	return &eventRepository{s: s}
}

// SetRole changes a user's role. It exists for seeding administrators.
func (s *Store) SetRole(id string, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.user.Role = role
	return nil
}

func (s *Store) nextSeq() int {
	s.seq++
	return s.seq
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	c.TotalHours = domain.RoundHours(u.TotalHours)
	c.EventsAttended = slices.Clone(u.EventsAttended)
	c.EventsAttending = slices.Clone(u.EventsAttending)
	if c.EventsAttended == nil {
		c.EventsAttended = []string{}
	}
	if c.EventsAttending == nil {
		c.EventsAttending = []string{}
	}
	return &c
}

func copyEvent(e *domain.Event) *domain.Event {
	c := *e
	c.RegisteredVolunteers = slices.Clone(e.RegisteredVolunteers)
	if c.RegisteredVolunteers == nil {
		c.RegisteredVolunteers = []string{}
	}
	if e.CompletedDate != nil {
		t := *e.CompletedDate
		c.CompletedDate = &t
	}
	return &c
}

func addToSet(set []string, v string) []string {
	if slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}

func pull(set []string, v string) []string {
	return slices.DeleteFunc(set, func(s string) bool { return s == v })
}

func sortBySeq[T any](items []T, seq func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return seq(items[i]) < seq(items[j]) })
}

func sortByDate(events []*domain.Event) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
}
