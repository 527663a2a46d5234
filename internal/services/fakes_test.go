package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository/memory"
)

var (
	testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	errStore   = errors.New("store unavailable")
)

// bufferLogger returns a logger whose JSON output can be inspected.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// faultyUsers wraps a real UserRepository and fails selected calls.
type faultyUsers struct {
	domain.UserRepository

	mu                 sync.Mutex
	listErr            error
	addAttendingErr    error
	removeAttendingErr error
	transferErr        map[string]error
	transferCalls      int
	ctxErrOnWrite      []error
}

func (f *faultyUsers) record(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxErrOnWrite = append(f.ctxErrOnWrite, ctx.Err())
}

func (f *faultyUsers) List(ctx context.Context) ([]*domain.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.UserRepository.List(ctx)
}

func (f *faultyUsers) AddAttending(ctx context.Context, userID, eventID string) error {
	f.record(ctx)
	if f.addAttendingErr != nil {
		return f.addAttendingErr
	}
	return f.UserRepository.AddAttending(ctx, userID, eventID)
}

func (f *faultyUsers) RemoveAttending(ctx context.Context, userID, eventID string) error {
	f.record(ctx)
	if f.removeAttendingErr != nil {
		return f.removeAttendingErr
	}
	return f.UserRepository.RemoveAttending(ctx, userID, eventID)
}

func (f *faultyUsers) TransferAttendingToAttended(ctx context.Context, userID, eventID string, hours float64) (*domain.User, error) {
	f.record(ctx)
	f.mu.Lock()
	f.transferCalls++
	err := f.transferErr[userID]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.UserRepository.TransferAttendingToAttended(ctx, userID, eventID, hours)
}

// faultyEvents wraps a real EventRepository and fails selected calls.
type faultyEvents struct {
	domain.EventRepository

	addVolunteerErr    error
	removeVolunteerErr error
	markCompletedErr   error
	afterAddVolunteer  func()
	addCalls           int
	removeCalls        int
}

func (f *faultyEvents) AddVolunteer(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	f.addCalls++
	if f.addVolunteerErr != nil {
		return nil, f.addVolunteerErr
	}
	e, err := f.EventRepository.AddVolunteer(ctx, eventID, userID)
	if f.afterAddVolunteer != nil {
		f.afterAddVolunteer()
	}
	return e, err
}

func (f *faultyEvents) RemoveVolunteer(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	f.removeCalls++
	if f.removeVolunteerErr != nil {
		return nil, f.removeVolunteerErr
	}
	return f.EventRepository.RemoveVolunteer(ctx, eventID, userID)
}

func (f *faultyEvents) MarkCompleted(ctx context.Context, eventID string, at time.Time) (*domain.Event, error) {
	if f.markCompletedErr != nil {
		return nil, f.markCompletedErr
	}
	return f.EventRepository.MarkCompleted(ctx, eventID, at)
}

// fixture is a memory store with faulty wrappers around both repositories.
type fixture struct {
	store  *memory.Store
	users  *faultyUsers
	events *faultyEvents
}

func newFixture() *fixture {
	s := memory.NewStore()
	return &fixture{
		store:  s,
		users:  &faultyUsers{UserRepository: s.Users(), transferErr: map[string]error{}},
		events: &faultyEvents{EventRepository: s.Events()},
	}
}

func (fx *fixture) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u := domain.NewUser(email, "First-"+email, "Last")
	require.NoError(t, fx.store.Users().Create(context.Background(), u, "hash", "salt"))
	return u
}

func (fx *fixture) admin(t *testing.T, email string) *domain.User {
	t.Helper()
	u := fx.user(t, email)
	require.NoError(t, fx.store.SetRole(u.ID, domain.RoleAdmin))
	u.Role = domain.RoleAdmin
	return u
}

func (fx *fixture) event(t *testing.T, start, end string, date time.Time) *domain.Event {
	t.Helper()
	e := domain.NewEvent("Park cleanup", "Bring gloves", date,
		domain.Location{Country: "PT", City: "Porto", Address: "Rua 1"}, start, end, "")
	require.NoError(t, fx.store.Events().Create(context.Background(), e))
	return e
}

func (fx *fixture) getUser(t *testing.T, id string) *domain.User {
	t.Helper()
	u, err := fx.store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (fx *fixture) getEvent(t *testing.T, id string) *domain.Event {
	t.Helper()
	e, err := fx.store.Events().GetByID(context.Background(), id)
	require.NoError(t, err)
	return e
}

// fakeEmailService records what would have been sent.
type fakeEmailService struct {
	mu        sync.Mutex
	welcome   []*domain.WelcomeMessageEmailData
	completed []*domain.EventCompletedEmailData
	err       error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendEventCompleted(ctx context.Context, data *domain.EventCompletedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, data)
	return f.err
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	salt     string
	compares int
	saltErr  error
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return f.salt, nil
}

func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	f.compares++
	if hash != "hash:"+salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokens implements domain.TokenIssuer and domain.TokenVerifier for tests.
type fakeTokens struct {
	issueErr  error
	verifyErr error
}

func (f *fakeTokens) Issue(email string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "token-" + email, nil
}

func (f *fakeTokens) Verify(token string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	email, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return email, nil
}

