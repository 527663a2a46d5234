package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes the standard envelope, keeping data raw for the caller.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) (helpers.APIResponse, json.RawMessage) {
	t.Helper()
	var raw struct {
		helpers.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	return raw.APIResponse, raw.Data
}

type fakeAuthService struct {
	registerToken string
	registerErr   error
	loginToken    string
	loginUser     *domain.User
	loginErr      error

	gotEmail, gotPassword, gotFirst, gotLast string
}

func (f *fakeAuthService) Register(_ context.Context, email, password, firstName, lastName string) (string, error) {
	f.gotEmail, f.gotPassword, f.gotFirst, f.gotLast = email, password, firstName, lastName
	return f.registerToken, f.registerErr
}

func (f *fakeAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrTokenInvalid
}

type fakeEventService struct {
	events   []*domain.Event
	created  *domain.Event
	detail   *domain.EventDetail
	err      error
	gotActor *domain.User
	gotInput domain.CreateEventInput
	gotID    string
}

func (f *fakeEventService) Create(_ context.Context, actor *domain.User, in domain.CreateEventInput) (*domain.Event, error) {
	f.gotActor, f.gotInput = actor, in
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeEventService) List(context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventService) GetDetail(_ context.Context, id string) (*domain.EventDetail, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

type fakeRegistrationService struct {
	event      *domain.Event
	err        error
	gotUserID  string
	gotEventID string
	calls      int
}

func (f *fakeRegistrationService) Register(_ context.Context, userID, eventID string) (*domain.Event, error) {
	f.calls++
	f.gotUserID, f.gotEventID = userID, eventID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeRegistrationService) Unregister(ctx context.Context, userID, eventID string) (*domain.Event, error) {
	return f.Register(ctx, userID, eventID)
}

type fakeCompletionService struct {
	result   *domain.CompletionResult
	err      error
	gotActor *domain.User
	gotID    string
}

func (f *fakeCompletionService) Complete(_ context.Context, actor *domain.User, eventID string) (*domain.CompletionResult, error) {
	f.gotActor, f.gotID = actor, eventID
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeUserService struct {
	user      *domain.User
	events    []*domain.Event
	err       error
	gotID     string
	gotUpdate domain.ProfileUpdate
	gotNow    time.Time
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.gotID = id
	return f.user, f.err
}

func (f *fakeUserService) UpdateProfile(_ context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	f.gotID, f.gotUpdate = id, upd
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserService) ListAttending(_ context.Context, userID string) ([]*domain.Event, error) {
	f.gotID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeUserService) ListPast(_ context.Context, userID string, now time.Time) ([]*domain.Event, error) {
	f.gotID, f.gotNow = userID, now
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}
