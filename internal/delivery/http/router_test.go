package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"volunteerhub/internal/adapters/auth"
	"volunteerhub/internal/delivery/http/controllers"
	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository/memory"
	"volunteerhub/internal/services"
)

// flakyTransfers fails the completion credit for the listed users.
type flakyTransfers struct {
	domain.UserRepository
	fail map[string]bool
}

func (f *flakyTransfers) TransferAttendingToAttended(ctx context.Context, userID, eventID string, hours float64) (*domain.User, error) {
	if f.fail[userID] {
		return nil, errors.New("write conflict")
	}
	return f.UserRepository.TransferAttendingToAttended(ctx, userID, eventID, hours)
}

type app struct {
	t       *testing.T
	store   *memory.Store
	users   *flakyTransfers
	handler http.Handler
}

func newApp(t *testing.T) *app {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	store := memory.NewStore()
	users := &flakyTransfers{UserRepository: store.Users(), fail: map[string]bool{}}
	events := store.Events()

	tokens := auth.NewJWTService("test-secret", 0, nil)
	creds := services.NewCredentialStore(users, auth.NewBcryptHasher(bcrypt.MinCost))
	authSvc := services.NewAuthService(creds, users, tokens, tokens, nil, logger)

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>spa</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log(1)"), 0o600))

	handler := NewRouter(RouterConfig{
		Logger:        logger,
		Authenticator: authSvc,
		Auth:          controllers.NewAuthController(logger, authSvc),
		Events: controllers.NewEventController(logger,
			services.NewEventService(events, users),
			services.NewRegistrationService(users, events, logger, time.Second),
			services.NewCompletionService(users, events, logger),
			false),
		Users:     controllers.NewUserController(logger, services.NewUserService(users, events), false),
		StaticDir: static,
	})
	return &app{t: t, store: store, users: users, handler: handler}
}

func (a *app) do(method, path, token, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://test"+path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

// envelope decodes a response, unmarshalling data into out when non-nil.
func (a *app) envelope(rr *httptest.ResponseRecorder, out any) helpers.APIResponse {
	a.t.Helper()
	var raw struct {
		helpers.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(rr.Body.Bytes(), &raw), rr.Body.String())
	if out != nil {
		require.NoError(a.t, json.Unmarshal(raw.Data, out))
	}
	return raw.APIResponse
}

func (a *app) signup(email string) {
	a.t.Helper()
	rr := a.do(http.MethodPost, "/api/auth/register", "",
		`{"email":"`+email+`","password":"p","firstName":"F-`+email+`","lastName":"L"}`)
	require.Equal(a.t, http.StatusOK, rr.Code, rr.Body.String())
}

func (a *app) login(email string) (string, *domain.User) {
	a.t.Helper()
	rr := a.do(http.MethodPost, "/api/auth/login", "", `{"email":"`+email+`","password":"p"}`)
	require.Equal(a.t, http.StatusOK, rr.Code, rr.Body.String())
	var resp controllers.LoginResponse
	require.NoError(a.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token, resp.User
}

// user signs up and logs in a regular user.
func (a *app) user(email string) (string, *domain.User) {
	a.signup(email)
	return a.login(email)
}

func (a *app) admin(email string) string {
	a.t.Helper()
	token, u := a.user(email)
	require.NoError(a.t, a.store.SetRole(u.ID, domain.RoleAdmin))
	return token
}

func (a *app) createEvent(adminToken, start, end string) *domain.Event {
	a.t.Helper()
	rr := a.do(http.MethodPost, "/api/events", adminToken,
		`{"title":"Park cleanup","date":"2030-01-15","location":{"country":"PT","city":"Porto","address":"Rua 1"},`+
			`"startTime":"`+start+`","endTime":"`+end+`","description":"Bring gloves"}`)
	require.Equal(a.t, http.StatusCreated, rr.Code, rr.Body.String())
	var e domain.Event
	a.envelope(rr, &e)
	return &e
}

func (a *app) storedUser(id string) *domain.User {
	a.t.Helper()
	u, err := a.store.Users().GetByID(context.Background(), id)
	require.NoError(a.t, err)
	return u
}

func TestRouter_registerAndLogin(t *testing.T) {
	a := newApp(t)

	rr := a.do(http.MethodPost, "/api/auth/register", "", `{"email":"a@x","password":"p","firstName":"A","lastName":"B"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var data controllers.TokenData
	env := a.envelope(rr, &data)
	assert.Equal(t, helpers.TypeSuccess, env.Type)
	assert.NotEmpty(t, data.Token)

	token, u := a.login("a@x")
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@x", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Zero(t, u.TotalEvents)

	rr = a.do(http.MethodPost, "/api/auth/login", "", `{"email":"a@x","password":"q"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	rr = a.do(http.MethodPost, "/api/auth/login", "", `{"email":"nobody@x","password":"p"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = a.do(http.MethodPost, "/api/auth/register", "", `{"email":"a@x","password":"z","firstName":"C","lastName":"D"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	env = a.envelope(rr, nil)
	assert.Equal(t, helpers.ErrCodeConflict, env.Code)
	assert.Contains(t, env.Message, "Email already taken")

	rr = a.do(http.MethodPost, "/api/auth/register", "", `{"email":"b@x","password":"p"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, helpers.ErrCodeMissingField, a.envelope(rr, nil).Code)
}

func TestRouter_emailCaseSensitive(t *testing.T) {
	a := newApp(t)

	a.signup("Ann@x")
	a.signup("ann@x")

	upper, err := a.store.Users().GetByEmail(context.Background(), "Ann@x")
	require.NoError(t, err)
	lower, err := a.store.Users().GetByEmail(context.Background(), "ann@x")
	require.NoError(t, err)
	assert.NotEqual(t, upper.ID, lower.ID)
	assert.Equal(t, "Ann@x", upper.Email)

	_, u := a.login("Ann@x")
	assert.Equal(t, upper.ID, u.ID)
	_, u = a.login("ann@x")
	assert.Equal(t, lower.ID, u.ID)

	rr := a.do(http.MethodPost, "/api/auth/login", "", `{"email":"ANN@x","password":"p"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = a.do(http.MethodPost, "/api/auth/register", "", `{"email":"Ann@x","password":"p","firstName":"A","lastName":"B"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, helpers.ErrCodeConflict, a.envelope(rr, nil).Code)
}

func TestRouter_registrationRoundTrip(t *testing.T) {
	a := newApp(t)
	adminToken := a.admin("admin@x")
	token, u := a.user("u@x")
	e := a.createEvent(adminToken, "09:00", "11:30")
	body := `{"userId":"` + u.ID + `"}`

	rr := a.do(http.MethodPost, "/api/events/"+e.ID+"/register", token, body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var attending []domain.Event
	rr = a.do(http.MethodGet, "/api/user/"+u.ID+"/events/attending", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	a.envelope(rr, &attending)
	require.Len(t, attending, 1)
	assert.Equal(t, e.ID, attending[0].ID)

	rr = a.do(http.MethodPost, "/api/events/"+e.ID+"/register", token, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, helpers.ErrCodeConflict, a.envelope(rr, nil).Code)

	var detail struct {
		RegisteredVolunteers []domain.Attendee `json:"registeredVolunteers"`
	}
	rr = a.do(http.MethodGet, "/api/events/"+e.ID, token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	a.envelope(rr, &detail)
	assert.Equal(t, []domain.Attendee{{ID: u.ID, FirstName: "F-u@x", LastName: "L"}}, detail.RegisteredVolunteers)

	rr = a.do(http.MethodPost, "/api/events/"+e.ID+"/unregister", token, body)
	require.Equal(t, http.StatusOK, rr.Code)
	var after domain.Event
	a.envelope(rr, &after)
	assert.Empty(t, after.RegisteredVolunteers)
	assert.Empty(t, a.storedUser(u.ID).EventsAttending)

	rr = a.do(http.MethodPost, "/api/events/"+e.ID+"/unregister", token, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_completionFanOut(t *testing.T) {
	a := newApp(t)
	adminToken := a.admin("admin@x")
	e := a.createEvent(adminToken, "09:00", "11:30")
	var ids []string
	var token string
	for _, email := range []string{"u1@x", "u2@x", "u3@x"} {
		var u *domain.User
		token, u = a.user(email)
		ids = append(ids, u.ID)
		rr := a.do(http.MethodPost, "/api/events/"+e.ID+"/register", token, `{"userId":"`+u.ID+`"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := a.do(http.MethodPost, "/api/events/"+e.ID+"/complete", token, "")
	assert.Equal(t, http.StatusForbidden, rr.Code, "regular users cannot complete")

	rr = a.do(http.MethodPost, "/api/events/"+e.ID+"/complete", adminToken, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var res domain.CompletionResult
	a.envelope(rr, &res)
	assert.Equal(t, 3, res.VolunteersUpdated)
	assert.Equal(t, 3, res.TotalVolunteers)
	assert.True(t, res.Event.Completed)
	assert.NotNil(t, res.Event.CompletedDate)

	for _, id := range ids {
		u := a.storedUser(id)
		assert.Equal(t, 1, u.TotalEvents)
		assert.InDelta(t, 2.5, u.TotalHours, 1e-9)
		assert.Equal(t, []string{e.ID}, u.EventsAttended)
		assert.Empty(t, u.EventsAttending)
	}

	rr = a.do(http.MethodPost, "/api/events/"+e.ID+"/complete", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, helpers.ErrCodeConflict, a.envelope(rr, nil).Code)
	assert.Equal(t, 1, a.storedUser(ids[0]).TotalEvents)

	rr = a.do(http.MethodPost, "/api/events/"+e.ID+"/register", token, `{"userId":"`+ids[2]+`"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, helpers.ErrCodeCannotModifyCompleted, a.envelope(rr, nil).Code)
}

func TestRouter_completionWithFailingUser(t *testing.T) {
	a := newApp(t)
	adminToken := a.admin("admin@x")
	e := a.createEvent(adminToken, "09:00", "11:30")
	var ids []string
	for _, email := range []string{"u1@x", "u2@x", "u3@x"} {
		token, u := a.user(email)
		ids = append(ids, u.ID)
		require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/events/"+e.ID+"/register", token, `{"userId":"`+u.ID+`"}`).Code)
	}
	a.users.fail[ids[1]] = true

	rr := a.do(http.MethodPost, "/api/events/"+e.ID+"/complete", adminToken, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var res domain.CompletionResult
	a.envelope(rr, &res)
	assert.Equal(t, 2, res.VolunteersUpdated)
	assert.Equal(t, 3, res.TotalVolunteers)

	assert.Equal(t, 1, a.storedUser(ids[0]).TotalEvents)
	assert.Equal(t, 0, a.storedUser(ids[1]).TotalEvents)
	assert.Equal(t, 1, a.storedUser(ids[2]).TotalEvents)
}

func TestRouter_roleEnforcement(t *testing.T) {
	a := newApp(t)
	adminToken := a.admin("admin@x")
	token, _ := a.user("u@x")
	_, other := a.user("other@x")
	e := a.createEvent(adminToken, "09:00", "10:00")

	rr := a.do(http.MethodPost, "/api/events", token,
		`{"title":"t","date":"2030-01-15","location":{"country":"c","city":"c","address":"a"},"startTime":"09:00","endTime":"10:00","description":"d"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, helpers.ErrCodeForbidden, a.envelope(rr, nil).Code)

	rr = a.do(http.MethodPost, "/api/events/"+e.ID+"/register", token, `{"userId":"`+other.ID+`"}`)
	assert.Equal(t, http.StatusOK, rr.Code, "registering another user is allowed without strict identity")
	assert.True(t, a.storedUser(other.ID).IsAttending(e.ID))
}

func TestRouter_authBoundary(t *testing.T) {
	a := newApp(t)
	token, _ := a.user("u@x")

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "events need a token", method: http.MethodGet, path: "/api/events", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", method: http.MethodGet, path: "/api/events", token: "garbage", wantStatus: http.StatusUnauthorized},
		{name: "events with token", method: http.MethodGet, path: "/api/events", token: token, wantStatus: http.StatusOK},
		{name: "unknown api path without token", method: http.MethodGet, path: "/api/nope", wantStatus: http.StatusUnauthorized},
		{name: "unknown api path with token", method: http.MethodGet, path: "/api/nope", token: token, wantStatus: http.StatusNotFound},
		{name: "unknown event", method: http.MethodGet, path: "/api/events/missing", token: token, wantStatus: http.StatusNotFound},
		{name: "unknown user listing", method: http.MethodGet, path: "/api/user/missing/events/past", token: token, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := a.do(tt.method, tt.path, tt.token, "")
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_profileEdit(t *testing.T) {
	a := newApp(t)
	token, u := a.user("u@x")
	a.signup("taken@x")

	rr := a.do(http.MethodPost, "/api/user/edit", token, `{"id":"`+u.ID+`","firstName":"Ann"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.User
	a.envelope(rr, &got)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, "u@x", got.Email)

	rr = a.do(http.MethodPost, "/api/user/edit", token, `{"id":"`+u.ID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = a.do(http.MethodPost, "/api/user/edit", token, `{"id":"`+u.ID+`","email":"taken@x"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, helpers.ErrCodeConflict, a.envelope(rr, nil).Code)
}

func TestRouter_spa(t *testing.T) {
	a := newApp(t)

	rr := a.do(http.MethodGet, "/events/123", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "spa")

	rr = a.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "spa")

	rr = a.do(http.MethodGet, "/app.js", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "console.log(1)", rr.Body.String())

	rr = a.do(http.MethodPost, "/events/123", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
