package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"volunteerhub/internal/domain"
)

type authFixture struct {
	*fixture
	hasher *fakePasswordHasher
	tokens *fakeTokens
	emails *fakeEmailService
	svc    domain.AuthService
}

func newAuthFixture() *authFixture {
	fx := newFixture()
	hasher := &fakePasswordHasher{salt: "salt"}
	tokens := &fakeTokens{}
	emails := &fakeEmailService{}
	creds := NewCredentialStore(fx.users, hasher)
	return &authFixture{
		fixture: fx,
		hasher:  hasher,
		tokens:  tokens,
		emails:  emails,
		svc:     NewAuthService(creds, fx.users, tokens, tokens, emails, testLogger),
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()

	token, err := fx.svc.Register(ctx, "a@x", "pw", "Ann", "Lee")
	require.NoError(t, err)
	assert.Equal(t, "token-a@x", token)

	u, err := fx.users.GetByEmail(ctx, "a@x")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, "Ann", u.FirstName)
	assert.Equal(t, "Lee", u.LastName)
	assert.Zero(t, u.TotalEvents)
	assert.Zero(t, u.TotalHours)
	assert.Empty(t, u.EventsAttending)
	assert.Empty(t, u.EventsAttended)

	creds, err := fx.users.GetCredentials(ctx, "a@x")
	require.NoError(t, err)
	assert.Equal(t, "salt", creds.Salt)
	assert.Equal(t, "hash:salt:pw", creds.PasswordHash)

	require.Len(t, fx.emails.welcome, 1)
	assert.Equal(t, "a@x", fx.emails.welcome[0].Email)
	assert.Equal(t, "Ann", fx.emails.welcome[0].FirstName)
}

func TestAuthService_Register_duplicateEmail(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()
	_, err := fx.svc.Register(ctx, "a@x", "pw", "Ann", "Lee")
	require.NoError(t, err)

	_, err = fx.svc.Register(ctx, "a@x", "other", "Bob", "Ray")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Len(t, fx.emails.welcome, 1)

	u, err := fx.users.GetByEmail(ctx, "a@x")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.FirstName, "first account untouched")
}

func TestAuthService_Register_welcomeMailFailureIgnored(t *testing.T) {
	fx := newAuthFixture()
	fx.emails.err = errStore

	token, err := fx.svc.Register(context.Background(), "a@x", "pw", "Ann", "Lee")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_Register_saltFailure(t *testing.T) {
	fx := newAuthFixture()
	fx.hasher.saltErr = errStore

	_, err := fx.svc.Register(context.Background(), "a@x", "pw", "Ann", "Lee")
	require.ErrorIs(t, err, errStore)
	_, err = fx.users.GetByEmail(context.Background(), "a@x")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()
	_, err := fx.svc.Register(ctx, "a@x", "pw", "Ann", "Lee")
	require.NoError(t, err)

	token, u, err := fx.svc.Login(ctx, "a@x", "pw")
	require.NoError(t, err)
	assert.Equal(t, "token-a@x", token)
	assert.Equal(t, "a@x", u.Email)
	assert.NotEmpty(t, u.ID)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "a@x", password: "nope"},
		{name: "unknown email", email: "ghost@x", password: "pw"},
		{name: "empty password", email: "a@x", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := fx.hasher.compares
			_, _, err := fx.svc.Login(ctx, tt.email, tt.password)
			require.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.Equal(t, before+1, fx.hasher.compares, "one comparison per attempt")
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()
	token, err := fx.svc.Register(ctx, "a@x", "pw", "Ann", "Lee")
	require.NoError(t, err)

	u, err := fx.svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@x", u.Email)

	_, err = fx.svc.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = fx.svc.Authenticate(ctx, "token-ghost@x")
	require.ErrorIs(t, err, domain.ErrTokenInvalid, "a token for a user that no longer exists")

	fx.tokens.verifyErr = domain.ErrTokenExpired
	_, err = fx.svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestAuthService_Authenticate_followsEmailChange(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture()
	token, err := fx.svc.Register(ctx, "a@x", "pw", "Ann", "Lee")
	require.NoError(t, err)
	u, err := fx.svc.Authenticate(ctx, token)
	require.NoError(t, err)

	newEmail := "b@x"
	_, err = fx.users.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Email: &newEmail})
	require.NoError(t, err)

	_, err = fx.svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, err = fx.svc.Login(ctx, "b@x", "pw")
	require.NoError(t, err)
}
