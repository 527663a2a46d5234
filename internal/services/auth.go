package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"volunteerhub/internal/domain"
)

type authService struct {
	creds    domain.CredentialStore
	users    domain.UserRepository
	issuer   domain.TokenIssuer
	verifier domain.TokenVerifier
	emails   domain.EmailService
	logger   *slog.Logger
}

// NewAuthService creates an AuthService. emails may be nil, in which case no welcome mail is sent.
func NewAuthService(
	creds domain.CredentialStore,
	users domain.UserRepository,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	emails domain.EmailService,
	logger *slog.Logger,
) domain.AuthService {
	return &authService{
		creds:    creds,
		users:    users,
		issuer:   issuer,
		verifier: verifier,
		emails:   emails,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	u, err := s.creds.Register(ctx, email, password, firstName, lastName)
	if err != nil {
		return "", err
	}
	token, err := s.issuer.Issue(u.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID)

	if s.emails != nil {
		data := &domain.WelcomeMessageEmailData{Email: u.Email, FirstName: u.FirstName}
		if err := s.emails.SendWelcomeMessage(context.WithoutCancel(ctx), data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "user_id", u.ID, "err", err)
		}
	}
	return token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ok, err := s.creds.Verify(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	token, err := s.issuer.Issue(u.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// Authenticate verifies the token and re-loads the user it was issued for.
// A user that no longer exists makes the token invalid.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}
