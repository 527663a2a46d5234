package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"volunteerhub/internal/domain"
)

type credentialStore struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher

	dummyOnce sync.Once
	dummySalt string
	dummyHash string
}

// NewCredentialStore returns a CredentialStore that keeps salted password hashes in the user repository.
func NewCredentialStore(users domain.UserRepository, hasher domain.PasswordHasher) domain.CredentialStore {
	return &credentialStore{users: users, hasher: hasher}
}

func (s *credentialStore) Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error) {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, err
	}
	u := domain.NewUser(email, firstName, lastName)
	if err := s.users.Create(ctx, u, hash, salt); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Verify reports whether the password matches the one stored for email.
// An unknown email costs one hash comparison too, so timing does not reveal which check failed.
func (s *credentialStore) Verify(ctx context.Context, email, password string) (bool, error) {
	creds, err := s.users.GetCredentials(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		s.compareDummy(password)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load credentials: %w", err)
	}
	if err := s.hasher.Compare(creds.PasswordHash, creds.Salt, password); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *credentialStore) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummySalt, _ = s.hasher.GenerateSalt()
		s.dummyHash, _ = s.hasher.Hash(s.dummySalt, "dummy-password")
	})
	_ = s.hasher.Compare(s.dummyHash, s.dummySalt, password)
}
