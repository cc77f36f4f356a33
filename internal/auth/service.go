package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/storefront/internal/session"
	"github.com/example/storefront/internal/store"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrEmailNotFound = errors.New("email not found, please register first")
	ErrWrongPassword = errors.New("incorrect password")
)

// Service performs the caller-side authentication decision: it validates
// credentials against the users collection and hands the resolved record to
// the session manager. The session manager itself never talks to the store.
type Service struct {
	store    store.ResourceStore
	verifier Verifier
}

func NewService(rs store.ResourceStore, v Verifier) *Service {
	return &Service{store: rs, verifier: v}
}

// Register creates a user, rejecting the email if any existing user already
// holds it.
func (s *Service) Register(ctx context.Context, name, email, password string) (*session.User, error) {
	users, err := s.listUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}

	stored, err := s.verifier.Hash(password)
	if err != nil {
		return nil, err
	}

	var created session.User
	body := session.User{Name: name, Email: email, Password: stored}
	if err := s.store.Create(ctx, store.CollectionUsers, body, &created); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &created, nil
}

// Login resolves the user record for the email and verifies the password of
// that record. The original client checked email and password as two
// independent lookups over the whole user list; matching them against the
// same record is a deliberate fix, recorded in DESIGN.md.
func (s *Service) Login(ctx context.Context, email, password string) (*session.User, error) {
	users, err := s.listUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		if !s.verifier.Verify(password, u.Password) {
			return nil, ErrWrongPassword
		}
		matched := u
		return &matched, nil
	}
	return nil, ErrEmailNotFound
}

func (s *Service) listUsers(ctx context.Context) ([]session.User, error) {
	var users []session.User
	if err := s.store.List(ctx, store.CollectionUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}
