package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvanek/go-auth-api/internal/crypt"
	"github.com/dvanek/go-auth-api/internal/logging"
	"github.com/dvanek/go-auth-api/internal/user"
)

// ErrInvalidCredentials is the uniform login failure. An unknown email and a
// wrong password both produce this exact error so responses cannot be used
// to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service handles authentication business logic
type Service struct {
	users  UserStore
	tokens TokenService
	hasher *crypt.Hasher
	logger *logging.Logger
}

func NewService(users UserStore, tokens TokenService, hasher *crypt.Hasher, logger *logging.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates a new user and mints an identity token for it. The store
// hashes the password on write; a duplicate email surfaces as
// user.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, name, email, password string) (*user.User, string, error) {
	newUser, err := s.users.Create(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, "", user.ErrDuplicateEmail
		}
		s.logger.Error("user store create failed", "error", err.Error())
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.CreateToken(newUser.ID, newUser.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return newUser, token, nil
}

// Login verifies credentials and mints an identity token. The password hash
// is fetched explicitly for this check only and stripped before the user is
// returned.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	existing, err := s.users.GetByEmail(ctx, email, true)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(password, existing.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existing.ID, existing.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	existing.PasswordHash = ""

	return existing, token, nil
}
