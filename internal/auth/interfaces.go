package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/dvanek/go-auth-api/internal/user"
)

// TokenService defines the interface for token creation and validation.
// The production implementation is PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(userID uuid.UUID, email string) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserStore is the slice of the user repository the auth flows need
type UserStore interface {
	Create(ctx context.Context, name, email, password string) (*user.User, error)
	GetByEmail(ctx context.Context, email string, includePassword bool) (*user.User, error)
}
