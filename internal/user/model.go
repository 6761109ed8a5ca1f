package user

import (
	"time"

	"github.com/google/uuid"
)

// User is one registered principal. The password hash is never serialized;
// it is populated only when a lookup explicitly asks for it.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the privacy-preserving listing projection: no email, no
// active flag, no credential data.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
