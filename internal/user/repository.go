package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/dvanek/go-auth-api/internal/crypt"
	"github.com/dvanek/go-auth-api/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository handles user data persistence. Raw passwords are hashed here,
// immediately before the value is persisted; stored hashes are never touched
// again.
type Repository struct {
	db     *bun.DB
	hasher *crypt.Hasher
}

func NewRepository(db *bun.DB, hasher *crypt.Hasher) *Repository {
	return &Repository{db: db, hasher: hasher}
}

// Create inserts a new user. The email is stored lowercase and the raw
// password is hashed exactly once. A unique-index violation maps to
// ErrDuplicateEmail; there is no advisory pre-check, the database constraint
// is the single serialization point for concurrent registrations.
func (r *Repository) Create(ctx context.Context, name, email, password string) (*User, error) {
	passwordHash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	dbUser := &database.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by case-insensitive email. The password hash
// column is excluded unless includePassword is set; only the login path asks
// for it.
func (r *Repository) GetByEmail(ctx context.Context, email string, includePassword bool) (*User, error) {
	dbUser := new(database.User)
	q := r.db.NewSelect().
		Model(dbUser).
		Where("lower(email) = ?", normalizeEmail(email))

	if !includePassword {
		q = q.ExcludeColumn("password_hash")
	}

	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// List returns all users sorted by name ascending, projected down to the
// public columns. The projection happens in the column selection, not after
// the fact.
func (r *Repository) List(ctx context.Context) ([]PublicUser, error) {
	var dbUsers []database.User
	err := r.db.NewSelect().
		Model(&dbUsers).
		Column("id", "name", "created_at").
		OrderExpr("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]PublicUser, 0, len(dbUsers))
	for _, dbu := range dbUsers {
		users = append(users, PublicUser{
			ID:        dbu.ID,
			Name:      dbu.Name,
			CreatedAt: dbu.CreatedAt,
		})
	}

	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		Name:         dbu.Name,
		Email:        dbu.Email,
		PasswordHash: dbu.PasswordHash,
		Active:       dbu.Active,
		CreatedAt:    dbu.CreatedAt,
	}
}
