package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvanek/go-auth-api/internal/auth"
	"github.com/dvanek/go-auth-api/internal/config"
	"github.com/dvanek/go-auth-api/internal/crypt"
	"github.com/dvanek/go-auth-api/internal/logging"
	"github.com/dvanek/go-auth-api/internal/ratelimit"
	"github.com/dvanek/go-auth-api/internal/user"
)

// memoryStore implements the store contracts in memory so the full router
// can be exercised without Postgres.
type memoryStore struct {
	hasher *crypt.Hasher
	users  map[string]*user.User
}

func newMemoryStore(hasher *crypt.Hasher) *memoryStore {
	return &memoryStore{hasher: hasher, users: map[string]*user.User{}}
}

func (s *memoryStore) Create(_ context.Context, name, email, password string) (*user.User, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	if _, ok := s.users[key]; ok {
		return nil, user.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        key,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[key] = u

	out := *u
	return &out, nil
}

func (s *memoryStore) GetByEmail(_ context.Context, email string, includePassword bool) (*user.User, error) {
	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, user.ErrNotFound
	}

	out := *u
	if !includePassword {
		out.PasswordHash = ""
	}
	return &out, nil
}

func (s *memoryStore) List(context.Context) ([]user.PublicUser, error) {
	users := make([]user.PublicUser, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, user.PublicUser{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Env:         "prod", // no swagger route in tests
			RoutePrefix: "api",
		},
	}

	logger := logging.NewLogger(true)
	hasher := crypt.NewHasher(bcrypt.MinCost)
	store := newMemoryStore(hasher)

	tokens, err := auth.NewPasetoService([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	authService := auth.NewService(store, tokens, hasher, logger)
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(store)
	authMiddleware := auth.NewMiddleware(tokens)

	// Unreachable Redis: the limiter fails open, so routing is unaffected
	limiter := ratelimit.NewLimiter(
		redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 100, time.Hour, logger)

	return NewRouter(cfg, authHandler, userHandler, authMiddleware, limiter, logger)
}

func doRequest(t *testing.T, router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RegisterLoginListFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	// Register with mixed-case email
	rec := doRequest(t, router, http.MethodPost, "/api/register",
		`{"name":"Ann","email":"Ann@Example.com","password":"Abcdef1!"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered struct {
		Status string `json:"status"`
		Token  string `json:"token"`
		Data   struct {
			User map[string]any `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.Equal(t, "success", registered.Status)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "ann@example.com", registered.Data.User["email"])
	assert.NotContains(t, registered.Data.User, "password")

	// Login with the lowercased email
	rec = doRequest(t, router, http.MethodPost, "/api/login",
		`{"email":"ann@example.com","password":"Abcdef1!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loggedIn struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))
	require.NotEmpty(t, loggedIn.Token)

	// Listing without a token is rejected
	rec = doRequest(t, router, http.MethodGet, "/api/users", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var unauthorized map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unauthorized))
	assert.Equal(t, "AuthenticationError", unauthorized["error"])

	// Listing with the login token includes Ann but not her email
	rec = doRequest(t, router, http.MethodGet, "/api/users", "", loggedIn.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var listing struct {
		Data struct {
			Users []map[string]any `json:"users"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Data.Users, 1)
	assert.Equal(t, "Ann", listing.Data.Users[0]["name"])
	assert.NotContains(t, listing.Data.Users[0], "email")
	assert.NotContains(t, listing.Data.Users[0], "active")
}

func TestRouter_ListSortedByName(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	for _, payload := range []string{
		`{"name":"Zoe","email":"zoe@example.com","password":"Abcdef1!"}`,
		`{"name":"Ann","email":"ann@example.com","password":"Abcdef1!"}`,
		`{"name":"Bob","email":"bob@example.com","password":"Abcdef1!"}`,
	} {
		rec := doRequest(t, router, http.MethodPost, "/api/register", payload, "")
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, router, http.MethodPost, "/api/login",
		`{"email":"ann@example.com","password":"Abcdef1!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var loggedIn struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))

	rec = doRequest(t, router, http.MethodGet, "/api/users", "", loggedIn.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Data struct {
			Users []map[string]any `json:"users"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Data.Users, 3)
	assert.Equal(t, "Ann", listing.Data.Users[0]["name"])
	assert.Equal(t, "Bob", listing.Data.Users[1]["name"])
	assert.Equal(t, "Zoe", listing.Data.Users[2]["name"])
}

func TestRouter_UnmatchedRouteIs404(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NotFoundError", body["error"])
	assert.Equal(t, "fail", body["status"])
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"api is running"}`, rec.Body.String())
}

func TestRouter_SecurityHeadersApplied(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", "", "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
