package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dvanek/go-auth-api/internal/apperr"
	"github.com/dvanek/go-auth-api/internal/httputil"
	"github.com/dvanek/go-auth-api/internal/logging"
	"github.com/dvanek/go-auth-api/internal/user"
	"github.com/dvanek/go-auth-api/internal/validate"
)

// Handler contains HTTP handlers for authentication endpoints. Handlers
// return errors instead of writing error bodies; the httputil pipeline does
// the response shaping.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in auth responses. No password field exists
// on this type, so it can never leak.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is the success envelope for register and login
type AuthResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	Data   UserData `json:"data"`
}

type UserData struct {
	User UserResponse `json:"user"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new user account and receive an identity token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration payload"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} map[string]string "Validation error"
// @Failure      409 {object} map[string]string "Email already exists"
// @Router       /api/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "Invalid request body."})
	}

	if err := validate.ValidateAndCreateError(RegisterSchema, map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	}); err != nil {
		return err
	}

	newUser, token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return apperr.DuplicateEmail()
		}
		return err
	}

	logger.Info("user registered", "user_id", newUser.ID, "email", newUser.Email)

	httputil.RespondJSON(w, AuthResponse{
		Status: "success",
		Token:  token,
		Data:   UserData{User: toUserResponse(newUser)},
	}, http.StatusCreated)
	return nil
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive an identity token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} map[string]string "Validation error"
// @Failure      401 {object} map[string]string "Invalid credentials"
// @Router       /api/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "Invalid request body."})
	}

	if err := validate.ValidateAndCreateError(LoginSchema, map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}); err != nil {
		return err
	}

	existing, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return apperr.InvalidUser()
		}
		return err
	}

	logger.Info("user logged in", "user_id", existing.ID)

	httputil.RespondJSON(w, AuthResponse{
		Status: "success",
		Token:  token,
		Data:   UserData{User: toUserResponse(existing)},
	}, http.StatusOK)
	return nil
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
