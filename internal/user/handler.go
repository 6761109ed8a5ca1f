package user

import (
	"context"
	"net/http"

	"github.com/dvanek/go-auth-api/internal/httputil"
)

// Lister is the read side of the store needed by the listing endpoint
type Lister interface {
	List(ctx context.Context) ([]PublicUser, error)
}

// Handler contains HTTP handlers for user endpoints
type Handler struct {
	store Lister
}

func NewHandler(store Lister) *Handler {
	return &Handler{store: store}
}

// ListResponse is the users listing envelope
type ListResponse struct {
	Status string   `json:"status"`
	Data   ListData `json:"data"`
}

type ListData struct {
	Users []PublicUser `json:"users"`
}

// List handles the protected users listing
// @Summary      List users
// @Description  List all users sorted by name. Email and active flag are never included.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ListResponse
// @Failure      401 {object} map[string]string "Unauthorized"
// @Router       /api/users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.store.List(r.Context())
	if err != nil {
		return err
	}

	httputil.RespondJSON(w, ListResponse{
		Status: "success",
		Data:   ListData{Users: users},
	}, http.StatusOK)
	return nil
}
