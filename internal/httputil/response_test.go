package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvanek/go-auth-api/internal/apperr"
)

func serve(t *testing.T, fn HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	Handle(fn).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestHandle_SuccessWritesNothingExtra(t *testing.T) {
	t.Parallel()

	rec := serve(t, func(w http.ResponseWriter, r *http.Request) error {
		RespondJSON(w, map[string]string{"status": "success"}, http.StatusOK)
		return nil
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHandle_MapsTypedErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantEnv    string
	}{
		{"validation", apperr.Validation(map[string]string{"email": "Invalid email address."}), http.StatusBadRequest, "ValidationError", "fail"},
		{"invalid user", apperr.InvalidUser(), http.StatusUnauthorized, "InvalidUserError", "fail"},
		{"authentication", apperr.Authentication(), http.StatusUnauthorized, "AuthenticationError", "fail"},
		{"duplicate email", apperr.DuplicateEmail(), http.StatusConflict, "DuplicateEmailError", "fail"},
		{"not found", apperr.NotFound(), http.StatusNotFound, "NotFoundError", "fail"},
		{"too many requests", apperr.TooManyRequests("slow down"), http.StatusTooManyRequests, "TooManyRequestsError", "fail"},
		{"unclassified", errors.New("pq: connection refused"), http.StatusInternalServerError, "InternalError", "error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, func(w http.ResponseWriter, r *http.Request) error {
				return tc.err
			})
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantEnv, body["status"])
			assert.Equal(t, tc.wantKind, body["error"])
		})
	}
}

func TestHandle_ValidationFieldsSerialized(t *testing.T) {
	t.Parallel()

	rec := serve(t, func(w http.ResponseWriter, r *http.Request) error {
		return apperr.Validation(map[string]string{
			"email":    "Invalid email address.",
			"password": "Password is required.",
		})
	})

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	violations := body["errors"].(map[string]any)
	assert.Equal(t, "Invalid email address.", violations["email"])
	assert.Equal(t, "Password is required.", violations["password"])
}

func TestHandle_InternalCauseNeverSerialized(t *testing.T) {
	t.Parallel()

	rec := serve(t, func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("password_hash column missing")
	})

	assert.NotContains(t, rec.Body.String(), "password_hash")
	assert.Contains(t, rec.Body.String(), "Something went wrong.")
	// No errors map on non-validation failures
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "errors")
}
