package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_PreservesStatusAndBody(t *testing.T) {
	t.Parallel()

	handler := RequestLogger(NewLogger(true))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("gone"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "gone", rec.Body.String())
}

func TestRequestLogger_InjectsRequestLogger(t *testing.T) {
	t.Parallel()

	var seen *Logger
	handler := RequestLogger(NewLogger(true))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(LoggerContextKey).(*Logger)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, seen)
}

func TestStatusWriter_FirstWriteHeaderWins(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	sw.WriteHeader(http.StatusBadGateway)
	sw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, http.StatusBadGateway, sw.status)
}

func TestStatusWriter_ImplicitOKOnWrite(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	_, err := sw.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, sw.status)
}

func TestGetLoggerFromContext_Fallback(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, GetLoggerFromContext(t.Context()))
}
