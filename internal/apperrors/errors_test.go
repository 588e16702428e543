package apperrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("taken"), http.StatusBadRequest},
		{Auth("no token"), http.StatusUnauthorized},
		{NotFound("gone"), http.StatusNotFound},
		{&Error{Kind: KindInternal, Message: "boom"}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.status, tc.err.HTTPStatus(), "kind %d", tc.err.Kind)
	}
}

func TestWriteError(t *testing.T) {
	t.Run("taxonomy error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, NotFound("No such workout"))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"error":"No such workout"}`, rec.Body.String())
	})

	t.Run("empty fields are reported", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, ValidationFields("Please fill in all the fields", []string{"title", "reps"}))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"Please fill in all the fields","emptyFields":["title","reps"]}`, rec.Body.String())
	})

	t.Run("unknown error is masked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, errors.New("pg: connection refused"))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
	})
}
