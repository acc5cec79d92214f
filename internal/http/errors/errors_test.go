package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/events-client/internal/api"
	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
	"github.com/pribylovaa/events-client/internal/screens"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_Nil(t *testing.T) {
	t.Parallel()

	status, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "internal", resp.Error.Code)
}

func TestToHTTP_Mapping(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"deadline_inside_unavailable", fmt.Errorf("%w: %w", api.ErrUnavailable, context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"invalid_argument", fmt.Errorf("id: %w", ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"invalid_query", fmt.Errorf("op: %w", screens.ErrInvalidQuery), http.StatusBadRequest, "invalid_argument"},
		{"no_session", screens.ErrNoSession, http.StatusBadRequest, "invalid_argument"},
		{"invalid_descriptor", paging.ErrInvalidDescriptor, http.StatusBadRequest, "invalid_argument"},
		{"upstream_bad_request", &api.StatusError{Status: 400, Err: api.ErrBadRequest}, http.StatusBadRequest, "invalid_argument"},
		{"unauthorized", &api.StatusError{Status: 401, Err: fetch.ErrUnauthorized}, http.StatusUnauthorized, "unauthenticated"},
		{"forbidden", &api.StatusError{Status: 403, Err: fetch.ErrForbidden}, http.StatusForbidden, "permission_denied"},
		{"not_found", fetch.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unknown_list", screens.ErrUnknownList, http.StatusNotFound, "not_found"},
		{"superseded", fmt.Errorf("wait: %w", fetch.ErrSuperseded), http.StatusConflict, "superseded"},
		{"closed", fetch.ErrClosed, http.StatusConflict, "session_closed"},
		{"conflict", api.ErrConflict, http.StatusConflict, "conflict"},
		{"no_request", fetch.ErrNoRequest, http.StatusPreconditionFailed, "no_request"},
		{"unavailable", api.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{"failure_network", &fetch.Failure{Reason: fetch.ReasonNetworkOrServer, Err: errors.New("x")}, http.StatusServiceUnavailable, "unavailable"},
		{"failure_not_found", &fetch.Failure{Reason: fetch.ReasonNotFound, Err: fetch.ErrNotFound}, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, resp := ToHTTP(tc.err)
			require.Equal(t, tc.status, status)
			require.Equal(t, tc.code, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_ValidationFields(t *testing.T) {
	t.Parallel()

	err := models.EventForm{}.Validate()
	require.Error(t, err)

	status, resp := ToHTTP(fmt.Errorf("handler: %w", err))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "validation_failed", resp.Error.Code)
	require.NotEmpty(t, resp.Error.Fields)
	require.Equal(t, "title", resp.Error.Fields[0].Field)
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rr := httptest.NewRecorder()

	WriteError(rr, req, fetch.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "not_found", env.Error.Code)
	require.Equal(t, "rid-1", env.Error.RequestID)
	require.Empty(t, env.Error.Fields)
}
