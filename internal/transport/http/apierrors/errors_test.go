package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mclhub/poke-board/internal/oauth"
	"github.com/mclhub/poke-board/internal/service/auth"
	"github.com/mclhub/poke-board/internal/service/boards"
	"github.com/mclhub/poke-board/internal/service/comments"
	"github.com/mclhub/poke-board/internal/service/members"
	"github.com/mclhub/poke-board/internal/service/samples"
)

func TestToHTTP_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"auth invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"auth invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"auth token expired", auth.ErrTokenExpired, http.StatusUnauthorized},
		{"auth session mismatch", auth.ErrSessionMismatch, http.StatusUnauthorized},
		{"auth userid taken", auth.ErrUseridTaken, http.StatusConflict},
		{"auth nickname taken", auth.ErrNicknameTaken, http.StatusConflict},
		{"auth member not found", auth.ErrMemberNotFound, http.StatusNotFound},
		{"auth weak password", auth.ErrWeakPassword, http.StatusBadRequest},
		{"auth invalid argument", auth.ErrInvalidArgument, http.StatusBadRequest},

		{"board not found", boards.ErrNotFound, http.StatusNotFound},
		{"board permission denied", boards.ErrPermissionDenied, http.StatusForbidden},
		{"board invalid argument", boards.ErrInvalidArgument, http.StatusBadRequest},

		{"sample not found", samples.ErrNotFound, http.StatusNotFound},
		{"sample permission denied", samples.ErrPermissionDenied, http.StatusForbidden},

		{"comment not found", comments.ErrNotFound, http.StatusNotFound},
		{"comment invalid cursor", comments.ErrInvalidCursor, http.StatusBadRequest},
		{"comment max depth", comments.ErrMaxDepthExceeded, http.StatusBadRequest},

		{"member nickname taken", members.ErrNicknameTaken, http.StatusConflict},
		{"member local only", members.ErrLocalOnly, http.StatusBadRequest},
		{"member upload not found", members.ErrUploadNotFound, http.StatusNotFound},

		{"oauth unknown provider", oauth.ErrUnknownProvider, http.StatusNotFound},
		{"oauth exchange failed", oauth.ErrExchangeFailed, http.StatusUnauthorized},
		{"oauth profile fetch failed", oauth.ErrProfileFetchFailed, http.StatusBadGateway},

		{"unknown error", errors.New("pq: connection reset"), http.StatusInternalServerError},
		{"nil-adjacent wrapped unknown", fmt.Errorf("ctx: %w", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := ToHTTP(tc.err)
			require.Equal(t, tc.status, status)
			require.Equal(t, http.StatusText(tc.status), resp.Error)
			require.NotEmpty(t, resp.Message)
		})
	}
}

func TestToHTTP_WrappedSentinel(t *testing.T) {
	// Сервисы оборачивают сентинелы через fmt.Errorf("%s: %w", op, err).
	err := fmt.Errorf("service.auth.Reissue: %w", auth.ErrSessionMismatch)

	status, resp := ToHTTP(err)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "session is no longer valid", resp.Message)
}

func TestToHTTP_InternalDetailsDoNotLeak(t *testing.T) {
	_, resp := ToHTTP(errors.New("pg: password authentication failed for user admin"))
	require.Equal(t, "internal error", resp.Message)
	require.NotContains(t, resp.Error, "password")
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteError(rr, req, fmt.Errorf("wrap: %w", boards.ErrNotFound))

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, http.StatusText(http.StatusNotFound), body.Error)
	require.Equal(t, "board not found", body.Message)
}

func TestWriteStatus(t *testing.T) {
	rr := httptest.NewRecorder()

	WriteStatus(rr, http.StatusUnauthorized, "authentication required")

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "Unauthorized", body.Error)
	require.Equal(t, "authentication required", body.Message)
}
