// Package apierrors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает ошибку бизнес-логики (сентинелы сервисных пакетов),
// на выход даёт корректный HTTP-статус и плоское тело
// {"error": "<статус>", "message": "<безопасное описание>"}.
package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mclhub/poke-board/internal/oauth"
	"github.com/mclhub/poke-board/internal/service/auth"
	"github.com/mclhub/poke-board/internal/service/boards"
	"github.com/mclhub/poke-board/internal/service/comments"
	"github.com/mclhub/poke-board/internal/service/members"
	"github.com/mclhub/poke-board/internal/service/samples"
)

// ErrorResponse — единый формат ошибки для фронта.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// mapping — таблица сентинел -> (HTTP-статус, безопасное сообщение).
// Детали внутренних ошибок наружу не отдаются.
var mapping = []struct {
	target  error
	status  int
	message string
}{
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
	{auth.ErrTokenExpired, http.StatusUnauthorized, "token expired"},
	{auth.ErrSessionMismatch, http.StatusUnauthorized, "session is no longer valid"},
	{auth.ErrUseridTaken, http.StatusConflict, "userid already taken"},
	{auth.ErrNicknameTaken, http.StatusConflict, "nickname already taken"},
	{auth.ErrMemberNotFound, http.StatusNotFound, "member not found"},
	{auth.ErrWeakPassword, http.StatusBadRequest, "password is too weak"},
	{auth.ErrInvalidArgument, http.StatusBadRequest, "invalid argument"},

	{boards.ErrNotFound, http.StatusNotFound, "board not found"},
	{boards.ErrPermissionDenied, http.StatusForbidden, "permission denied"},
	{boards.ErrInvalidArgument, http.StatusBadRequest, "invalid argument"},
	{boards.ErrMemberNotFound, http.StatusUnauthorized, "unknown account"},

	{samples.ErrNotFound, http.StatusNotFound, "sample not found"},
	{samples.ErrPermissionDenied, http.StatusForbidden, "permission denied"},
	{samples.ErrInvalidArgument, http.StatusBadRequest, "invalid argument"},
	{samples.ErrMemberNotFound, http.StatusUnauthorized, "unknown account"},

	{comments.ErrNotFound, http.StatusNotFound, "comment not found"},
	{comments.ErrPermissionDenied, http.StatusForbidden, "permission denied"},
	{comments.ErrInvalidArgument, http.StatusBadRequest, "invalid argument"},
	{comments.ErrInvalidCursor, http.StatusBadRequest, "invalid page token"},
	{comments.ErrMaxDepthExceeded, http.StatusBadRequest, "max comment depth exceeded"},
	{comments.ErrMemberNotFound, http.StatusUnauthorized, "unknown account"},

	{members.ErrMemberNotFound, http.StatusUnauthorized, "unknown account"},
	{members.ErrNicknameTaken, http.StatusConflict, "nickname already taken"},
	{members.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{members.ErrLocalOnly, http.StatusBadRequest, "operation requires local account"},
	{members.ErrInvalidArgument, http.StatusBadRequest, "invalid argument"},
	{members.ErrUploadNotFound, http.StatusNotFound, "upload not found"},

	{oauth.ErrUnknownProvider, http.StatusNotFound, "unknown oauth provider"},
	{oauth.ErrExchangeFailed, http.StatusUnauthorized, "oauth exchange failed"},
	{oauth.ErrProfileFetchFailed, http.StatusBadGateway, "oauth provider unavailable"},
}

// ToHTTP конвертирует ошибку бизнес-логики в HTTP-статус и тело ответа.
// Неизвестные ошибки схлопываются в 500/internal error.
func ToHTTP(err error) (int, ErrorResponse) {
	for _, m := range mapping {
		if errors.Is(err, m.target) {
			return m.status, ErrorResponse{
				Error:   http.StatusText(m.status),
				Message: m.message,
			}
		}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Error:   http.StatusText(http.StatusInternalServerError),
		Message: "internal error",
	}
}

// WriteError — хелпер для HTTP-хендлеров: пишет статус и тело по ошибке.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	WriteStatus(w, status, resp.Message)
}

// WriteStatus пишет ответ об ошибке с явным статусом и сообщением.
func WriteStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
