// Package handlers содержит REST-обработчики всех эндпойнтов API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mclhub/poke-board/internal/config"
	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/oauth"
	"github.com/mclhub/poke-board/internal/service/auth"
	"github.com/mclhub/poke-board/internal/service/boards"
	"github.com/mclhub/poke-board/internal/service/comments"
	"github.com/mclhub/poke-board/internal/service/members"
	"github.com/mclhub/poke-board/internal/service/samples"
	"github.com/mclhub/poke-board/internal/transport/http/apierrors"
	"github.com/mclhub/poke-board/internal/transport/http/authctx"
)

// Handlers агрегирует зависимости HTTP-слоя: сервисы и конфигурацию.
type Handlers struct {
	Auth     *auth.Service
	Boards   *boards.Service
	Samples  *samples.Service
	Comments *comments.Service
	Members  *members.Service
	OAuth    *oauth.Registry

	CORS   config.CORSConfig
	OAuth2 config.OAuthConfig
}

// Deps — зависимости конструктора.
type Deps struct {
	Auth     *auth.Service
	Boards   *boards.Service
	Samples  *samples.Service
	Comments *comments.Service
	Members  *members.Service
	OAuth    *oauth.Registry
	CORS     config.CORSConfig
	OAuthCfg config.OAuthConfig
}

func New(d Deps) *Handlers {
	return &Handlers{
		Auth:     d.Auth,
		Boards:   d.Boards,
		Samples:  d.Samples,
		Comments: d.Comments,
		Members:  d.Members,
		OAuth:    d.OAuth,
		CORS:     d.CORS,
		OAuth2:   d.OAuthCfg,
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// principal достаёт идентичность запроса; отсутствие закрывается 401
// (защищённые маршруты дополнительно прикрыты RequireAuth).
func principal(w http.ResponseWriter, r *http.Request) (*models.Principal, bool) {
	p, ok := authctx.From(r.Context())
	if !ok {
		apierrors.WriteStatus(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	return p, true
}

// idxParam разбирает числовой путь-параметр.
func idxParam(r *http.Request, name string) (int64, bool) {
	idx, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || idx <= 0 {
		return 0, false
	}

	return idx, true
}

// listParams разбирает offset-параметры страницы из query
// (границы выправляет сервисный слой).
func listParams(r *http.Request) models.ListParams {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	size, _ := strconv.ParseInt(q.Get("size"), 10, 32)

	return models.ListParams{
		Page: int32(page),
		Size: int32(size),
	}
}

// commentListParams разбирает курсорные параметры страницы из query.
func commentListParams(r *http.Request) models.CommentListParams {
	q := r.URL.Query()

	size, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)

	return models.CommentListParams{
		PageSize:  int32(size),
		PageToken: q.Get("page_token"),
	}
}
