package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mclhub/poke-board/internal/oauth"
	"github.com/mclhub/poke-board/internal/pkg/log"
	"github.com/mclhub/poke-board/internal/transport/http/apierrors"
)

// stateCookie хранит CSRF-state между redirect на провайдера и callback.
const stateCookie = "oauthState"

// stateCookieMaxAge — окно, за которое пользователь должен завершить
// авторизацию у провайдера.
const stateCookieMaxAge = 10 * 60

// OAuthLogin обрабатывает GET /oauth/{provider}/login: генерирует state,
// фиксирует его в cookie и уводит пользователя на страницу авторизации.
func (h *Handlers) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	p, err := h.OAuth.Provider(chi.URLParam(r, "provider"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	http.Redirect(w, r, p.AuthCodeURL(state), http.StatusFound)
}

// OAuthCallback обрабатывает GET /oauth/{provider}/callback: проверяет
// state, меняет код на токен провайдера, получает профиль и создаёт
// либо находит аккаунт. По успеху ставит cookie с парой токенов и
// редиректит на SPA.
func (h *Handlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	lg := log.From(r.Context())

	p, err := h.OAuth.Provider(chi.URLParam(r, "provider"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q := r.URL.Query()

	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value == "" || c.Value != q.Get("state") {
		lg.Warn("oauth_state_mismatch",
			slog.String("provider", p.Name),
		)
		apierrors.WriteStatus(w, http.StatusUnauthorized, "oauth state mismatch")
		return
	}

	// State одноразовый.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	code := q.Get("code")
	if code == "" {
		apierrors.WriteStatus(w, http.StatusBadRequest, "authorization code required")
		return
	}

	token, err := p.Exchange(r.Context(), code)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ident, err := p.FetchIdentity(r.Context(), token)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	m, err := h.Auth.ResolveOrCreate(r.Context(), ident)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	pair, err := h.Auth.IssueSession(r.Context(), m)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	setTokenCookies(w, pair)

	// SPA узнаёт об успехе из query, сами токены остаются в HttpOnly cookie.
	redirect := h.OAuth2.FrontendCallbackURL +
		"?nickname=" + url.QueryEscape(m.Nickname) +
		"&token=true"

	http.Redirect(w, r, redirect, http.StatusFound)
}
