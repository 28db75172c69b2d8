package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mclhub/poke-board/internal/pkg/log"
	"github.com/mclhub/poke-board/internal/service/auth"
	"github.com/mclhub/poke-board/internal/transport/http/apierrors"
	"github.com/mclhub/poke-board/internal/transport/http/authctx"
)

type signUpRequest struct {
	Userid   string `json:"userid"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Birth    string `json:"birth,omitempty"`
}

type loginRequest struct {
	Userid   string `json:"userid"`
	Password string `json:"password"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

type reissueResponse struct {
	Message string `json:"message"`
}

// SignUp обрабатывает POST /auth/signup: регистрация локального аккаунта
// с немедленным входом.
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var birth *time.Time
	if req.Birth != "" {
		parsed, err := time.Parse("2006-01-02", req.Birth)
		if err != nil {
			apierrors.WriteStatus(w, http.StatusBadRequest, "birth must be YYYY-MM-DD")
			return
		}
		birth = &parsed
	}

	m, err := h.Auth.SignUp(r.Context(), req.Userid, req.Password, req.Nickname, birth)
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
	writeJSON(w, http.StatusCreated, memberToView(m))
}

// Login обрабатывает POST /auth/login: локальный вход по userid+паролю.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Auth.Login(r.Context(), req.Userid, req.Password)
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
	writeJSON(w, http.StatusOK, memberToView(m))
}

// Reissue обрабатывает POST /auth/reissue: ротация пары токенов по
// refresh-cookie. Скомпрометированная или устаревшая сессия гасится:
// cookie затираются, клиент уходит на повторный вход.
func (h *Handlers) Reissue(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookie)
	if err != nil || c.Value == "" {
		apierrors.WriteStatus(w, http.StatusUnauthorized, "refresh token required")
		return
	}

	pair, err := h.Auth.Reissue(r.Context(), c.Value)
	if err != nil {
		if errors.Is(err, auth.ErrSessionMismatch) ||
			errors.Is(err, auth.ErrTokenExpired) ||
			errors.Is(err, auth.ErrInvalidToken) {
			clearTokenCookies(w)
		}

		apierrors.WriteError(w, r, err)
		return
	}

	setTokenCookies(w, pair)
	writeJSON(w, http.StatusOK, reissueResponse{Message: "token pair reissued"})
}

// Logout обрабатывает POST /auth/logout. Маршрут публичный: выход обязан
// пройти и с истёкшим access-токеном, поэтому cookie затираются безусловно.
// Отзыв refresh-токена — best-effort: subject берётся из principal, а при его
// отсутствии — из refresh-cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	subject := ""
	if p, ok := authctx.From(r.Context()); ok {
		subject = p.Subject
	} else if c, err := r.Cookie(refreshCookie); err == nil && c.Value != "" {
		if s, err := h.Auth.RefreshSubject(r.Context(), c.Value); err == nil {
			subject = s
		}
	}

	if subject != "" {
		if err := h.Auth.Revoke(r.Context(), subject); err != nil &&
			!errors.Is(err, auth.ErrMemberNotFound) {
			log.From(r.Context()).Warn("logout_revoke_failed",
				slog.String("err", err.Error()),
			)
		}
	}

	clearTokenCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me обрабатывает GET /auth/me: профиль текущего участника.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	m, err := h.Auth.Me(r.Context(), p.Subject)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, memberToView(m))
}

// CheckUserid обрабатывает GET /auth/check-userid?userid=...
func (h *Handlers) CheckUserid(w http.ResponseWriter, r *http.Request) {
	available, err := h.Auth.UseridAvailable(r.Context(), r.URL.Query().Get("userid"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{Available: available})
}

// CheckNickname обрабатывает GET /auth/check-nickname?nickname=...
func (h *Handlers) CheckNickname(w http.ResponseWriter, r *http.Request) {
	available, err := h.Auth.NicknameAvailable(r.Context(), r.URL.Query().Get("nickname"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{Available: available})
}
