package handlers

import (
	"net/http"
	"time"

	"github.com/mclhub/poke-board/internal/models"
)

// Имена cookie с токенами.
const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// Атрибуты фиксированы: HttpOnly закрывает токены от скриптов,
// SameSite=None + Secure нужны для cross-site запросов SPA с credentials.
func tokenCookie(name, value string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// setTokenCookies выставляет обе cookie по выданной паре токенов.
func setTokenCookies(w http.ResponseWriter, pair *models.TokenPair) {
	http.SetCookie(w, tokenCookie(accessCookie, pair.AccessToken, pair.AccessExpiresAt))
	http.SetCookie(w, tokenCookie(refreshCookie, pair.RefreshToken, pair.RefreshExpiresAt))
}

// clearTokenCookies затирает обе cookie (logout).
func clearTokenCookies(w http.ResponseWriter) {
	expire := func(name string) *http.Cookie {
		return &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		}
	}

	http.SetCookie(w, expire(accessCookie))
	http.SetCookie(w, expire(refreshCookie))
}
