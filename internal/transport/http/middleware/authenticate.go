package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/transport/http/apierrors"
	"github.com/mclhub/poke-board/internal/transport/http/authctx"
)

// accessCookie — имя cookie с access-токеном.
const accessCookie = "accessToken"

// TokenVerifier проверяет access-токен и возвращает идентичность запроса.
type TokenVerifier interface {
	ExtractPrincipal(ctx context.Context, accessToken string) (*models.Principal, error)
}

// Authenticate — гейт аутентификации. Запрос без токена или с непрошедшим
// проверку токеном продолжается анонимным; валидный токен кладёт principal
// в контекст. Отказ здесь не является ошибкой: решение об отклонении
// принимают RequireAuth/RequireRole на защищённых маршрутах.
func Authenticate(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := v.ExtractPrincipal(r.Context(), token)
			if err != nil {
				// Причина отказа остаётся во внутреннем логе сервиса.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(authctx.Into(r.Context(), p)))
		})
	}
}

// RequireAuth отклоняет анонимные запросы с 401.
func RequireAuth() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := authctx.From(r.Context()); !ok {
				apierrors.WriteStatus(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole отклоняет запросы без указанной роли с 403.
// Подразумевает, что RequireAuth уже стоит выше по цепочке.
func RequireRole(role string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := authctx.From(r.Context())
			if !ok {
				apierrors.WriteStatus(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !p.HasRole(role) {
				apierrors.WriteStatus(w, http.StatusForbidden, fmt.Sprintf("role %s required", role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken достаёт access-токен из cookie либо из Authorization: Bearer.
// Cookie имеет приоритет: основной клиент — браузерный SPA.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(accessCookie); err == nil && c.Value != "" {
		return c.Value
	}

	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}

	return ""
}
