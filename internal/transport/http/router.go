// Package http собирает REST-маршрутизатор сервиса: middleware-цепочку,
// публичные и защищённые маршруты.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mclhub/poke-board/internal/models"
	"github.com/mclhub/poke-board/internal/transport/http/handlers"
	"github.com/mclhub/poke-board/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// BasePath — префикс API, например "/api/v1"; пустой — роуты на корне.
	BasePath string
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, verifier middleware.TokenVerifier, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний). CORS стоит до Authenticate:
	// заголовки нужны и на 401/403.
	root.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(opts.Logger),
		middleware.CORS(h.CORS),
		middleware.Authenticate(verifier),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth: публичные маршруты входа и служебные проверки.
	r.Post("/auth/signup", h.SignUp)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/reissue", h.Reissue)
	// Logout намеренно вне RequireAuth: выход обязан пройти
	// и с истёкшим access-токеном.
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/check-userid", h.CheckUserid)
	r.Get("/auth/check-nickname", h.CheckNickname)

	// oauth: code flow через зарегистрированных провайдеров.
	r.Get("/oauth/{provider}/login", h.OAuthLogin)
	r.Get("/oauth/{provider}/callback", h.OAuthCallback)

	// Публичное чтение.
	r.Get("/boards", h.ListBoards)
	r.Get("/boards/{idx}", h.GetBoard)
	r.Get("/samples", h.ListSamples)
	r.Get("/samples/best", h.BestSamples)
	r.Get("/samples/{idx}", h.GetSample)
	r.Get("/comments", h.ListComments)
	r.Get("/comments/{id}/replies", h.ListReplies)

	// Маршруты, требующие аутентификации.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())

		r.Get("/auth/me", h.Me)

		r.Post("/boards", h.CreateBoard)
		r.Put("/boards/{idx}", h.UpdateBoard)
		r.Delete("/boards/{idx}", h.DeleteBoard)
		r.Post("/boards/{idx}/recommend", h.RecommendBoard)

		r.Get("/samples/my", h.MySamples)
		r.Get("/samples/liked", h.LikedSamples)
		r.Post("/samples", h.CreateSample)
		r.Put("/samples/{idx}", h.UpdateSample)
		r.Delete("/samples/{idx}", h.DeleteSample)
		r.Post("/samples/{idx}/like", h.LikeSample)

		r.Post("/comments", h.CreateComment)
		r.Put("/comments/{id}", h.UpdateComment)
		r.Delete("/comments/{id}", h.DeleteComment)

		r.Get("/members/me", h.Profile)
		r.Patch("/members/me/nickname", h.UpdateNickname)
		r.Patch("/members/me/birth", h.UpdateBirth)
		r.Put("/members/me/password", h.ChangePassword)
		r.Post("/members/me/avatar/upload-url", h.AvatarUploadURL)
		r.Post("/members/me/avatar/confirm", h.ConfirmAvatar)
	})

	// Маршруты администратора.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))

		r.Post("/admin/boards/delete", h.DeleteBoardsBatch)
	})
}
