package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/events-client/internal/http/handlers"
	"github.com/pribylovaa/events-client/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger        *slog.Logger
	Timeout       time.Duration
	SecureCookies bool
	BasePath      string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),                   // безопасно ловим паники
		middleware.RequestID(),                 // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger),        // кладём request-scoped логгер в контекст и логируем
		middleware.AuthBearer(),                // токен из Authorization или cookie для api-клиента
		middleware.Session(opts.SecureCookies), // идентификатор сессии экранов
	)

	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
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
	// lists
	r.Get("/lists/{list}", h.FetchList)
	r.Get("/lists/{list}/state", h.ListState)
	r.Post("/lists/{list}/retry", h.RetryList)

	// events
	r.Post("/events", h.CreateEvent)
	r.Get("/events/{id}", h.GetEvent)
	r.Get("/events/{id}/form", h.EditForm)
	r.Put("/events/{id}", h.UpdateEvent)
	r.Delete("/events/{id}", h.DeleteEvent)
	r.Post("/events/{id}/register", h.Register)

	// auth
	r.Post("/auth/login", h.Login)
	r.Post("/auth/register", h.SignUp)
	r.Post("/auth/logout", h.Logout)

	// users
	r.Get("/me", h.Me)
}
