package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"volunteerhub/internal/delivery/http/controllers"
	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
)

// RouterConfig carries the controllers and settings NewRouter wires together.
type RouterConfig struct {
	Logger         *slog.Logger
	Authenticator  middleware.Authenticator
	Auth           *controllers.AuthController
	Events         *controllers.EventController
	Users          *controllers.UserController
	StaticDir      string
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes.
// Every /api/ route except register and login requires a bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	protect := middleware.RequireAuth(cfg.Authenticator, cfg.Logger)
	admin := func(h http.HandlerFunc) http.Handler {
		return protect(middleware.RequireEventManager(h))
	}
	user := func(h http.HandlerFunc) http.Handler {
		return protect(h)
	}

	// Auth
	mux.HandleFunc("POST /api/auth/register", cfg.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", cfg.Auth.Login)

	// Events
	mux.Handle("GET /api/events", user(cfg.Events.List))
	mux.Handle("POST /api/events", admin(cfg.Events.Create))
	mux.Handle("GET /api/events/{id}", user(cfg.Events.Get))
	mux.Handle("POST /api/events/{id}/register", user(cfg.Events.Register))
	mux.Handle("POST /api/events/{id}/unregister", user(cfg.Events.Unregister))
	mux.Handle("POST /api/events/{id}/complete", admin(cfg.Events.Complete))

	// Users
	mux.Handle("POST /api/user/edit", user(cfg.Users.Edit))
	mux.Handle("GET /api/user/{id}/events/attending", user(cfg.Users.Attending))
	mux.Handle("GET /api/user/{id}/events/past", user(cfg.Users.Past))

	mux.Handle("/api/", user(apiNotFound))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Single-page client
	mux.Handle("/", newSPAHandler(cfg.StaticDir))

	return middleware.LoggingMiddleware(cfg.Logger, middleware.CORS(cfg.AllowedOrigins, mux))
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Not found")
}
