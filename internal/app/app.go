// Package app wires repositories, services and handlers into the HTTP server.
package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/tableboard/docs"
	"github.com/fkhayef/tableboard/internal/config"
	"github.com/fkhayef/tableboard/internal/group"
	"github.com/fkhayef/tableboard/internal/grouprequest"
	"github.com/fkhayef/tableboard/internal/notification"
	"github.com/fkhayef/tableboard/internal/session"
	"github.com/fkhayef/tableboard/internal/user"
	"github.com/fkhayef/tableboard/pkg/apperror"
	"github.com/fkhayef/tableboard/pkg/logging"
	mw "github.com/fkhayef/tableboard/pkg/middleware"
	"github.com/fkhayef/tableboard/pkg/password"
	"github.com/fkhayef/tableboard/pkg/response"
	"github.com/fkhayef/tableboard/pkg/validation"
)

const serviceName = "tableboard-http"

// NewRouter builds every feature on top of db and returns the root handler
func NewRouter(cfg *config.Config, db *sqlx.DB, logger *logging.Logger) http.Handler {
	validator := validation.New()
	hasher := password.NewHasher(cfg.BcryptCost)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, hasher)
	userHandler := user.NewHandler(userService, validator)

	// Session feature
	sessionRepo := session.NewRepository(db)
	sessionService := session.NewService(sessionRepo, userRepo, hasher, cfg.TokenTTL)
	sessionHandler := session.NewHandler(sessionService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, userRepo)
	groupHandler := group.NewHandler(groupService, validator)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, userRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Membership request feature
	requestRepo := grouprequest.NewRepository(db)
	requestService := grouprequest.NewService(requestRepo, groupRepo, notificationService)
	requestHandler := grouprequest.NewHandler(requestService)

	auth := mw.RequireAuth(sessionService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(r.Context(), w, apperror.NotFound("resource not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(r.Context(), w, apperror.New(http.StatusMethodNotAllowed, "method not allowed"))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	if cfg.SwaggerEnabled {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	r.Mount("/users", userHandler.Routes(auth))
	r.Mount("/sessions", sessionHandler.Routes(auth))

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Mount("/groups", groupHandler.Routes(requestHandler.Routes()))
		r.Mount("/notifications", notificationHandler.Routes())
	})

	return mw.RequestTracing(serviceName)(r)
}

// NewHTTPServer returns a server for the router with the configured timeouts
func NewHTTPServer(cfg *config.Config, db *sqlx.DB, logger *logging.Logger) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      NewRouter(cfg, db, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
