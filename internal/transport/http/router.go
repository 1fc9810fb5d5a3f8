package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-contacts-api/internal/application/auth"
	"github.com/go-contacts-api/internal/application/contact"
	"github.com/go-contacts-api/internal/application/user"
	"github.com/go-contacts-api/internal/config"
	"github.com/go-contacts-api/internal/transport/http/handler"
	appmiddleware "github.com/go-contacts-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(appmiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:    deps.UserRepo,
		JWTProvider: deps.JWTProvider,
		Mailer:      deps.Mailer,
		BaseURL:     cfg.AppBaseURL,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		ObjectStore: deps.ObjectStore,
		Resizer:     deps.Resizer,
	})
	contactSvc := contact.NewService(deps.ContactRepo)

	healthH := handler.NewHealthHandler(deps.UserRepo)
	userH := handler.NewUserHandler(authSvc, userSvc, cfg.UploadTmpDir, cfg.MaxAvatarBytes)
	contactH := handler.NewContactHandler(contactSvc)

	authMw := appmiddleware.Auth(deps.JWTProvider, deps.UserRepo)
	ownerMw := appmiddleware.ContactOwner(contactSvc)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		appmiddleware.WriteJSONError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		appmiddleware.WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", healthH.Ping)

	r.Route("/api/auth", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Post("/users/register", userH.Register)
		r.Post("/users/login", userH.Login)
		r.Get("/users/verify/{token}", userH.Verify)
		r.Post("/users/verify", userH.ResendVerification)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/users/logout", userH.Logout)
			r.Get("/users/current", userH.Current)
			r.Patch("/user", userH.UpdateSubscription)
			r.Patch("/users/avatars", userH.UpdateAvatar)
		})
	})

	r.Route("/api/contacts", func(r chi.Router) {
		r.Use(authMw)

		r.Get("/", contactH.List)
		r.Post("/", contactH.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(ownerMw)

			r.Get("/", contactH.Get)
			r.Put("/", contactH.Replace)
			r.Delete("/", contactH.Delete)
			r.Patch("/favorite", contactH.SetFavorite)
		})
	})

	return r
}
