package http

import (
	"net/http"

	"github.com/classroom-api/internal/application/auth"
	"github.com/classroom-api/internal/application/member"
	"github.com/classroom-api/internal/application/user"
	"github.com/classroom-api/internal/config"
	"github.com/classroom-api/internal/domain"
	"github.com/classroom-api/internal/infrastructure/dynamo"
	"github.com/classroom-api/internal/infrastructure/smtp"
	"github.com/classroom-api/internal/infrastructure/token"
	"github.com/classroom-api/internal/transport/http/handler"
	appmiddleware "github.com/classroom-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo          *dynamo.UserRepo
	AdministratorRepo *dynamo.MembershipRepo
	ProfessorRepo     *dynamo.MembershipRepo
	StudentRepo       *dynamo.MembershipRepo
	ConsumedTokenRepo *dynamo.ConsumedTokenRepo
	Mailer            smtp.Mailer
	TokenProvider     *token.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.TokenProvider)
	adminMw := appmiddleware.RequireAdmin(deps.UserRepo, deps.AdministratorRepo)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:     deps.UserRepo,
		ConsumedRepo: deps.ConsumedTokenRepo,
		Mailer:       deps.Mailer,
		Tokens:       deps.TokenProvider,
	})
	userSvc := user.NewService(deps.UserRepo)
	adminSvc := member.NewService(domain.KindAdministrator, deps.AdministratorRepo, deps.UserRepo)
	professorSvc := member.NewService(domain.KindProfessor, deps.ProfessorRepo, deps.UserRepo)
	studentSvc := member.NewService(domain.KindStudent, deps.StudentRepo, deps.UserRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	resetH := handler.NewPasswordResetHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	memberHandlers := map[string]*handler.MemberHandler{
		"administrators": handler.NewMemberHandler(adminSvc),
		"professors":     handler.NewMemberHandler(professorSvc),
		"students":       handler.NewMemberHandler(studentSvc),
	}

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/users", userH.Register)
		r.With(sensitiveRL.Limit).Post("/users/password-reset-request", resetH.Request)
		r.With(sensitiveRL.Limit).Post("/users/password-reset", resetH.Confirm)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/profile", authH.Profile)
			r.Get("/users", userH.List)
			r.Get("/users/{id}", userH.Get)
			r.Patch("/users/{id}", userH.Update)

			for path, h := range memberHandlers {
				r.Get("/"+path, h.List)
				r.Get("/"+path+"/by-user/{userID}", h.GetByUser)
				r.Get("/"+path+"/{id}", h.Get)
			}

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(adminMw)

				r.Delete("/users/{id}", userH.Delete)
				for path, h := range memberHandlers {
					r.Post("/"+path, h.Create)
					r.Delete("/"+path+"/{id}", h.Delete)
				}
			})
		})
	})

	return r
}
