package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"qrt-tracker/internal/config"
	"qrt-tracker/internal/handlers"
	"qrt-tracker/internal/middleware"
	"qrt-tracker/internal/repository"
	"qrt-tracker/internal/service"
	"qrt-tracker/internal/utils"
)

// Deps are the store-backed collaborators built once in main.
type Deps struct {
	Users   repository.UserRepository
	Reasons repository.ReasonRepository
	QRTs    repository.QRTRepository
	DB      handlers.Pinger // optional, used by /healthz
}

func New(log zerolog.Logger, deps Deps, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log, cfg.Production()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
	}))
	if cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusNotFound, "Not Found - "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed - "+r.Method+" "+r.URL.Path)
	})

	// Health
	r.Get("/healthz", handlers.Health(deps.DB))

	// Services + handlers
	tokens := utils.NewJWTSigner(cfg.JWTSecret, cfg.JWTTTL)
	rs := handlers.NewResponder(cfg.Production())

	userSvc := service.NewUserService(deps.Users, tokens)
	qrtSvc := service.NewQRTService(deps.QRTs)
	reasonSvc := service.NewReasonService(deps.Reasons)

	uh := handlers.NewUserHTTP(userSvc, rs)
	qh := handlers.NewQRTHTTP(qrtSvc, rs)
	rh := handlers.NewReasonHTTP(reasonSvc, rs)
	reports := handlers.NewReportsHTTP(qrtSvc, rs)

	authn := middleware.Authenticate(tokens, deps.Users)
	admin := middleware.RequireAdmin

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/login", uh.Login())
		r.With(middleware.Identify(tokens, deps.Users)).Post("/", uh.Register())

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/profile", uh.Profile())
			r.Put("/profile", uh.UpdateProfile())

			r.With(admin).Get("/", uh.List())
			r.Route("/{id}", func(r chi.Router) {
				r.Use(admin)
				r.Get("/", uh.Get())
				r.Put("/", uh.Update())
				r.Delete("/", uh.Delete())
			})
		})
	})

	r.Route("/api/qrts", func(r chi.Router) {
		r.Use(authn)
		r.Get("/", qh.List())
		r.Post("/", qh.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", qh.Get())
			r.Put("/", qh.Update())
			r.With(admin).Delete("/", qh.Delete())
			r.Put("/complete/all", qh.CompleteAll())
			r.Put("/actionItem/{actionItemId}", qh.CompleteActionItem())
		})
	})

	r.Route("/api/reasons", func(r chi.Router) {
		r.Use(authn)
		r.Get("/", rh.List())
		r.With(admin).Post("/", rh.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Use(admin)
			r.Get("/", rh.Get())
			r.Put("/", rh.Update())
			r.Delete("/", rh.Delete())
		})
	})

	r.With(authn).Get("/api/reports/summary", reports.Summary())

	return r
}
