package router

import (
	"hotel/config"
	_ "hotel/docs" // swagger spec
	"hotel/infras/metrics"
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/health"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/user"
	"hotel/transport/http/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Room    room.Handler
	Booking booking.Handler
	Health  health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Metrics        *metrics.Metrics
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
		r.App.Tracing,
		r.App.Metrics,
	)

	if r.Config.App.CORS.Enable {
		router.Use(r.cors())
	}

	router.Get("/health", r.DomainHandlers.Health.Check)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if r.Config.App.Metrics.Enable {
		router.Method(http.MethodGet, "/metrics", r.Metrics.Handler())
	}

	router.Group(func(api chi.Router) {
		api.Use(
			r.App.RateLimit(),
			r.AuthRole.APIKey,
			r.AuthRole.Auth,
			r.AuthRole.RBAC,
		)

		api.Route("/v1", func(routerGroup chi.Router) {
			r.DomainHandlers.Auth.Router(routerGroup)
			r.DomainHandlers.User.Router(routerGroup)
			r.DomainHandlers.Room.Router(routerGroup)
			r.DomainHandlers.Booking.Router(routerGroup)
		})
	})
}

func (r *Router) cors() func(http.Handler) http.Handler {
	opts := r.Config.App.CORS

	return cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   opts.AllowedMethods,
		AllowedHeaders:   opts.AllowedHeaders,
		AllowCredentials: opts.AllowCredentials,
		MaxAge:           opts.MaxAgeSeconds,
	})
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
	metrics *metrics.Metrics,
	cfg *config.Config,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Metrics:        metrics,
		Config:         cfg,
	}
}
