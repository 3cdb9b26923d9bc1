package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/daypass-backend/api/controllers"
	"github.com/angelmondragon/daypass-backend/api/middleware"
	"github.com/angelmondragon/daypass-backend/internal/auth"
	"github.com/angelmondragon/daypass-backend/internal/catalog"
	"github.com/angelmondragon/daypass-backend/internal/storefront"
	"github.com/angelmondragon/daypass-backend/pkg/auth/session"
	"github.com/angelmondragon/daypass-backend/pkg/config"
	"github.com/angelmondragon/daypass-backend/pkg/db"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
	"github.com/angelmondragon/daypass-backend/pkg/metrics"
	"github.com/angelmondragon/daypass-backend/pkg/redis"
)

// Observability carries the HTTP metrics collector and the scrape handler.
// Both may be nil when metrics are disabled.
type Observability struct {
	HTTP    *metrics.HTTPMetrics
	Handler http.Handler
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.Checker,
	obs Observability,
	authService auth.Service,
	catalogService catalog.Service,
	storefrontService storefront.Service,
) http.Handler {
	// typed nils must not reach the middlewares as non-nil interfaces
	var observer middleware.HTTPObserver
	if obs.HTTP != nil {
		observer = obs.HTTP
	}
	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(observer),
		middleware.CORS(cfg.HTTP),
	)

	readiness := map[string]controllers.Pinger{}
	if dbP != nil {
		readiness["db"] = dbP
	}
	if redisClient != nil {
		readiness["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if obs.Handler != nil {
		r.Method(http.MethodGet, "/metrics", obs.Handler)
	}

	r.Route("/api/v1/storefront", func(r chi.Router) {
		r.Get("/catalog", controllers.StorefrontCatalog(storefrontService, logg))
		r.Post("/quote", controllers.StorefrontQuote(storefrontService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(authRateLimit(middleware.SignInRateLimitPolicy(cfg.AuthRateLimit), redisClient, logg)).
			Post("/sign-in", controllers.AuthSignIn(authService, logg))
		r.With(authRateLimit(middleware.SignUpRateLimitPolicy(cfg.AuthRateLimit), redisClient, logg)).
			Post("/sign-up", controllers.AuthSignUp(authService, logg))
		r.Post("/sign-out", controllers.AuthSignOut(authService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, cfg.JWT, logg))
		r.With(middleware.Auth(cfg.JWT, sessionChecker, logg)).
			Get("/session", controllers.AuthSession(authService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.RequireRole(enums.MemberRoleAdmin, logg))

		r.Route("/batches", func(r chi.Router) {
			r.Get("/", controllers.AdminListBatches(catalogService, logg))
			r.With(middleware.Idempotency(idempotencyStore, logg)).
				Post("/", controllers.AdminCreateBatch(catalogService, logg))

			r.Route("/{batchId}", func(r chi.Router) {
				r.Delete("/", controllers.AdminDeleteBatch(catalogService, logg))
				r.Post("/activate", controllers.AdminSetBatchActive(catalogService, true, logg))
				r.Post("/deactivate", controllers.AdminSetBatchActive(catalogService, false, logg))
				r.Get("/products", controllers.AdminLoadMatrix(catalogService, logg))
				r.Put("/products", controllers.AdminSaveMatrix(catalogService, logg))
			})
		})
	})

	return r
}

func authRateLimit(policy middleware.AuthRateLimitPolicy, redisClient *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	if redisClient == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.AuthRateLimit(policy, redisClient, logg)
}
