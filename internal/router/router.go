package router

import (
	"net/http"
	"time"

	_ "pet-health-records/docs"
	mem "pet-health-records/internal/adapters/storage/memory"
	pg "pet-health-records/internal/adapters/storage/postgres"
	"pet-health-records/internal/domain/activity"
	"pet-health-records/internal/domain/identity"
	"pet-health-records/internal/domain/pets"
	"pet-health-records/internal/domain/records"
	"pet-health-records/internal/domain/users"
	"pet-health-records/internal/middleware"
	"pet-health-records/internal/platform/logger"
	"pet-health-records/internal/platform/ratelimit"
	"pet-health-records/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/uptrace/bun"
)

type Options struct {
	Logger logger.Logger

	// nil => dev mode, the X-Debug-User-ID header identifies the caller.
	AuthVerifier auth.AuthVerifier
	// nil => the webhook answers 503.
	WebhookVerifier identity.SignatureVerifier
	WebhookLimiter  *ratelimit.Store

	// nil => in-memory repositories.
	DB        *bun.DB
	UserCache users.Cache

	IdentityDefaults identity.ProfileDefaults
	TrustedOrigins   []string
	EnableSwagger    bool
	// Honour X-Forwarded-For / X-Real-IP. Only set behind a proxy that
	// overwrites them, otherwise clients pick their own rate-limit key.
	TrustProxyHeaders bool
}

type repos struct {
	users    users.Repository
	pets     pets.Repository
	records  records.Repository
	activity activity.Repository
}

func newRepos(db *bun.DB) repos {
	if db != nil {
		return repos{
			users:    pg.NewUsersRepo(db),
			pets:     pg.NewPetsRepo(db),
			records:  pg.NewRecordsRepo(db),
			activity: pg.NewActivityRepo(db),
		}
	}

	recordRepo := mem.NewRecordRepo()
	return repos{
		users:    mem.NewUserRepo(),
		pets:     mem.NewPetRepo(recordRepo),
		records:  recordRepo,
		activity: mem.NewActivityRepo(),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	if len(opts.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.DebugUserHeader},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Use(chimw.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", healthHandler)

	if opts.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	rp := newRepos(opts.DB)

	usersSvc := users.NewService(rp.users, opts.UserCache, log.With(map[string]any{"component": "users"}))
	activitySvc := activity.NewService(rp.activity)
	petsSvc := pets.NewService(rp.pets, usersSvc, activitySvc, log.With(map[string]any{"component": "pets"}))
	recordsSvc := records.NewService(rp.records, petsSvc, activitySvc, log.With(map[string]any{"component": "records"}))
	identitySvc := identity.NewService(usersSvc, opts.IdentityDefaults, log.With(map[string]any{"component": "identity"}))

	identity.RegisterRoutes(r, identitySvc, opts.WebhookVerifier, log, ratelimit.Middleware(opts.WebhookLimiter))
	users.RegisterRoutes(r, usersSvc)
	activity.RegisterRoutes(r, activitySvc, usersSvc)
	pets.RegisterRoutes(r, petsSvc)
	records.RegisterRoutes(r, recordsSvc)

	return r
}

// healthHandler godoc
// @Summary Health check
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// DefaultWebhookLimiter builds the per-IP limiter from the configured rate.
func DefaultWebhookLimiter(rps float64, burst int) *ratelimit.Store {
	if rps <= 0 {
		return nil
	}
	return ratelimit.NewStore(rps, burst, 10*time.Minute)
}
