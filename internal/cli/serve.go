package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"pet-health-records/internal/adapters/auth/sessionjwt"
	"pet-health-records/internal/adapters/cache/redisusers"
	pg "pet-health-records/internal/adapters/storage/postgres"
	"pet-health-records/internal/adapters/webhook/svix"
	"pet-health-records/internal/domain/identity"
	"pet-health-records/internal/domain/users"
	"pet-health-records/internal/ports/auth"
	"pet-health-records/internal/router"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, app)
		},
	}
}

func runServe(ctx context.Context, app *App) error {
	cfg, log := app.Config, app.Log

	var db *bun.DB
	if cfg.Database.DSN != "" {
		sqlDB, err := pg.Open(ctx, cfg.Database.DSN, pg.PoolOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			return err
		}
		if cfg.Database.AutoMigrate {
			if err := pg.Migrate(ctx, sqlDB); err != nil {
				_ = sqlDB.Close()
				return err
			}
		}
		db = pg.NewBunDB(sqlDB)
		defer db.Close()
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory, data is lost on restart", nil)
	}

	var cache users.Cache
	if cfg.Redis.Addr != "" {
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, user cache disabled", map[string]any{"err": err, "addr": cfg.Redis.Addr})
		} else {
			cache = redisusers.New(rc, cfg.Redis.UserCacheTTL)
		}
	}

	var sessions auth.AuthVerifier
	if cfg.Auth.SessionConfigured() {
		v, err := sessionjwt.New(sessionjwt.Config{
			PublicKeyPEM:      cfg.Auth.SessionPublicKeyPEM,
			Secret:            cfg.Auth.SessionSecret,
			AuthorizedParties: cfg.Auth.AuthorizedParties,
			Leeway:            cfg.Auth.Leeway,
		})
		if err != nil {
			return err
		}
		sessions = v
	} else {
		log.Warn("no session key configured, trusting X-Debug-User-ID", nil)
	}

	var webhooks identity.SignatureVerifier
	if cfg.Webhook.Secret != "" {
		v, err := svix.New(cfg.Webhook.Secret)
		if err != nil {
			return err
		}
		webhooks = v
	} else {
		log.Warn("no webhook secret configured, identity webhook disabled", nil)
	}

	handler := router.NewRouter(router.Options{
		Logger:            log,
		AuthVerifier:      sessions,
		WebhookVerifier:   webhooks,
		WebhookLimiter:    router.DefaultWebhookLimiter(cfg.Webhook.RateLimitRPS, cfg.Webhook.RateLimitBurst),
		DB:                db,
		UserCache:         cache,
		IdentityDefaults:  identity.NewProfileDefaults(cfg.Identity.DefaultTimezone),
		TrustedOrigins:    cfg.Server.TrustedOrigins,
		EnableSwagger:     cfg.Server.IsDevelopment(),
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Server.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
