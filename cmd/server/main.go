package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/config"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/connpool"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/directory"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/gateway"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/license"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/logger"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/permission"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/pg"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/ratelimit"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/redis"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/requestid"
	"github.com/aka-uba/omnex-core-platform-sub016/pkg/tenantid"
)

type serverConfig struct {
	Addr            string        `env:"SERVER_ADDR" envDefault:":8080"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// The auth surface gets a stricter limiter than the general API.
	AuthRateMaxRequests int           `env:"AUTH_RATELIMIT_MAX_REQUESTS" envDefault:"10"`
	AuthRateWindow      time.Duration `env:"AUTH_RATELIMIT_WINDOW" envDefault:"1m"`

	// With Redis enabled the rate-limit counters are shared across replicas.
	RedisRateLimit bool `env:"RATELIMIT_USE_REDIS" envDefault:"false"`

	// InternalSecret authenticates internal callers allowed to use the
	// tenant override header. Empty disables the override entirely.
	InternalSecret string `env:"INTERNAL_SHARED_SECRET"`
}

// main wires the resolution pipeline end to end: core store, tenant
// directory, license gate, connection cache, rate limiters and the HTTP
// router. Business modules hang off the gateway; nothing below main knows
// about process lifecycle.
func main() {
	cfg := config.MustLoad[serverConfig]()
	production := cfg.Environment == "production"

	var envOpt logger.Option
	if production {
		envOpt = logger.WithProduction("omnex-core")
	} else {
		envOpt = logger.WithDevelopment("omnex-core")
	}
	log := logger.New(envOpt, logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		gateway.TenantSlugExtractor(),
	))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, production); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg serverConfig, log *slog.Logger, production bool) error {
	pgCfg := config.MustLoad[pg.Config]()
	corePool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer corePool.Close()

	if err := pg.Migrate(ctx, corePool, pgCfg, log); err != nil {
		return err
	}

	registry := license.NewRegistry()
	registerModules(registry)
	log.InfoContext(ctx, "modules registered", slog.Int("count", len(registry.ListInstalledModules())))

	gate, err := license.NewGate(ctx, license.NewPGStore(corePool), builtinPackages(), registry)
	if err != nil {
		return err
	}

	pools := connpool.New(config.MustLoad[connpool.Config]())
	defer func() {
		if err := pools.Close(); err != nil {
			log.Error("closing tenant pools", logger.Error(err))
		}
	}()

	redisHealth := func(context.Context) error { return nil }
	var limitStore ratelimit.Store
	if cfg.RedisRateLimit {
		client, err := redis.Connect(ctx, config.MustLoad[redis.Config]())
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		limitStore = ratelimit.NewRedisStore(client, "omnex")
		redisHealth = redis.Healthcheck(client)
	} else {
		memStore := ratelimit.NewMemoryStore()
		defer func() { _ = memStore.Close() }()
		limitStore = memStore
	}

	defaultLimiter, err := ratelimit.New(limitStore, config.MustLoad[ratelimit.Config]())
	if err != nil {
		return err
	}
	authLimiter, err := ratelimit.New(limitStore, ratelimit.Config{
		MaxRequests: cfg.AuthRateMaxRequests,
		Window:      cfg.AuthRateWindow,
	})
	if err != nil {
		return err
	}

	tidCfg := config.MustLoad[tenantid.Config]()
	orch := gateway.New(
		tenantid.NewResolver(tidCfg),
		directory.New(directory.NewPGStore(corePool)),
		gate,
		pools,
		gateway.WithLogger(log),
		gateway.WithDevMode(!production),
	)
	perms := permission.NewResolver(permission.NewPGSource(corePool))

	router := newRouter(routerDeps{
		orch:           orch,
		perms:          perms,
		registry:       registry,
		defaultLimiter: defaultLimiter,
		authLimiter:    authLimiter,
		coreHealth:     pg.Healthcheck(corePool),
		redisHealth:    redisHealth,
		internalSecret: cfg.InternalSecret,
		overrideHeader: tidCfg.OverrideHeader,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "server listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
