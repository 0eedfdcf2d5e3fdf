package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libdb "gestaocombustivel/backend/libs/db"
	libredis "gestaocombustivel/backend/libs/redis"
	"gestaocombustivel/backend/services/fleet-console/internal/api"
	"gestaocombustivel/backend/services/fleet-console/internal/auth"
	"gestaocombustivel/backend/services/fleet-console/internal/clients"
	"gestaocombustivel/backend/services/fleet-console/internal/config"
	httpserver "gestaocombustivel/backend/services/fleet-console/internal/http"
	"gestaocombustivel/backend/services/fleet-console/internal/http/handlers"
	"gestaocombustivel/backend/services/fleet-console/internal/http/middleware"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// App wires fleet-console dependencies.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	store  *session.Store
	facade *api.Facade
	ctrl   *auth.Controller
	routes *auth.RouteRecorder

	db          *sql.DB
	redisClient *redis.Client
}

// New constructs the application graph and restores the persisted session.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger, routes: &auth.RouteRecorder{}}

	kv, err := a.sessionKV(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.store = session.NewStore(kv, logger)
	httpClient := clients.NewDefaultHTTPClient(cfg.HTTPTimeout())
	a.facade = api.New(clients.NewBaseClient(cfg.API.BaseURL, httpClient, a.store, logger), logger)

	logNav := auth.LogNavigator(logger)
	nav := auth.NavigatorFunc(func(route string) {
		a.routes.Navigate(route)
		logNav.Navigate(route)
	})
	a.ctrl = auth.NewController(a.store, a.facade, nav, logger)

	state := a.ctrl.Start(ctx)
	logger.Info("session restored",
		zap.String("backend", cfg.SessionBackend()),
		zap.Stringer("state", state),
	)
	return a, nil
}

func (a *App) sessionKV(ctx context.Context) (session.KV, error) {
	origin := session.Origin(a.cfg.API.BaseURL)

	switch a.cfg.SessionBackend() {
	case config.BackendMemory:
		return session.NewMemoryKV(), nil
	case config.BackendFile:
		return session.NewFileKV(a.cfg.Session.Dir, origin)
	case config.BackendRedis:
		client, err := libredis.Connect(ctx, libredis.Options{
			Addr:     a.cfg.Session.Redis.Addr,
			Password: a.cfg.Session.Redis.Password,
			DB:       a.cfg.Session.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.redisClient = client
		return session.NewRedisKV(client, a.cfg.Session.Redis.Prefix, origin), nil
	case config.BackendPostgres:
		sqlDB, err := libdb.NewPostgresDB(ctx, a.cfg.Session.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		a.db = sqlDB
		kv := session.NewPostgresKV(sqlDB, origin)
		if err := kv.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("app: unknown session backend %q", a.cfg.Session.Backend)
	}
}

// Controller exposes the auth controller to the CLI commands.
func (a *App) Controller() *auth.Controller {
	return a.ctrl
}

// Facade exposes the API façade.
func (a *App) Facade() *api.Facade {
	return a.facade
}

// Handler builds the gateway handler with the full middleware stack.
func (a *App) Handler() http.Handler {
	router := httpserver.NewRouter(httpserver.RouterDeps{
		SessionHandlers:    handlers.NewSessionHandlers(a.ctrl, a.routes, a.logger),
		DashboardHandlers:  handlers.NewDashboardHandlers(a.facade, a.logger),
		DriversHandlers:    handlers.NewDriversHandlers(a.facade, a.logger),
		VehiclesHandlers:   handlers.NewVehiclesHandlers(a.facade, a.logger),
		RefuelingsHandlers: handlers.NewRefuelingsHandlers(a.facade, a.logger),
		HealthHandler:      handlers.NewHealthHandler(),
	}, middleware.RequireSession(a.ctrl))

	return middleware.Chain(router,
		middleware.RecoveryMiddleware(a.logger),
		middleware.LoggingMiddleware(a.logger),
		middleware.OriginGuard(middleware.OriginPolicy{
			AllowedOrigins: a.cfg.Gateway.AllowedOrigins,
			AllowedHosts:   a.cfg.Gateway.AllowedHosts,
		}, a.logger),
	)
}

// Run serves the gateway until ctx is done.
func (a *App) Run(ctx context.Context) error {
	server := httpserver.NewServer(a.cfg.HTTPAddress(), a.Handler(), a.logger)
	return server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
