package app

import (
	"context"
	"log/slog"

	casbin "github.com/casbin/casbin/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/stomatology_backend/config"
	"github.com/Alijeyrad/stomatology_backend/internal/repo"
	"github.com/Alijeyrad/stomatology_backend/pkg/authorize"
	"github.com/Alijeyrad/stomatology_backend/pkg/constants"
	"github.com/Alijeyrad/stomatology_backend/pkg/database"
	"github.com/Alijeyrad/stomatology_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/stomatology_backend/pkg/redis"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideRepoClient),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideOTel),
)

func ProvideRepoClient(lc fx.Lifecycle, cfg *config.Config) (*repo.Client, error) {
	client, err := database.NewRepoClient(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing repository client", "backend", cfg.Storage.Backend)
			return client.Close()
		},
	})
	return client, nil
}

// ProvideRedis returns nil when no address is configured; sessions are then
// not checked and confirmation tokens stay in process.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		slog.Warn("redis not configured, using in-process state")
		return nil, nil
	}
	rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideAuthorization(lc fx.Lifecycle, cfg *config.Config) (authorize.IAuthorization, error) {
	acfg := authorize.FromCentralConfig(cfg.Authorization)

	var (
		enforcer *casbin.DistributedEnforcer
		cleanup  authorize.CleanupFunc = func(context.Context) {}
		err      error
	)
	if cfg.Storage.Backend == constants.StorageMemory {
		enforcer, err = authorize.NewMemoryEnforcer(acfg)
	} else {
		enforcer, cleanup, err = authorize.NewEnforcer(acfg, database.NewDSN(cfg.CasbinDatabase))
	}
	if err != nil {
		return nil, err
	}

	var auth authorize.IAuthorization
	auth, err = authorize.NewAuthorization(enforcer)
	if err != nil {
		cleanup(context.Background())
		return nil, err
	}
	if acfg.EnableAudit {
		auth = authorize.NewAuditedAuthorization(auth, slog.Default())
	}

	for _, id := range acfg.BootstrapAdmins {
		if err := authorize.AssignRole(context.Background(), auth, id, authorize.RoleAdmin); err != nil {
			cleanup(context.Background())
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("cleaning up Casbin enforcer")
			cleanup(ctx)
			return nil
		},
	})
	return auth, nil
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
