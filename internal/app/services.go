package app

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/stomatology_backend/config"
	"github.com/Alijeyrad/stomatology_backend/internal/repo"
	"github.com/Alijeyrad/stomatology_backend/internal/service/confirm"
	"github.com/Alijeyrad/stomatology_backend/internal/service/resource"
	"github.com/Alijeyrad/stomatology_backend/internal/service/session"
	pasetotoken "github.com/Alijeyrad/stomatology_backend/pkg/paseto"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideResourceServices,
		ProvideConfirmService,
		ProvideSessionService,
		ProvidePasetoManager,
	),
)

func ProvideResourceServices(client *repo.Client) *resource.Services {
	return resource.NewServices(client)
}

func ProvideConfirmService(cfg *config.Config, rdb *redis.Client) confirm.Service {
	ttl := time.Duration(cfg.Server.ConfirmTTLSeconds) * time.Second
	if rdb == nil {
		return confirm.NewMemory(ttl)
	}
	return confirm.NewRedis(rdb, ttl)
}

// ProvideSessionService returns nil without Redis; tokens are then accepted
// on signature and expiry alone.
func ProvideSessionService(rdb *redis.Client) session.Service {
	if rdb == nil {
		return nil
	}
	return session.New(rdb)
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewPasetoManager(cfg)
}
