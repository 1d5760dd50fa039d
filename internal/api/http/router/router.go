package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/stomatology_backend/config"
	"github.com/Alijeyrad/stomatology_backend/internal/api/http/handler"
	"github.com/Alijeyrad/stomatology_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/stomatology_backend/internal/service/confirm"
	"github.com/Alijeyrad/stomatology_backend/internal/service/resource"
	"github.com/Alijeyrad/stomatology_backend/internal/service/session"
	"github.com/Alijeyrad/stomatology_backend/pkg/authorize"
	pasetotoken "github.com/Alijeyrad/stomatology_backend/pkg/paseto"
)

const APIPrefix = "/api/v1"

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg       *config.Config
	Auth      authorize.IAuthorization
	Services  *resource.Services
	Confirm   confirm.Service
	Sessions  session.Service `optional:"true"`
	PasetoMgr *pasetotoken.Manager
	Renderer  handler.Renderer `optional:"true"`
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Middlewares
	authRequired := middleware.AuthRequired(r.p.PasetoMgr, r.p.Sessions)
	can := middleware.Capability(r.p.Auth)

	api := app.Group(APIPrefix, authRequired)

	// 3. Clinic records
	s := r.p.Services
	registerResource(api, newHandler(r, s.Doctor, can))
	registerResource(api, newHandler(r, s.Patient, can))
	registerResource(api, newHandler(r, s.Schedule, can))
	registerResource(api, newHandler(r, s.Service, can))
	registerResource(api, newHandler(r, s.Reception, can))
	registerResource(api, newHandler(r, s.ServiceRendered, can))
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			return !r.p.Cfg.Authorization.HealthCheckEnabled || authorize.IsPolicyHealthy()
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
