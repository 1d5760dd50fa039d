package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/stomatology_backend/internal/api/http/handler"
	"github.com/Alijeyrad/stomatology_backend/internal/service/resource"
)

// newHandler is generic over the record type, so it cannot be a method.
func newHandler[T any](r *Router, svc resource.Service[T], can handler.Capability) *handler.ResourceHandler[T] {
	return handler.NewResourceHandler(svc, r.p.Confirm, can, r.p.Renderer, APIPrefix)
}

// registerResource mounts the listing under the plural name and the record
// workflow under the singular name.
func registerResource[T any](api fiber.Router, h *handler.ResourceHandler[T]) {
	kind := h.Kind()

	api.Get("/"+kind.Plural(), h.List)

	rec := api.Group("/" + string(kind))
	rec.Get("/add", h.AddForm)
	rec.Post("/add", h.Create)
	rec.Get("/:id", h.Get)
	rec.Get("/:id/edit", h.EditForm)
	rec.Post("/:id/edit", h.Update)
	rec.Get("/:id/delete", h.DeleteConfirm)
	rec.Post("/:id/delete", h.Delete)
}
