package handler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/internal/service/confirm"
	"github.com/Alijeyrad/stomatology_backend/internal/service/resource"
	"github.com/Alijeyrad/stomatology_backend/pkg/authorize"
	"github.com/Alijeyrad/stomatology_backend/pkg/observability"
)

// HeaderConfirmToken may carry the delete confirmation token instead of the
// request body.
const HeaderConfirmToken = "X-Confirm-Token"

// Capability decides whether the caller may perform action on records of
// kind. It returns resource.ErrForbidden when the caller may not.
type Capability func(ctx context.Context, kind entity.Kind, action authorize.Action) error

// ResourceHandler serves list, add, edit and delete for one record type.
type ResourceHandler[T any] struct {
	svc     resource.Service[T]
	confirm confirm.Service
	can     Capability
	render  Renderer
	// listing is where successful mutations point the client.
	listing string
}

func NewResourceHandler[T any](svc resource.Service[T], cs confirm.Service, can Capability, render Renderer, prefix string) *ResourceHandler[T] {
	if render == nil {
		render = JSONRenderer{}
	}
	return &ResourceHandler[T]{
		svc:     svc,
		confirm: cs,
		can:     can,
		render:  render,
		listing: prefix + "/" + svc.Kind().Plural(),
	}
}

func (h *ResourceHandler[T]) Kind() entity.Kind { return h.svc.Kind() }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func idParam(c fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	return id, err == nil && id > 0
}

func (h *ResourceHandler[T]) check(c fiber.Ctx, action authorize.Action) error {
	if h.can == nil {
		return nil
	}
	return h.can(c.Context(), h.Kind(), action)
}

func (h *ResourceHandler[T]) mapResourceError(c fiber.Ctx, op string, err error, input any) error {
	var (
		verr *resource.ValidationError
		dup  *resource.DuplicateError
	)
	switch {
	case errors.Is(err, resource.ErrForbidden), errors.Is(err, authorize.ErrForbidden):
		return forbidden(c)
	case errors.As(err, &verr):
		return invalid(c, fiber.StatusUnprocessableEntity, "validation failed", verr.Fields, input)
	case errors.As(err, &dup):
		return invalid(c, fiber.StatusConflict, "duplicate value", map[string]string{dup.Field: dup.Message}, input)
	case errors.Is(err, resource.ErrNotFound):
		return notFound(c, string(h.Kind())+" not found")
	case errors.Is(err, confirm.ErrInvalidToken):
		return badRequest(c, err.Error())
	default:
		slog.ErrorContext(c.Context(), "resource request failed",
			"kind", h.Kind(),
			"op", op,
			"error", err,
		)
		return internalError(c)
	}
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

// GET /<plural>?q=
func (h *ResourceHandler[T]) List(c fiber.Ctx) error {
	if err := h.check(c, authorize.ActionList); err != nil {
		return h.mapResourceError(c, "list", err, nil)
	}

	q := c.Query("q")
	items, err := h.svc.Search(c.Context(), q)
	if err != nil {
		return h.mapResourceError(c, "list", err, nil)
	}
	if items == nil {
		items = []T{}
	}
	observability.RecordSearch(c.Context(), string(h.Kind()), q != "")

	if c.Get(HeaderHTMX) != "" {
		return h.render.Fragment(c, h.Kind(), items)
	}
	return h.render.Page(c, h.Kind(), q, items)
}

// GET /<singular>/:id
func (h *ResourceHandler[T]) Get(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return notFound(c, string(h.Kind())+" not found")
	}
	if err := h.check(c, authorize.ActionRead); err != nil {
		return h.mapResourceError(c, "get", err, nil)
	}

	rec, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return h.mapResourceError(c, "get", err, nil)
	}
	return ok(c, rec)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

// GET /<singular>/add
func (h *ResourceHandler[T]) AddForm(c fiber.Ctx) error {
	if err := h.check(c, authorize.ActionCreate); err != nil {
		return h.mapResourceError(c, "add form", err, nil)
	}
	form, err := h.svc.Form(c.Context(), nil)
	if err != nil {
		return h.mapResourceError(c, "add form", err, nil)
	}
	return ok(c, form)
}

// POST /<singular>/add
func (h *ResourceHandler[T]) Create(c fiber.Ctx) error {
	if err := h.check(c, authorize.ActionCreate); err != nil {
		return h.mapResourceError(c, "create", err, nil)
	}

	rec := new(T)
	if err := c.Bind().Body(rec); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.svc.Create(c.Context(), rec); err != nil {
		return h.mapResourceError(c, "create", err, rec)
	}
	observability.RecordMutation(c.Context(), string(h.Kind()), "create")

	c.Location(h.listing)
	return created(c, rec)
}

// ---------------------------------------------------------------------------
// Edit
// ---------------------------------------------------------------------------

// GET /<singular>/:id/edit
func (h *ResourceHandler[T]) EditForm(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return notFound(c, string(h.Kind())+" not found")
	}
	if err := h.check(c, authorize.ActionUpdate); err != nil {
		return h.mapResourceError(c, "edit form", err, nil)
	}

	rec, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return h.mapResourceError(c, "edit form", err, nil)
	}
	form, err := h.svc.Form(c.Context(), rec)
	if err != nil {
		return h.mapResourceError(c, "edit form", err, nil)
	}
	return ok(c, form)
}

// POST /<singular>/:id/edit
func (h *ResourceHandler[T]) Update(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return notFound(c, string(h.Kind())+" not found")
	}
	if err := h.check(c, authorize.ActionUpdate); err != nil {
		return h.mapResourceError(c, "update", err, nil)
	}

	rec := new(T)
	if err := c.Bind().Body(rec); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.svc.Update(c.Context(), id, rec); err != nil {
		return h.mapResourceError(c, "update", err, rec)
	}
	observability.RecordMutation(c.Context(), string(h.Kind()), "update")

	// Re-read so the response carries resolved names, same as Get.
	saved, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return h.mapResourceError(c, "update", err, nil)
	}

	c.Location(h.listing)
	return ok(c, saved)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

type deleteConfirmation struct {
	Record       any    `json:"record"`
	ConfirmToken string `json:"confirm_token"`
}

// GET /<singular>/:id/delete
func (h *ResourceHandler[T]) DeleteConfirm(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return notFound(c, string(h.Kind())+" not found")
	}
	if err := h.check(c, authorize.ActionDelete); err != nil {
		return h.mapResourceError(c, "delete confirm", err, nil)
	}

	rec, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return h.mapResourceError(c, "delete confirm", err, nil)
	}
	token, err := h.confirm.Issue(c.Context(), h.Kind(), id)
	if err != nil {
		return h.mapResourceError(c, "delete confirm", err, nil)
	}
	return ok(c, deleteConfirmation{Record: rec, ConfirmToken: token})
}

// POST /<singular>/:id/delete
func (h *ResourceHandler[T]) Delete(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return notFound(c, string(h.Kind())+" not found")
	}
	if err := h.check(c, authorize.ActionDelete); err != nil {
		return h.mapResourceError(c, "delete", err, nil)
	}

	var body struct {
		ConfirmToken string `json:"confirm_token" form:"confirm_token"`
	}
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	token := body.ConfirmToken
	if token == "" {
		token = c.Get(HeaderConfirmToken)
	}

	if err := h.confirm.Consume(c.Context(), h.Kind(), id, token); err != nil {
		return h.mapResourceError(c, "delete", err, nil)
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return h.mapResourceError(c, "delete", err, nil)
	}
	observability.RecordMutation(c.Context(), string(h.Kind()), "delete")

	c.Location(h.listing)
	return ok(c, fiber.Map{"id": id})
}
