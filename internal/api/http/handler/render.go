package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
)

// HeaderHTMX marks requests that only need the result rows.
const HeaderHTMX = "HX-Request"

// Renderer turns listing results into a response.
type Renderer interface {
	// Page renders the full listing.
	Page(c fiber.Ctx, kind entity.Kind, q string, items any) error
	// Fragment renders only the rows of the same listing.
	Fragment(c fiber.Ctx, kind entity.Kind, items any) error
}

// JSONRenderer is the default Renderer.
type JSONRenderer struct{}

func (JSONRenderer) Page(c fiber.Ctx, kind entity.Kind, q string, items any) error {
	return ok(c, fiber.Map{
		"kind":  kind,
		"q":     q,
		"items": items,
	})
}

func (JSONRenderer) Fragment(c fiber.Ctx, _ entity.Kind, items any) error {
	return c.JSON(fiber.Map{"rows": items})
}
