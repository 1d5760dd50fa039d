package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/stomatology_backend/internal/service/session"
	pasetotoken "github.com/Alijeyrad/stomatology_backend/pkg/paseto"
	"github.com/Alijeyrad/stomatology_backend/pkg/reqctx"
)

// AuthRequired validates a Bearer PASETO access token and, when sessions are
// configured, requires a session id that is still active. The verified claims
// are attached to the request context.
func AuthRequired(mgr *pasetotoken.Manager, sessions session.Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		h := c.Get("Authorization")
		if h == "" {
			return fiber.ErrUnauthorized
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.ErrUnauthorized
		}

		claims, err := mgr.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.ErrUnauthorized
		}

		if claims.Type != pasetotoken.TokenTypeAccess {
			return fiber.ErrUnauthorized
		}

		// With sessions configured every token must be bound to one, otherwise
		// it could not be revoked.
		if sessions != nil {
			if claims.SessionID == nil {
				return fiber.ErrUnauthorized
			}
			active, err := sessions.Active(c.Context(), *claims.SessionID)
			if err != nil || !active {
				return fiber.ErrUnauthorized
			}
		}

		c.SetContext(reqctx.WithClaims(c.Context(), claims))
		return c.Next()
	}
}
