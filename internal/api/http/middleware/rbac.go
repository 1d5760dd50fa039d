package middleware

import (
	"context"
	"errors"

	"github.com/Alijeyrad/stomatology_backend/internal/api/http/handler"
	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/internal/service/resource"
	"github.com/Alijeyrad/stomatology_backend/pkg/authorize"
)

// Capability checks the authenticated operator against the casbin policy of
// the sys domain.
func Capability(auth authorize.IAuthorization) handler.Capability {
	return func(ctx context.Context, kind entity.Kind, action authorize.Action) error {
		subject, err := authorize.SubjectFromContext(ctx)
		if err != nil {
			return resource.ErrForbidden
		}

		err = auth.MustEnforce(ctx, subject, authorize.DomainSys, authorize.ResourceFor(kind), action)
		if errors.Is(err, authorize.ErrForbidden) {
			return resource.ErrForbidden
		}
		return err
	}
}
