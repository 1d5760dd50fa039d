package authorize

import (
	"context"
	"errors"
	"fmt"

	casbin "github.com/casbin/casbin/v3"
	"github.com/samber/lo"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrInvalidArgs = errors.New("invalid authorization arguments")
)

// IAuthorization is the only thing services/middleware should depend on.
type IAuthorization interface {
	// Enforce reports whether subject may perform action on object in domain.
	Enforce(ctx context.Context, subject GroupSubject, domain Domain, object Resource, action Action) (bool, error)

	// MustEnforce returns ErrForbidden if not allowed.
	MustEnforce(ctx context.Context, subject GroupSubject, domain Domain, object Resource, action Action) error

	// g, subject, role, domain
	AddRoleForUserInDomain(ctx context.Context, subject GroupSubject, role Role, domain Domain) (bool, error)
	RemoveRoleForUserInDomain(ctx context.Context, subject GroupSubject, role Role, domain Domain) (bool, error)
	GetRolesForUserInDomain(ctx context.Context, subject GroupSubject, domain Domain) ([]Role, error)

	// p, role, domain, object, action, eft
	AddPermission(ctx context.Context, role Role, domain Domain, object Resource, action Action, effect PolicyEffect) (bool, error)
}

// Authorization is a typed wrapper around a casbin enforcer. Every argument
// is checked against the known roles, resources and actions before it
// reaches casbin, so a typo fails loudly instead of silently denying.
type Authorization struct {
	enforcer *casbin.DistributedEnforcer
}

// NewAuthorization wraps e and loads its policy.
func NewAuthorization(e *casbin.DistributedEnforcer) (IAuthorization, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: enforcer is nil", ErrInvalidArgs)
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authorize: load policy: %w", err)
	}
	return &Authorization{enforcer: e}, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgs}, args...)...)
}

func checkSubject(s GroupSubject) error {
	if s == "" {
		return invalid("subject is empty")
	}
	return nil
}

func checkRole(r Role) error {
	if _, ok := KnownRoles[r]; !ok {
		return invalid("unknown role: %q", r)
	}
	return nil
}

func checkDomain(d Domain, allowWildcard bool) error {
	if !IsValidDomain(d) || (d == WildcardDomain && !allowWildcard) {
		return invalid("invalid domain: %q", d)
	}
	return nil
}

func checkResource(o Resource, allowWildcard bool) error {
	if _, ok := KnownResources[o]; ok || (allowWildcard && o == WildcardResource) {
		return nil
	}
	return invalid("unknown resource: %q", o)
}

func checkAction(a Action, allowWildcard bool) error {
	if _, ok := KnownActions[a]; ok || (allowWildcard && a == WildcardAction) {
		return nil
	}
	return invalid("unknown action: %q", a)
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	err, _ := lo.Find(errs, func(e error) bool { return e != nil })
	return err
}

func (a *Authorization) Enforce(_ context.Context, subject GroupSubject, domain Domain, object Resource, action Action) (bool, error) {
	if err := firstErr(
		checkSubject(subject),
		checkDomain(domain, false),
		checkResource(object, false),
		checkAction(action, false),
	); err != nil {
		return false, err
	}
	return a.enforcer.Enforce(string(subject), string(domain), string(object), string(action))
}

func (a *Authorization) MustEnforce(ctx context.Context, subject GroupSubject, domain Domain, object Resource, action Action) error {
	ok, err := a.Enforce(ctx, subject, domain, object, action)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (a *Authorization) AddRoleForUserInDomain(_ context.Context, subject GroupSubject, role Role, domain Domain) (bool, error) {
	if err := firstErr(checkSubject(subject), checkRole(role), checkDomain(domain, true)); err != nil {
		return false, err
	}
	return a.enforcer.AddGroupingPolicy(string(subject), string(role), string(domain))
}

func (a *Authorization) RemoveRoleForUserInDomain(_ context.Context, subject GroupSubject, role Role, domain Domain) (bool, error) {
	if subject == "" || role == "" {
		return false, invalid("empty subject/role")
	}
	return a.enforcer.RemoveGroupingPolicy(string(subject), string(role), string(domain))
}

func (a *Authorization) GetRolesForUserInDomain(_ context.Context, subject GroupSubject, domain Domain) ([]Role, error) {
	if err := checkSubject(subject); err != nil {
		return nil, err
	}
	roles := a.enforcer.GetRolesForUserInDomain(string(subject), string(domain))
	return lo.Map(roles, func(r string, _ int) Role { return Role(r) }), nil
}

func (a *Authorization) AddPermission(_ context.Context, role Role, domain Domain, object Resource, action Action, effect PolicyEffect) (bool, error) {
	if effect != EffectAllow && effect != EffectDeny {
		return false, invalid("invalid effect: %q", effect)
	}
	if err := firstErr(
		checkRole(role),
		checkDomain(domain, true),
		checkResource(object, true),
		checkAction(action, true),
	); err != nil {
		return false, err
	}
	return a.enforcer.AddPolicy(string(role), string(domain), string(object), string(action), string(effect))
}
