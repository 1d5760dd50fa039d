package authorize

import (
	"context"
	"log/slog"
)

// DefaultPolicies are the baseline permissions of the clinic roles.
var DefaultPolicies = []PermissionPolicy{
	{RoleAdmin, DomainSys, WildcardResource, WildcardAction, EffectAllow},

	// Registrar: front desk
	{RoleRegistrar, DomainSys, ResourcePatient, WildcardAction, EffectAllow},
	{RoleRegistrar, DomainSys, ResourceReception, WildcardAction, EffectAllow},
	{RoleRegistrar, DomainSys, ResourceServiceRendered, WildcardAction, EffectAllow},
	{RoleRegistrar, DomainSys, ResourceDoctor, ActionList, EffectAllow},
	{RoleRegistrar, DomainSys, ResourceDoctor, ActionRead, EffectAllow},
	{RoleRegistrar, DomainSys, ResourceSchedule, ActionList, EffectAllow},
	{RoleRegistrar, DomainSys, ResourceSchedule, ActionRead, EffectAllow},
	{RoleRegistrar, DomainSys, ResourceService, ActionList, EffectAllow},
	{RoleRegistrar, DomainSys, ResourceService, ActionRead, EffectAllow},

	// Doctor: reads everything, records rendered services
	{RoleDoctor, DomainSys, WildcardResource, ActionList, EffectAllow},
	{RoleDoctor, DomainSys, WildcardResource, ActionRead, EffectAllow},
	{RoleDoctor, DomainSys, ResourceServiceRendered, WildcardAction, EffectAllow},
	{RoleDoctor, DomainSys, ResourceRBAC, WildcardAction, EffectDeny},
}

// SeedDefaultPolicies adds DefaultPolicies; existing rows are left alone.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	for _, p := range DefaultPolicies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Domain, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "resource", p.Object, "action", p.Action)
		}
	}

	logger.Info("seeded default RBAC policies", "count", len(DefaultPolicies))
	return nil
}

// AssignRole grants role to the operator with userID.
func AssignRole(ctx context.Context, auth IAuthorization, userID string, role Role) error {
	if _, ok := KnownRoles[role]; !ok {
		return ErrInvalidArgs
	}
	_, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(userID), role, DomainSys)
	return err
}
