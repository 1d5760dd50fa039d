package authorize

import (
	"context"
	"strings"
	"testing"
)

func TestPolicyLines(t *testing.T) {
	got := PolicyLines([]PermissionPolicy{
		{RoleDoctor, DomainSys, ResourceRBAC, WildcardAction, EffectDeny},
	})
	want := "p, role:doctor, sys, rbac, *, deny\n"
	if got != want {
		t.Fatalf("PolicyLines = %q, want %q", got, want)
	}

	if n := strings.Count(PolicyLines(DefaultPolicies), "\n"); n != len(DefaultPolicies) {
		t.Fatalf("expected %d lines, got %d", len(DefaultPolicies), n)
	}
}

func TestMemoryEnforcer(t *testing.T) {
	e, err := NewMemoryEnforcer(Config{})
	if err != nil {
		t.Fatalf("NewMemoryEnforcer: %v", err)
	}
	auth, err := NewAuthorization(e)
	if err != nil {
		t.Fatalf("NewAuthorization: %v", err)
	}

	ctx := context.Background()
	if err := AssignRole(ctx, auth, "registrar-1", RoleRegistrar); err != nil {
		t.Fatalf("AssignRole: %v", err)
	}

	if err := auth.MustEnforce(ctx, "registrar-1", DomainSys, ResourcePatient, ActionDelete); err != nil {
		t.Fatalf("registrar should manage patients: %v", err)
	}
	if err := auth.MustEnforce(ctx, "registrar-1", DomainSys, ResourceDoctor, ActionDelete); err != ErrForbidden {
		t.Fatalf("registrar must not delete doctors, got %v", err)
	}
	if err := auth.MustEnforce(ctx, "nobody", DomainSys, ResourcePatient, ActionList); err != ErrForbidden {
		t.Fatalf("unassigned subject must be denied, got %v", err)
	}
}
