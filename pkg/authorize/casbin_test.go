package authorize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	casbin "github.com/casbin/casbin/v3"
	fileadapter "github.com/casbin/casbin/v3/persist/file-adapter"
	"github.com/google/uuid"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/pkg/reqctx"
)

// createTestEnforcer creates a file-backed Casbin enforcer for testing
func createTestEnforcer(t *testing.T) *casbin.DistributedEnforcer {
	t.Helper()

	policyPath := filepath.Join(t.TempDir(), "policy.csv")
	if err := os.WriteFile(policyPath, []byte(""), 0o644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	e, err := NewEnforcerWithAdapter("", fileadapter.NewAdapter(policyPath))
	if err != nil {
		t.Fatalf("failed to create enforcer: %v", err)
	}
	e.EnableAutoSave(false)
	return e
}

func seededAuth(t *testing.T) IAuthorization {
	t.Helper()

	auth, err := NewAuthorization(createTestEnforcer(t))
	if err != nil {
		t.Fatalf("NewAuthorization: %v", err)
	}
	if err := SeedDefaultPolicies(context.Background(), auth); err != nil {
		t.Fatalf("SeedDefaultPolicies: %v", err)
	}
	return auth
}

func TestNewAuthorization(t *testing.T) {
	t.Run("returns error for nil enforcer", func(t *testing.T) {
		_, err := NewAuthorization(nil)
		if !errors.Is(err, ErrInvalidArgs) {
			t.Errorf("expected ErrInvalidArgs, got %v", err)
		}
	})

	t.Run("succeeds with valid enforcer", func(t *testing.T) {
		auth, err := NewAuthorization(createTestEnforcer(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if auth == nil {
			t.Fatal("expected non-nil authorization")
		}
	})
}

func TestDefaultPolicies(t *testing.T) {
	auth := seededAuth(t)
	ctx := context.Background()

	subjects := map[Role]GroupSubject{
		RoleAdmin:     "admin-1",
		RoleRegistrar: "registrar-1",
		RoleDoctor:    "doctor-1",
	}
	for role, sub := range subjects {
		if err := AssignRole(ctx, auth, string(sub), role); err != nil {
			t.Fatalf("AssignRole(%s): %v", role, err)
		}
	}

	tests := []struct {
		role     Role
		resource Resource
		action   Action
		want     bool
	}{
		{RoleAdmin, ResourceDoctor, ActionDelete, true},
		{RoleAdmin, ResourceRBAC, ActionGrant, true},

		{RoleRegistrar, ResourcePatient, ActionCreate, true},
		{RoleRegistrar, ResourceReception, ActionDelete, true},
		{RoleRegistrar, ResourceDoctor, ActionList, true},
		{RoleRegistrar, ResourceDoctor, ActionCreate, false},
		{RoleRegistrar, ResourceService, ActionUpdate, false},
		{RoleRegistrar, ResourceRBAC, ActionGrant, false},

		{RoleDoctor, ResourcePatient, ActionRead, true},
		{RoleDoctor, ResourceSchedule, ActionList, true},
		{RoleDoctor, ResourceServiceRendered, ActionCreate, true},
		{RoleDoctor, ResourcePatient, ActionUpdate, false},
		{RoleDoctor, ResourceRBAC, ActionGrant, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.resource)+"/"+string(tt.action), func(t *testing.T) {
			got, err := auth.Enforce(ctx, subjects[tt.role], DomainSys, tt.resource, tt.action)
			if err != nil {
				t.Fatalf("Enforce: %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("unassigned subject is denied", func(t *testing.T) {
		err := auth.MustEnforce(ctx, "stranger", DomainSys, ResourcePatient, ActionList)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestEnforceRejectsUnknownArguments(t *testing.T) {
	auth := seededAuth(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		subject  GroupSubject
		domain   Domain
		resource Resource
		action   Action
	}{
		{"empty subject", "", DomainSys, ResourcePatient, ActionRead},
		{"wildcard domain", "u", WildcardDomain, ResourcePatient, ActionRead},
		{"unknown resource", "u", DomainSys, "invoice", ActionRead},
		{"unknown action", "u", DomainSys, ResourcePatient, "archive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Enforce(ctx, tt.subject, tt.domain, tt.resource, tt.action)
			if !errors.Is(err, ErrInvalidArgs) {
				t.Errorf("expected ErrInvalidArgs, got %v", err)
			}
		})
	}
}

func TestRoles(t *testing.T) {
	auth := seededAuth(t)
	ctx := context.Background()

	if err := AssignRole(ctx, auth, "u1", "role:owner"); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("expected ErrInvalidArgs for unknown role, got %v", err)
	}

	if err := AssignRole(ctx, auth, "u1", RoleDoctor); err != nil {
		t.Fatalf("AssignRole: %v", err)
	}
	roles, err := auth.GetRolesForUserInDomain(ctx, "u1", DomainSys)
	if err != nil {
		t.Fatalf("GetRolesForUserInDomain: %v", err)
	}
	if len(roles) != 1 || roles[0] != RoleDoctor {
		t.Errorf("roles = %v, want [%s]", roles, RoleDoctor)
	}

	if _, err := auth.RemoveRoleForUserInDomain(ctx, "u1", RoleDoctor, DomainSys); err != nil {
		t.Fatalf("RemoveRoleForUserInDomain: %v", err)
	}
	ok, err := auth.Enforce(ctx, "u1", DomainSys, ResourcePatient, ActionRead)
	if err != nil || ok {
		t.Errorf("after removal Enforce = %v, %v; want false, nil", ok, err)
	}
}

func TestRoleByName(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"registrar", RoleRegistrar, true},
		{"role:doctor", RoleDoctor, true},
		{"admin", RoleAdmin, true},
		{"owner", "", false},
	}
	for _, tt := range tests {
		got, ok := RoleByName(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("RoleByName(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResourceFor(t *testing.T) {
	for _, kind := range entity.Kinds {
		if _, ok := KnownResources[ResourceFor(kind)]; !ok {
			t.Errorf("no resource for kind %q", kind)
		}
	}
}

type testClaims struct{ id uuid.UUID }

func (c testClaims) GetUserID() uuid.UUID { return c.id }
func (c testClaims) GetSessionID() *uuid.UUID { return nil }
func (c testClaims) GetTokenType() string { return "access" }
func (c testClaims) IsExpired() bool { return false }

func TestSubjectFromContext(t *testing.T) {
	if _, err := SubjectFromContext(context.Background()); !errors.Is(err, ErrNoSubjectInContext) {
		t.Errorf("expected ErrNoSubjectInContext, got %v", err)
	}

	id := uuid.New()
	ctx := reqctx.WithClaims(context.Background(), testClaims{id: id})
	got, err := SubjectFromContext(ctx)
	if err != nil {
		t.Fatalf("SubjectFromContext: %v", err)
	}
	if got != GroupSubject(id.String()) {
		t.Errorf("subject = %q, want %q", got, id)
	}
}
