package authorize

import "github.com/Alijeyrad/stomatology_backend/internal/entity"

type Action string
type Resource string
type Role string
type Domain string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	// RBAC-specific
	ActionGrant Action = "grant"

	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionList: {}, ActionRead: {}, ActionCreate: {}, ActionUpdate: {}, ActionDelete: {},
	ActionGrant: {},
}

// ----------------------------
// Resources
// ----------------------------
//
// Every clinic record type is a resource named after its kind.

const (
	WildcardResource Resource = "*"

	ResourceDoctor          = Resource(entity.KindDoctor)
	ResourcePatient         = Resource(entity.KindPatient)
	ResourceSchedule        = Resource(entity.KindSchedule)
	ResourceService         = Resource(entity.KindService)
	ResourceReception       = Resource(entity.KindReception)
	ResourceServiceRendered = Resource(entity.KindServiceRendered)

	ResourceRBAC Resource = "rbac"
)

var KnownResources = map[Resource]struct{}{
	ResourceDoctor: {}, ResourcePatient: {}, ResourceSchedule: {},
	ResourceService: {}, ResourceReception: {}, ResourceServiceRendered: {},
	ResourceRBAC: {},
}

// ResourceFor returns the resource guarding records of kind.
func ResourceFor(kind entity.Kind) Resource {
	return Resource(kind)
}

// ----------------------------
// Roles
// ----------------------------

const (
	RoleAdmin     Role = "role:admin"
	RoleRegistrar Role = "role:registrar"
	RoleDoctor    Role = "role:doctor"
)

var KnownRoles = map[Role]struct{}{
	RoleAdmin:     {},
	RoleRegistrar: {},
	RoleDoctor:    {},
}

// RoleDisplayNamesRU are shown in operator tooling.
var RoleDisplayNamesRU = map[Role]string{
	RoleAdmin:     "Администратор",
	RoleRegistrar: "Регистратор",
	RoleDoctor:    "Врач",
}

// RoleByName accepts either the bare name ("registrar") or the full role.
func RoleByName(name string) (Role, bool) {
	for _, r := range []Role{Role(name), Role("role:" + name)} {
		if _, ok := KnownRoles[r]; ok {
			return r, true
		}
	}
	return "", false
}

// ----------------------------
// Domains
// ----------------------------
//
// A single clinic runs in the sys domain; the domain column is kept so the
// policy tables stay compatible with multi-clinic deployments.

const (
	DomainSys      Domain = "sys"
	WildcardDomain Domain = "*"
)

func IsValidDomain(d Domain) bool {
	return d == DomainSys || d == WildcardDomain
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// GroupSubject is the g.sub in Casbin: a concrete operator id.
type GroupSubject string

// Permission rows: p, role, domain, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Domain  Domain
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
