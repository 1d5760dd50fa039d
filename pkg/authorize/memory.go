package authorize

import (
	"strings"

	casbin "github.com/casbin/casbin/v3"
	stringadapter "github.com/casbin/casbin/v3/persist/string-adapter"
)

// PolicyLines renders policies in the casbin CSV policy format.
func PolicyLines(policies []PermissionPolicy) string {
	var b strings.Builder
	for _, p := range policies {
		b.WriteString(strings.Join([]string{
			"p", string(p.Subject), string(p.Domain), string(p.Object), string(p.Action), string(p.Effect),
		}, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}

// NewMemoryEnforcer builds an enforcer that holds DefaultPolicies in process.
// Role assignments made on it are lost on restart.
func NewMemoryEnforcer(cfg Config) (*casbin.DistributedEnforcer, error) {
	e, err := NewEnforcerWithAdapter(cfg.CasbinModelPath, stringadapter.NewAdapter(PolicyLines(DefaultPolicies)))
	if err != nil {
		return nil, err
	}
	e.EnableAutoSave(false)
	return e, nil
}
