package authorize

import "github.com/Alijeyrad/stomatology_backend/config"

// Config holds configuration for the authorization system
type Config struct {
	// CasbinModelPath is the model file; the embedded DefaultModel is used
	// when empty.
	CasbinModelPath string

	// EnableAudit logs every authorization decision.
	EnableAudit bool

	// PolicySyncEnabled listens for policy changes made by other instances.
	PolicySyncEnabled bool

	// HealthCheckEnabled makes readiness fail after a policy reload error.
	HealthCheckEnabled bool

	// BootstrapAdmins are operator ids granted the admin role at startup.
	BootstrapAdmins []string
}

func FromCentralConfig(c config.AuthorizationConfig) Config {
	return Config{
		CasbinModelPath:    c.CasbinModelPath,
		EnableAudit:        c.EnableAudit,
		PolicySyncEnabled:  c.PolicySyncEnabled,
		HealthCheckEnabled: c.HealthCheckEnabled,
		BootstrapAdmins:    c.BootstrapAdmins,
	}
}
