package system

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/stomatology_backend/config"
	"github.com/Alijeyrad/stomatology_backend/pkg/authorize"
	"github.com/Alijeyrad/stomatology_backend/pkg/database"
)

func NewSystemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Maintenance and tooling commands",
	}

	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewGenDocsCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewTokenCommand())
	cmd.AddCommand(NewGrantCommand())

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

// openPolicyStore connects to the casbin database. The caller must run the
// returned cleanup.
func openPolicyStore(cfg *config.Config) (authorize.IAuthorization, authorize.CleanupFunc, error) {
	enforcer, cleanup, err := authorize.NewEnforcer(
		authorize.FromCentralConfig(cfg.Authorization),
		database.NewDSN(cfg.CasbinDatabase),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	auth, err := authorize.NewAuthorization(enforcer)
	if err != nil {
		cleanup(context.Background())
		return nil, nil, fmt.Errorf("failed to create authorization: %w", err)
	}
	return auth, cleanup, nil
}
