package system

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/stomatology_backend/pkg/authorize"
	"github.com/Alijeyrad/stomatology_backend/pkg/constants"
)

func NewGrantCommand() *cobra.Command {
	var userID, roleName string

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Grant a clinic role to an operator",
		Long: `Grant one of the clinic roles (admin, registrar, doctor) to an operator id.

The memory storage backend keeps policies in process; use
authorization.bootstrap_admins there instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			role, ok := authorize.RoleByName(roleName)
			if !ok {
				return fmt.Errorf("unknown role %q", roleName)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage.Backend == constants.StorageMemory {
				return fmt.Errorf("grant needs the casbin database; storage backend is %q", cfg.Storage.Backend)
			}

			auth, cleanup, err := openPolicyStore(cfg)
			if err != nil {
				return err
			}
			defer cleanup(context.Background())

			if err := authorize.AssignRole(context.Background(), auth, uid.String(), role); err != nil {
				return fmt.Errorf("failed to grant role: %w", err)
			}

			fmt.Printf("Granted %s (%s) to %s\n", role, authorize.RoleDisplayNamesRU[role], uid)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Operator id (UUID)")
	cmd.Flags().StringVar(&roleName, "role", "", "Role: admin, registrar or doctor")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}
