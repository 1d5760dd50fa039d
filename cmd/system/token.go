package system

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/stomatology_backend/internal/service/session"
	pasetotoken "github.com/Alijeyrad/stomatology_backend/pkg/paseto"
	redispkg "github.com/Alijeyrad/stomatology_backend/pkg/redis"
)

func NewTokenCommand() *cobra.Command {
	var (
		userID   string
		printKey bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for an operator",
		Long: `Issue a PASETO access token for an operator id. A new id is generated
when --user is omitted. With Redis configured, the token is bound to a new
session that can be revoked server side.

--print-key prints a freshly generated v4.local key for
authentication.paseto.local_key_hex and exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printKey {
				fmt.Println(pasetotoken.NewLocalKeys().LocalKeyHex())
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			uid := uuid.New()
			if userID != "" {
				if uid, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}

			mgr, err := pasetotoken.NewPasetoManager(cfg)
			if err != nil {
				return fmt.Errorf("failed to create token manager: %w", err)
			}

			var sid *uuid.UUID
			if cfg.Redis.Addr != "" {
				rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
				if err != nil {
					return err
				}
				defer rdb.Close()

				ttl := time.Duration(cfg.Authentication.SessionTTLMinutes) * time.Minute
				if ttl < mgr.AccessTTL() {
					ttl = mgr.AccessTTL()
				}
				id, err := session.New(rdb).Create(context.Background(), uid, ttl)
				if err != nil {
					return fmt.Errorf("failed to create session: %w", err)
				}
				sid = &id
			}

			tok, err := mgr.IssueAccess(uid, sid)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			fmt.Printf("user:    %s\n", uid)
			if sid != nil {
				fmt.Printf("session: %s\n", sid)
			}
			fmt.Printf("expires: %s\n", time.Now().Add(mgr.AccessTTL()).Format(time.RFC3339))
			fmt.Println(tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Operator id (UUID); generated when empty")
	cmd.Flags().BoolVar(&printKey, "print-key", false, "Print a new local-mode key and exit")

	return cmd
}
