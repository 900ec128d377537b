package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/service"
	"github.com/astana-logistics/cargo-desk/internal/infrastructure/db/postgres"
)

// newPromoteCmd grants the manager role. Registration only ever creates
// employees, so this is how the first manager comes to exist.
func newPromoteCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "promote <username>",
		Short: "Set a user's role (manager by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidRole(role) {
				return fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
			}

			ctx := cmd.Context()
			cfg, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}

			db, err := postgres.Connect(ctx, postgresConfig(cfg), log)
			if err != nil {
				return err
			}
			defer db.Close()

			users := postgres.NewUserRepository(db)
			activity := service.NewActivityService(postgres.NewActivityRepository(db), nil, log)

			user, err := users.FindByUsername(ctx, args[0])
			if err != nil {
				return fmt.Errorf("promote %s: %w", args[0], err)
			}
			updated, err := users.UpdateRole(ctx, user.ID, role)
			if err != nil {
				return fmt.Errorf("promote %s: %w", args[0], err)
			}

			activity.Record(ctx, uuid.NullUUID{}, domain.ActionUserRoleChanged, domain.Details{
				"user_id":  updated.ID.String(),
				"username": updated.Username,
				"from":     user.Role,
				"to":       updated.Role,
				"source":   "cli",
			})
			log.Info().Str("username", updated.Username).Str("role", updated.Role).Msg("role updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", domain.RoleManager, "role to assign (employee or manager)")
	return cmd
}
