package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astana-logistics/cargo-desk/internal/infrastructure/db/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(postgres.Up), string(postgres.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := postgres.Direction(args[0])
			if dir != postgres.Up && dir != postgres.Down {
				return fmt.Errorf("unknown direction %q (want up or down)", args[0])
			}

			cfg, log, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			if err := postgres.Migrate(cfg.Postgres.DSN, dir); err != nil {
				return err
			}
			log.Info().Str("direction", string(dir)).Msg("migrations applied")
			return nil
		},
	}
}
