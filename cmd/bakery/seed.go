package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/bakery-core/internal/bakery"
	"github.com/nerrad567/bakery-core/internal/infrastructure/logging"
)

func seedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample bakeries and baked goods into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openForCommand(*configPath)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // CLI exit path

			if err := db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}

			n, err := bakery.Seed(cmd.Context(), bakery.NewSQLiteRepository(db.DB), logging.Discard().Logger)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "database already contains bakeries, nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d bakeries\n", n)
			return nil
		},
	}
}
