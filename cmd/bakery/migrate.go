package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nerrad567/bakery-core/internal/infrastructure/config"
	"github.com/nerrad567/bakery-core/internal/infrastructure/database"
)

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
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
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := openForCommand(*configPath)
				if err != nil {
					return err
				}
				defer db.Close() //nolint:errcheck // CLI exit path

				m, err := db.MigrateDown(cmd.Context())
				if err != nil {
					return fmt.Errorf("rolling back migration: %w", err)
				}
				if m == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations to roll back")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s %s\n", m.Version, m.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := openForCommand(*configPath)
				if err != nil {
					return err
				}
				defer db.Close() //nolint:errcheck // CLI exit path

				applied, pending, err := db.GetMigrationStatus(cmd.Context())
				if err != nil {
					return fmt.Errorf("reading migration status: %w", err)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT")
				for _, m := range applied {
					fmt.Fprintf(tw, "%s\tapplied\t%s\n", m.Version, m.AppliedAt.UTC().Format(time.RFC3339))
				}
				for _, m := range pending {
					fmt.Fprintf(tw, "%s\tpending\t-\n", m.Version)
				}
				return tw.Flush()
			},
		},
	)
	return cmd
}

// openForCommand loads the configuration and opens the database without
// starting any other component.
func openForCommand(configPath string) (*database.DB, error) {
	cfg, err := config.Load(resolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	db, err := database.Open(database.ConfigFrom(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}
