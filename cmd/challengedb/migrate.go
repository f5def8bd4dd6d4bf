package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/challengedb/config"
	"github.com/sagarc03/challengedb/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the challenges table and validate its schema",
	Long: `Create the configured challenges table if it does not exist, then
check that its columns match what the server expects. Safe to run repeatedly.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database, true)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _ = db.Close() }()

	slog.Info("migration complete", "type", cfg.Database.Type, "table", cfg.Database.Tables.Challenges)
	return nil
}
