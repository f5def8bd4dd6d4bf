package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/challengedb/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "challengedb",
	Short:   "Challenge database server with HMAC digest authentication",
	Long: `challengedb serves create, replace, delete and read operations on
challenges over HTTP. Every request carries a digest derived from a shared
secret, and the records live in SQLite or PostgreSQL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if f, _ := cmd.Flags().GetString("config"); f != "" {
			files = append(files, f)
		}

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg.Log)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: sqlite, postgres (default: sqlite, env: CHALLENGEDB_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: challengedb.db, env: CHALLENGEDB_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("base-path", "", "mount path of the challenge routes (default: /api/challenge, env: CHALLENGEDB_SERVER_BASE_PATH)")
	rootCmd.PersistentFlags().String("secret", "", "shared secret (env: CHALLENGEDB_AUTH_SECRET)")
	rootCmd.PersistentFlags().String("secret-file", "", "file holding the shared secret (env: CHALLENGEDB_AUTH_SECRET_FILE)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
