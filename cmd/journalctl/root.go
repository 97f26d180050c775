package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "journalctl",
		Short:         "Translate and reconcile Crossref journal metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ctx.databaseURL, "database-url", "", "Postgres connection string (defaults to DATABASE_URL)")
	flags.StringVar(&ctx.sqlitePath, "sqlite", "", "Path to a local SQLite journal database")
	flags.StringVar(&ctx.envFile, "env-file", ".env", "Dotenv file to load before reading the environment")
	flags.StringVar(&ctx.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newTranslateCommand())
	rootCmd.AddCommand(newReconcileCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newTokenCommand(ctx))

	return rootCmd
}
