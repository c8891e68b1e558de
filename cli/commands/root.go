// Package commands implements the simplesql command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/simplesql/cli/internal/ui"
	"github.com/satishbabariya/simplesql/cli/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "simplesql",
	Short: "Run simple parameterized SQL against MySQL, PostgreSQL or SQLite",
	Long: `simplesql builds parameterized SELECT, INSERT and UPDATE statements from
filters like "age >:17" and runs them against the configured database.

Connection settings are read from .simplesql.yaml (current directory, home
directory or ~/.config/simplesql), .env files and SIMPLESQL_* variables.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configFile string
	driverFlag string
	schemaFlag string
	debugFlag  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default .simplesql.yaml in the search paths)")
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Database driver: mysql, postgres or sqlite3")
	rootCmd.PersistentFlags().StringVar(&schemaFlag, "schema", "", "Database name, or file for sqlite3")
	rootCmd.PersistentFlags().StringVar(&debugFlag, "debug", "", "Debug mode: none, log or storelast")
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute is the main entry point for the CLI
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}
