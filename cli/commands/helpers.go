package commands

import (
	"context"
	"os"

	"github.com/satishbabariya/simplesql/cli/internal/config"
	"github.com/satishbabariya/simplesql/cli/internal/ui"
	"github.com/satishbabariya/simplesql/internal/debug"
	"github.com/satishbabariya/simplesql/query/executor"
	"github.com/satishbabariya/simplesql/runtime/client"
)

// loadConfig reads the connection settings with the persistent flags
// applied on top. It also returns the config file used, if any.
func loadConfig() (client.Config, string, error) {
	return config.Load(config.Options{
		File: configFile,
		Overrides: map[string]string{
			"driver": driverFlag,
			"schema": schemaFlag,
			"debug":  debugFlag,
		},
	})
}

// openDB connects with cfg. In log mode statements go to stderr.
func openDB(ctx context.Context, cfg client.Config) (*client.DB, error) {
	var opts []client.Option
	if cfg.Debug == string(executor.ModeLog) {
		debug.Configure(debug.Config{Level: "debug", Pretty: true, Output: os.Stderr})
		opts = append(opts, client.WithLogger(debug.With("sql")))
	}
	return client.Open(ctx, cfg, opts...)
}

// printLastQuery shows the stored statement when running in storelast mode.
func printLastQuery(db *client.DB) {
	if last := db.LastQuery(); last != "" {
		ui.PrintSecondary("last query: %s", last)
	}
}
