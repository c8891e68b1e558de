package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/simplesql/cli/internal/compat"
	"github.com/satishbabariya/simplesql/cli/internal/ui"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the connection and server version",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, used, err := loadConfig()
	if err != nil {
		return err
	}
	if used != "" {
		ui.PrintSecondary("using %s", used)
	}

	ctx := cmd.Context()
	spinner, _ := ui.PrintSpinner("Connecting...")
	db, err := openDB(ctx, cfg)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		return err
	}
	defer db.Close()

	server, err := db.ServerVersion(ctx)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		return err
	}
	if spinner != nil {
		spinner.Success("Connected")
	}

	dialect := db.Dialect().Name()
	ui.PrintSuccess("%s %s", dialect, server)

	res, err := compat.Check(dialect, server)
	if err != nil {
		ui.PrintWarning("%v", err)
		return nil
	}
	if !res.Supported {
		ui.PrintWarning("server %s is older than the oldest tested %s release %s", res.Server, dialect, res.Minimum)
	}
	return nil
}
