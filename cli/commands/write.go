package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/simplesql/cli/internal/ui"
	"github.com/satishbabariya/simplesql/query/sqlgen"
)

var insertCmd = &cobra.Command{
	Use:     "insert <table>",
	Short:   "Insert one row",
	Example: `  simplesql insert people --set firstname=Wilma --set age=34`,
	Args:    cobra.ExactArgs(1),
	RunE:    runInsert,
}

var updateCmd = &cobra.Command{
	Use:   "update <table>",
	Short: "Update rows matching every --where filter",
	Long: `Update rows matching every --where filter. A filter is required so that
a typo cannot rewrite the whole table. You are asked to confirm unless --yes
is given.`,
	Example: `  simplesql update people --set age=35 --where "firstname:Wilma"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runUpdate,
}

var (
	insertSet []string
	insertDry bool

	updateSet   []string
	updateWhere []string
	updateYes   bool
	updateDry   bool
)

func init() {
	insertCmd.Flags().StringArrayVarP(&insertSet, "set", "s", nil, "Column value as column=value, repeatable")
	insertCmd.Flags().BoolVar(&insertDry, "dry-run", false, "Print the statement instead of running it")
	_ = insertCmd.MarkFlagRequired("set")

	updateCmd.Flags().StringArrayVarP(&updateSet, "set", "s", nil, "Column value as column=value, repeatable")
	updateCmd.Flags().StringArrayVarP(&updateWhere, "where", "w", nil, "Filter as column[ OP]:value, repeatable")
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "Skip the confirmation prompt")
	updateCmd.Flags().BoolVar(&updateDry, "dry-run", false, "Print the statement instead of running it")
	_ = updateCmd.MarkFlagRequired("set")
	_ = updateCmd.MarkFlagRequired("where")

	rootCmd.AddCommand(insertCmd, updateCmd)
}

func runInsert(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := parseFields(insertSet, "=", cfg.Location)
	if err != nil {
		return err
	}
	table := args[0]
	if insertDry {
		return printDryRun(cfg, func(g *sqlgen.Generator) (*sqlgen.Statement, error) { return g.Insert(table, data) })
	}

	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.Insert(ctx, table, data)
	if err != nil {
		return err
	}
	if id > 0 {
		ui.PrintSuccess("inserted row %d into %s", id, table)
	} else {
		ui.PrintSuccess("inserted row into %s", table)
	}
	printLastQuery(db)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := parseFields(updateSet, "=", cfg.Location)
	if err != nil {
		return err
	}
	where, err := parseFields(updateWhere, ":", cfg.Location)
	if err != nil {
		return err
	}
	table := args[0]
	if updateDry {
		return printDryRun(cfg, func(g *sqlgen.Generator) (*sqlgen.Statement, error) { return g.Update(table, data, where) })
	}

	if !updateYes {
		confirm := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Set %s on %s where %s?", describeFields(data), table, describeFields(where)),
			Default: false,
		}
		if err := survey.AskOne(prompt, &confirm); err != nil {
			return err
		}
		if !confirm {
			ui.PrintWarning("update cancelled")
			return nil
		}
	}

	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Update(ctx, table, data, where)
	if err != nil {
		return err
	}
	ui.PrintSuccess("updated %d row(s) in %s", n, table)
	printLastQuery(db)
	return nil
}
