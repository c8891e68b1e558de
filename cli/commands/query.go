package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/simplesql/cli/internal/ui"
	"github.com/satishbabariya/simplesql/query/materialize"
	"github.com/satishbabariya/simplesql/query/value"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql> [args...]",
	Short: "Run a raw SQL statement and print its rows",
	Long: `Run a raw SQL statement. Positional arguments after the statement are bound
to its placeholders using the same literal rules as --where values.`,
	Example: `  simplesql query "SELECT firstname FROM people WHERE age > ?" 18`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	params := make([]any, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := parseLiteral(a, cfg.Location)
		if err != nil {
			return err
		}
		_, arg, err := value.Bind(v)
		if err != nil {
			return err
		}
		params = append(params, arg)
	}

	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Query(ctx, args[0], params...)
	if err != nil {
		return err
	}
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return err
	}
	records, err := materialize.Materialize(materialize.FromRows(rows), materialize.WithLocation(cfg.Location))
	if err != nil {
		return err
	}
	if err := ui.PrintRecords(columns, records); err != nil {
		return err
	}
	printLastQuery(db)
	return nil
}
