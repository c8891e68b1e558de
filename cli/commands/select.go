package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/simplesql/cli/internal/ui"
	"github.com/satishbabariya/simplesql/cli/internal/watch"
	"github.com/satishbabariya/simplesql/internal/debug"
	"github.com/satishbabariya/simplesql/query/materialize"
	"github.com/satishbabariya/simplesql/query/sqlgen"
	"github.com/satishbabariya/simplesql/runtime/client"
)

var selectCmd = &cobra.Command{
	Use:   "select <table>",
	Short: "Select rows from a table",
	Long: `Select rows matching every --where filter.

Filters are "column:value" or "column OP:value" where OP is one of
=, !=, < or >. Values are integers, decimals,
"YYYY-MM-DD HH:MM:SS" timestamps or text; quote a value to force text.`,
	Example: `  simplesql select people -c firstname -c age --where "age >:17" --order age:DESC --limit 10
  simplesql select people -c id --where "firstname !=:Fred" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

var rowCmd = &cobra.Command{
	Use:   "row <table>",
	Short: "Select a single row from a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runRow,
}

type selectFlags struct {
	columns []string
	where   []string
	order   []string
	limit   string
	dryRun  bool
	watch   bool
}

var (
	selectOpts selectFlags
	rowOpts    selectFlags
)

func init() {
	for _, c := range []struct {
		cmd  *cobra.Command
		opts *selectFlags
	}{{selectCmd, &selectOpts}, {rowCmd, &rowOpts}} {
		f := c.cmd.Flags()
		f.StringSliceVarP(&c.opts.columns, "columns", "c", nil, "Columns to return (required)")
		f.StringArrayVarP(&c.opts.where, "where", "w", nil, "Filter as column[ OP]:value, repeatable")
		f.StringArrayVarP(&c.opts.order, "order", "o", nil, "Sort key as column[:ASC|DESC], repeatable")
		f.BoolVar(&c.opts.dryRun, "dry-run", false, "Print the statement instead of running it")
		_ = c.cmd.MarkFlagRequired("columns")
	}
	selectCmd.Flags().StringVarP(&selectOpts.limit, "limit", "l", "", "Row cap n or window offset,count")
	selectCmd.Flags().BoolVar(&selectOpts.watch, "watch", false, "Re-run whenever the config file changes")

	rootCmd.AddCommand(selectCmd, rowCmd)
}

// build turns the flags into a select query using loc for timestamp literals.
func (f selectFlags) build(table string, cfg client.Config) (sqlgen.SelectQuery, error) {
	where, err := parseFields(f.where, ":", cfg.Location)
	if err != nil {
		return sqlgen.SelectQuery{}, err
	}
	limit, err := sqlgen.ParseLimit(f.limit)
	if err != nil {
		return sqlgen.SelectQuery{}, err
	}
	return sqlgen.SelectQuery{
		Columns: f.columns,
		Table:   table,
		Where:   where,
		Order:   parseOrder(f.order),
		Limit:   limit,
	}, nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	cfg, used, err := loadConfig()
	if err != nil {
		return err
	}
	q, err := selectOpts.build(args[0], cfg)
	if err != nil {
		return err
	}
	if selectOpts.dryRun {
		return printDryRun(cfg, func(g *sqlgen.Generator) (*sqlgen.Statement, error) { return g.Select(q) })
	}

	if !selectOpts.watch {
		return selectOnce(cmd.Context(), cfg, q)
	}
	if used == "" {
		return fmt.Errorf("--watch needs a config file")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w, err := watch.New(used, func(ctx context.Context) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		q, err := selectOpts.build(args[0], cfg)
		if err != nil {
			return err
		}
		return selectOnce(ctx, cfg, q)
	}, debug.With("watch"))
	if err != nil {
		return err
	}
	ui.PrintInfo("watching %s, press Ctrl+C to stop", used)
	return w.Run(ctx)
}

func selectOnce(ctx context.Context, cfg client.Config, q sqlgen.SelectQuery) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.Select(ctx, q)
	if err != nil {
		return err
	}
	if err := ui.PrintRecords(q.Columns, records); err != nil {
		return err
	}
	printLastQuery(db)
	return nil
}

func runRow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	q, err := rowOpts.build(args[0], cfg)
	if err != nil {
		return err
	}
	q.Limit = sqlgen.LimitTo(1)
	if rowOpts.dryRun {
		return printDryRun(cfg, func(g *sqlgen.Generator) (*sqlgen.Statement, error) { return g.Select(q) })
	}

	ctx := cmd.Context()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	row, found, err := db.SelectRow(ctx, q)
	if err != nil {
		return err
	}
	if !found {
		ui.PrintWarning("no row in %s matches %s", q.Table, strings.Join(rowOpts.where, ", "))
		return nil
	}
	if err := ui.PrintRecords(q.Columns, []materialize.Record{row}); err != nil {
		return err
	}
	printLastQuery(db)
	return nil
}

// printDryRun renders the generated statement without connecting.
func printDryRun(cfg client.Config, gen func(*sqlgen.Generator) (*sqlgen.Statement, error)) error {
	dialect, err := sqlgen.NewDialect(cfg.Driver)
	if err != nil {
		return err
	}
	stmt, err := gen(sqlgen.NewGenerator(dialect, sqlgen.WithLocation(cfg.Location)))
	if err != nil {
		return err
	}
	return ui.PrintMarkdown(ui.StatementMarkdown(stmt.SQL, stmt.Binding.TypeList(), stmt.Args()))
}
