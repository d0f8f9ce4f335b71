package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imgajeed76/tabview/internal/config"
	"github.com/imgajeed76/tabview/internal/source"
	"github.com/imgajeed76/tabview/internal/ui"
	"github.com/imgajeed76/tabview/internal/ui/styles"
	"github.com/imgajeed76/tabview/internal/util"
	"github.com/imgajeed76/tabview/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSQLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sql [query]",
		Short: "Show the result of a SQL query as a table",
		Long: `Run a read-only query against PostgreSQL or SQLite and show the result
as a sortable, filterable, paginated table.

Result column names are labels; records are keyed by the derived key.
Named sources from the config file supply driver, DSN and query:

  [source.staff]
  driver = "postgres"
  dsn = "postgres://localhost/hr"
  query = "SELECT * FROM employees"

Examples:
  tabview sql --driver sqlite --dsn shop.db "SELECT * FROM orders"
  tabview sql --source staff --sort "Start Date"
  tabview sql --driver postgres --dsn "$DATABASE_URL" "SELECT 1" --save-as one`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSQL,
	}

	cmd.Flags().String("driver", "", "Database driver: postgres or sqlite")
	cmd.Flags().String("dsn", "", "Connection URL (postgres) or database file (sqlite)")
	cmd.Flags().String("source", "", "Use a named source from the config file")
	cmd.Flags().String("save-as", "", "Save driver, DSN and query as a named source")
	cmd.Flags().Int("timeout", 60, "Query timeout in seconds")
	addViewFlags(cmd)

	return cmd
}

func runSQL(cmd *cobra.Command, args []string) error {
	driver, _ := cmd.Flags().GetString("driver")
	dsn, _ := cmd.Flags().GetString("dsn")
	sourceName, _ := cmd.Flags().GetString("source")
	saveAs, _ := cmd.Flags().GetString("save-as")
	timeout, _ := cmd.Flags().GetInt("timeout")

	cfg, cfgPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd)

	src := config.SourceConfig{Driver: driver, DSN: dsn}
	if len(args) > 0 {
		src.Query = args[0]
	}
	if sourceName != "" {
		named, ok := cfg.GetSource(sourceName)
		if !ok {
			return util.SourceNotFoundError(sourceName)
		}
		src = mergeSource(named, src)
	}

	if src.Query == "" {
		return util.MissingArgumentError("query", `tabview sql --driver sqlite --dsn data.db "SELECT * FROM t"`)
	}
	if src.Driver == "" || src.DSN == "" {
		return util.NewError("Missing connection").
			WithMessage("Both --driver and --dsn are required unless --source names a configured source").
			WithSuggestion(`tabview sql --driver sqlite --dsn data.db "SELECT * FROM t"`)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	log.WithFields(logrus.Fields{"driver": src.Driver, "timeout": timeout}).Debug("running query")

	spinner := ui.NewSpinner("Running query")
	spinner.Start()
	tbl, err := source.Query(ctx, src.Driver, src.DSN, src.Query)
	spinner.Stop()
	if err != nil {
		return queryError(src, err)
	}
	log.WithFields(logrus.Fields{"rows": len(tbl.Records), "columns": len(tbl.Columns)}).Debug("query loaded")

	if len(src.Columns) > 0 {
		if cols, _ := cmd.Flags().GetString("columns"); cols == "" {
			available := view.Labels(tbl.Columns)
			if err := tbl.WithLabels(src.Columns); err != nil {
				return columnError(err, available)
			}
		}
	}

	if saveAs != "" {
		if _, exists := cfg.GetSource(saveAs); exists {
			fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningMsg(fmt.Sprintf("Replacing source '%s'", saveAs)))
		}
		cfg.SetSource(saveAs, src)
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(cfgPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), styles.SuccessMsg(fmt.Sprintf("Saved source '%s' to %s", saveAs, cfgPath)))
	}

	title := src.Driver
	if sourceName != "" {
		title = sourceName
	}
	return showTable(cmd, viewRequest{title: title, table: tbl, cfg: cfg, log: log})
}

// mergeSource fills the empty fields of override from base.
func mergeSource(base, override config.SourceConfig) config.SourceConfig {
	if override.Driver != "" {
		base.Driver = override.Driver
	}
	if override.DSN != "" {
		base.DSN = override.DSN
	}
	if override.Query != "" {
		base.Query = override.Query
	}
	return base
}

// queryError wraps a failed query in a structured error.
func queryError(src config.SourceConfig, err error) error {
	var tabErr *util.TabError
	switch {
	case errors.As(err, &tabErr):
		return err
	case errors.Is(err, view.ErrKeyCollision):
		return util.KeyCollisionError(err)
	case errors.Is(err, util.ErrUnsupportedDriver):
		return util.NewError(fmt.Sprintf("Unsupported driver '%s'", src.Driver)).
			WithMessage("Supported drivers: postgres, sqlite").
			Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		return util.NewError("Query timed out").
			WithSuggestion("tabview sql --timeout 300 ...").
			Wrap(err)
	}
	return util.NewError("Query failed").
		WithContext(strings.TrimSpace(src.Query)).
		WithMessage(err.Error()).
		Wrap(err)
}
