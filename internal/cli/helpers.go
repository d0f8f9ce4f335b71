package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/imgajeed76/tabview/internal/config"
	"github.com/imgajeed76/tabview/internal/source"
	"github.com/imgajeed76/tabview/internal/ui/styles"
	"github.com/imgajeed76/tabview/internal/ui/table"
	"github.com/imgajeed76/tabview/internal/util"
	"github.com/imgajeed76/tabview/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// displayConfigPath shortens the config path for help output.
func displayConfigPath() string {
	path := config.Path()
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(path, home) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}

// loadConfig reads the file named by --config, or the default config file.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, util.NewError("Invalid config file").
			WithContext(path).
			WithMessage(err.Error()).
			Wrap(err)
	}
	return cfg, path, nil
}

// newLogger returns the diagnostic logger. Output is discarded unless
// --verbose is set.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetOutput(cmd.ErrOrStderr())

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetOutput(io.Discard)
	}
	return log
}

// addViewFlags registers the flags shared by every command that shows a
// table.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("columns", "", `Comma-separated column labels to show, e.g. "First Name,Age"`)
	cmd.Flags().Int("page-size", 0, "Rows per page (default from config)")
	cmd.Flags().String("sort", "", "Sort by column key or label")
	cmd.Flags().Bool("asc", false, "Sort ascending (default descending)")
	cmd.Flags().String("filter", "", "Show rows containing every word")
	cmd.Flags().Int("page", 1, "Page to show")
	cmd.Flags().Bool("all", false, "Print every filtered row instead of one page (non-interactive output)")
	cmd.Flags().Bool("raw", false, "Output raw values without formatting (for piping)")
	cmd.Flags().Bool("json", false, "Output results as JSON array")
	cmd.Flags().Bool("no-pager", false, "Disable interactive table view")
}

// viewRequest is everything needed to put a loaded table on screen.
type viewRequest struct {
	title string
	table *source.Table
	cfg   *config.Config
	log   logrus.FieldLogger
}

// intent is an edit or delete request raised from the TUI.
type intent struct {
	action string
	row    view.Row
}

// showTable applies the view flags to a new controller and displays it.
func showTable(cmd *cobra.Command, req viewRequest) error {
	flags := cmd.Flags()
	columnsFlag, _ := flags.GetString("columns")
	pageSize, _ := flags.GetInt("page-size")
	sortKey, _ := flags.GetString("sort")
	ascending, _ := flags.GetBool("asc")
	filter, _ := flags.GetString("filter")
	page, _ := flags.GetInt("page")
	all, _ := flags.GetBool("all")
	raw, _ := flags.GetBool("raw")
	jsonOutput, _ := flags.GetBool("json")
	noPager, _ := flags.GetBool("no-pager")

	if columnsFlag != "" {
		available := view.Labels(req.table.Columns)
		if err := req.table.WithLabels(splitLabels(columnsFlag)); err != nil {
			return columnError(err, available)
		}
	}
	if len(req.table.Columns) == 0 {
		return util.NewError("Nothing to show").
			WithMessage("The source has no columns").
			Wrap(util.ErrNoColumns)
	}
	if pageSize == 0 {
		pageSize = req.cfg.View.PageSize
	}

	tag, err := req.cfg.Language()
	if err != nil {
		return err
	}

	var intents []intent
	ctrl, err := view.New(req.table.Records, req.table.Columns,
		view.WithPageSize(pageSize),
		view.WithLogger(req.log),
		view.WithSortOptions(
			view.WithLocale(tag),
			view.WithDateLayouts(req.cfg.View.DateLayouts...),
		),
		view.WithEditHandler(func(r view.Row) { intents = append(intents, intent{"edit", r}) }),
		view.WithDeleteHandler(func(r view.Row) { intents = append(intents, intent{"delete", r}) }),
	)
	if err != nil {
		return columnError(err, nil)
	}

	if filter != "" {
		ctrl.SetFilterText(filter)
	}
	if sortKey != "" {
		col, ok := view.FindColumn(req.table.Columns, sortKey)
		if !ok {
			return util.NewError(fmt.Sprintf("Unknown sort column '%s'", sortKey)).
				WithMessage("Available columns: " + strings.Join(view.Labels(req.table.Columns), ", ")).
				Wrap(view.ErrUnknownColumn)
		}
		if err := ctrl.SortBy(col.Key, ascending); err != nil {
			return err
		}
	}
	ctrl.GoToPage(page)

	opts := table.DisplayOptions{
		JSON:    jsonOutput,
		Raw:     raw,
		NoPager: noPager,
		All:     all,
		View:    req.cfg.View,
	}
	if out := cmd.OutOrStdout(); out != os.Stdout {
		opts.Out = out
	}
	if err := table.DisplayResults(req.title, ctrl, opts); err != nil {
		return err
	}

	for _, in := range intents {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.InfoMsg(fmt.Sprintf("%s requested: row %d (%s)", in.action, in.row.Index+1, in.row.Record)))
	}
	return nil
}

// columnError turns key collisions and unknown column names into
// structured errors.
func columnError(err error, available []string) error {
	switch {
	case errors.Is(err, view.ErrKeyCollision):
		return util.KeyCollisionError(err)
	case errors.Is(err, view.ErrUnknownColumn):
		te := util.NewError("Unknown column").WithMessage(err.Error())
		if len(available) > 0 {
			te = te.WithSuggestion("Available columns: " + strings.Join(available, ", "))
		}
		return te.Wrap(err)
	}
	return err
}


func splitLabels(s string) []string {
	var labels []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			labels = append(labels, part)
		}
	}
	return labels
}
