package view

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultPageSize is the page size used when no WithPageSize option is given.
const DefaultPageSize = 10

// Row is a record together with its position in the source collection.
type Row struct {
	Index  int
	Record Record
}

// DerivedView is the sorted, filtered and paginated result of the current
// state. It is rebuilt on every action and never modified afterwards.
type DerivedView struct {
	OrderedFiltered []Row
	VisiblePage     []Row
	PageCount       int
	RangeStart      int
	RangeEnd        int

	Page        int
	PageSize    int
	Total       int // rows left after filtering
	SourceTotal int // rows in the source collection
	HasPrevious bool
	HasNext     bool
	Sort        SortState
	Tokens      []string
}

// Summary renders the footer line, e.g. "Showing 11 to 20 of 42 entries".
func (v DerivedView) Summary() string {
	return fmt.Sprintf("Showing %d to %d of %d entries", v.RangeStart, v.RangeEnd, v.Total)
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the initial page size.
func WithPageSize(size int) Option {
	return func(c *Controller) { c.pageSize = size }
}

// WithSortOptions passes options through to every sort the controller runs.
func WithSortOptions(opts ...SortOption) Option {
	return func(c *Controller) { c.sortOpts = append(c.sortOpts, opts...) }
}

// WithLogger sets the logger actions are traced to. Logging is discarded
// by default.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

// WithEditHandler registers the receiver of edit intents.
func WithEditHandler(fn func(Row)) Option {
	return func(c *Controller) { c.onEdit = fn }
}

// WithDeleteHandler registers the receiver of delete intents.
func WithDeleteHandler(fn func(Row)) Option {
	return func(c *Controller) { c.onDelete = fn }
}

// Controller owns the sort, filter and pagination state of one table and
// derives its DerivedView. It is not safe for concurrent use.
type Controller struct {
	records []Record
	columns []Column
	known   map[string]bool

	sortOpts []SortOption
	sortCfg  sortConfig
	log      logrus.FieldLogger

	sort     SortState
	tokens   []string
	pageSize int
	page     int

	ordered []int // positions into records, filtered and sorted
	rows    []Row // ordered resolved to rows; replaced, never modified
	view    DerivedView

	onEdit   func(Row)
	onDelete func(Row)
}

// New creates a controller over records. It fails if two columns share a
// key, a column key is empty, or the page size is not positive.
func New(records []Record, columns []Column, opts ...Option) (*Controller, error) {
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}

	c := &Controller{
		records:  append([]Record(nil), records...),
		columns:  append([]Column(nil), columns...),
		known:    make(map[string]bool, len(columns)),
		pageSize: DefaultPageSize,
		page:     1,
	}
	for _, col := range columns {
		c.known[col.Key] = true
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pageSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, c.pageSize)
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	c.sortCfg = newSortConfig(c.sortOpts)

	c.refilter()
	return c, nil
}

// View returns the current derived view.
func (c *Controller) View() DerivedView { return c.view }

// Columns returns the column descriptors.
func (c *Controller) Columns() []Column { return append([]Column(nil), c.columns...) }

// SortState returns the active sort.
func (c *Controller) SortState() SortState { return c.sort }

// Tokens returns the active filter tokens.
func (c *Controller) Tokens() []string { return append([]string(nil), c.tokens...) }

// PageSize returns the current page size.
func (c *Controller) PageSize() int { return c.pageSize }

// Page returns the current, clamped page.
func (c *Controller) Page() int { return c.page }

// HeaderClick handles a click on the header of column key: a new column is
// sorted descending, a repeated click flips the direction. The currently
// filtered rows are re-sorted in their displayed order, so rows that tie
// keep their previous relative order.
func (c *Controller) HeaderClick(key string) error {
	if !c.known[key] {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	c.sort = c.sort.Toggle(key)
	c.log.WithFields(logrus.Fields{"key": key, "ascending": c.sort.Ascending}).Debug("header clicked")

	sortIndices(c.records, c.ordered, c.sort.Key, c.sort.Ascending, c.sortCfg)
	c.publishRows()
	return nil
}

// SortBy sorts by key in the given direction without toggling.
func (c *Controller) SortBy(key string, ascending bool) error {
	if !c.known[key] {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	c.sort = SortState{Key: key, Ascending: ascending}
	c.log.WithFields(logrus.Fields{"key": key, "ascending": ascending}).Debug("sort set")

	sortIndices(c.records, c.ordered, c.sort.Key, c.sort.Ascending, c.sortCfg)
	c.publishRows()
	return nil
}

// SetFilterText replaces the filter with the whitespace-separated tokens of
// raw. Filtering starts again from the source collection, the active sort
// is re-applied and the page resets to 1.
func (c *Controller) SetFilterText(raw string) {
	c.tokens = Tokenize(raw)
	c.page = 1
	c.log.WithField("tokens", c.tokens).Debug("filter changed")

	c.refilter()
}

// SetPageSize changes the page size. The current page is clamped to the
// new page count. A non-positive size is rejected and leaves the state
// unchanged.
func (c *Controller) SetPageSize(size int) error {
	if size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	c.pageSize = size
	c.log.WithField("size", size).Debug("page size changed")

	c.repaginate()
	return nil
}

// GoToPage moves to page n, clamped into the valid range.
func (c *Controller) GoToPage(n int) {
	c.page = n
	c.log.WithField("page", n).Debug("page requested")
	c.repaginate()
}

// MovePage moves delta pages forward (or backward when negative).
func (c *Controller) MovePage(delta int) { c.GoToPage(c.page + delta) }

// NextPage moves one page forward.
func (c *Controller) NextPage() { c.MovePage(1) }

// PreviousPage moves one page back.
func (c *Controller) PreviousPage() { c.MovePage(-1) }

// SetRecords replaces the source collection. The current filter and sort
// are applied to the new records and the page is clamped.
func (c *Controller) SetRecords(records []Record) {
	c.records = append([]Record(nil), records...)
	c.log.WithField("count", len(records)).Debug("records replaced")

	c.refilter()
}

// Edit forwards an edit intent for row pos of the visible page.
func (c *Controller) Edit(pos int) error {
	return c.forward(pos, c.onEdit, "edit")
}

// Delete forwards a delete intent for row pos of the visible page.
func (c *Controller) Delete(pos int) error {
	return c.forward(pos, c.onDelete, "delete")
}

func (c *Controller) forward(pos int, fn func(Row), intent string) error {
	if pos < 0 || pos >= len(c.view.VisiblePage) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, pos)
	}
	row := c.view.VisiblePage[pos]
	c.log.WithFields(logrus.Fields{"intent": intent, "index": row.Index}).Debug("row intent")
	if fn != nil {
		fn(Row{Index: row.Index, Record: c.records[row.Index]})
	}
	return nil
}

// refilter rebuilds the ordered rows from the source: filter, then the
// active sort if any.
func (c *Controller) refilter() {
	c.ordered = filterIndices(c.records, c.tokens)
	if c.sort.Active() {
		sortIndices(c.records, c.ordered, c.sort.Key, c.sort.Ascending, c.sortCfg)
	}
	c.publishRows()
}

// publishRows resolves the ordered positions to rows and repaginates.
func (c *Controller) publishRows() {
	rows := make([]Row, len(c.ordered))
	for i, j := range c.ordered {
		rows[i] = Row{Index: j, Record: c.records[j]}
	}
	c.rows = rows
	c.repaginate()
}

// repaginate clamps the page, persists it, and publishes a new view. The
// sorted and filtered rows are reused as they are.
func (c *Controller) repaginate() {
	w := Paginate(len(c.rows), c.pageSize, c.page)
	c.page = w.Page

	c.view = DerivedView{
		OrderedFiltered: c.rows,
		VisiblePage:     c.rows[w.Start:w.End:w.End],
		PageCount:       w.PageCount,
		RangeStart:      w.RangeStart,
		RangeEnd:        w.RangeEnd,
		Page:            w.Page,
		PageSize:        c.pageSize,
		Total:           len(c.rows),
		SourceTotal:     len(c.records),
		HasPrevious:     w.Page > 1,
		HasNext:         w.Page < w.PageCount,
		Sort:            c.sort,
		Tokens:          append([]string(nil), c.tokens...),
	}
}
