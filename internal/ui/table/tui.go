package table

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/tabview/internal/config"
	"github.com/imgajeed76/tabview/internal/ui/styles"
	"github.com/imgajeed76/tabview/internal/view"
	"github.com/mattn/go-runewidth"
)

// ═══════════════════════════════════════════════════════════════════════════
// Constants
// ═══════════════════════════════════════════════════════════════════════════

const (
	defaultColWidth = 20
	minColWidth     = 3
	hiddenColWidth  = 3
	indicatorWidth  = 2 // " ▲" after the header label
)

// Column display state
type colState int

const (
	colStateDefault  colState = iota // truncated to defaultColWidth
	colStateExpanded                 // full width
	colStateHidden                   // minimal width (just "...")
)

// Table mode
type tableMode int

const (
	tableModeNormal tableMode = iota
	tableModeSearch
)

// Exit mode: what to print after quitting the TUI
type exitMode int

const (
	exitNormal exitMode = iota
	exitJSON
	exitRaw
	exitPlain
)

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

type tableModel struct {
	title         string
	ctrl          *view.Controller
	viewCfg       config.ViewConfig
	columns       []view.Column
	view          view.DerivedView // snapshot of the controller's current view
	cells         [][]string       // visible page, formatted
	fullColWidths []int            // actual max width of each column's content
	colStates     []colState       // display state for each column
	cursor        int              // selected row on the visible page
	colCursor     int              // selected column
	scrollX       int              // horizontal scroll offset in characters
	scrollY       int              // vertical scroll offset in rows
	width         int              // terminal width
	height        int              // terminal height
	ready         bool
	mode          tableMode
	searchInput   textinput.Model
	searchQuery   string
	exitMode      exitMode // how to exit (for re-printing data)

	// Animation state for smooth scrolling
	animating   bool // whether animation is in progress
	animTargetX int  // target scrollX for animation
	animTargetY int  // target scrollY for animation

	// Status message (flash notification, e.g. after yank)
	statusMsg   string         // message to show in footer
	statusStyle lipgloss.Style // how to render it
	statusUntil time.Time      // when to clear the message
}

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type tableKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	ShiftUp      key.Binding
	ShiftDown    key.Binding
	ShiftLeft    key.Binding
	ShiftRight   key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	JumpPage     key.Binding
	PageSizeUp   key.Binding
	PageSizeDown key.Binding
	Home         key.Binding
	End          key.Binding
	Sort         key.Binding
	Expand       key.Binding
	Hide         key.Binding
	Search       key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Quit         key.Binding
	YankCell     key.Binding
	YankRow      key.Binding
	ExportJSON   key.Binding
	ExportRaw    key.Binding
	ExportPlain  key.Binding
}

var tableKeys = tableKeyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	ShiftUp:      key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("⇧↑", "half screen up")),
	ShiftDown:    key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("⇧↓", "half screen down")),
	ShiftLeft:    key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("⇧←", "scroll half left")),
	ShiftRight:   key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("⇧→", "scroll half right")),
	NextPage:     key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
	PrevPage:     key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "previous page")),
	FirstPage:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "first page")),
	LastPage:     key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "last page")),
	JumpPage:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "go to page")),
	PageSizeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "larger pages")),
	PageSizeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller pages")),
	Home:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
	End:          key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
	Sort:         key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "sort column")),
	Expand:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "expand/default")),
	Hide:         key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "hide/default")),
	Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit row")),
	Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete row")),
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	YankCell:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy cell")),
	YankRow:      key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy row")),
	ExportJSON:   key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportRaw:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "print raw")),
	ExportPlain:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Entry Point
// ═══════════════════════════════════════════════════════════════════════════

// RunTableTUI launches the interactive table viewer over ctrl. It blocks
// until the user quits. If the user requests an export (J/R/P), every
// filtered row in the current order is printed to stdout after the TUI
// exits.
func RunTableTUI(title string, ctrl *view.Controller, cfg config.ViewConfig) error {
	m := newTableModel(title, ctrl, cfg)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Check if user requested output after exit
	if fm, ok := finalModel.(tableModel); ok {
		rows := ctrl.View().OrderedFiltered
		switch fm.exitMode {
		case exitJSON:
			return PrintJSON(os.Stdout, fm.columns, rows)
		case exitRaw:
			return PrintRaw(os.Stdout, fm.columns, rows)
		case exitPlain:
			PrintPlainTable(os.Stdout, fm.columns, rows)
		}
	}

	return nil
}

func newTableModel(title string, ctrl *view.Controller, cfg config.ViewConfig) tableModel {
	columns := ctrl.Columns()

	// Calculate full column widths over every source row so widths stay
	// put while paging and filtering
	fullColWidths := make([]int, len(columns))
	for i, c := range columns {
		fullColWidths[i] = runewidth.StringWidth(c.Label) + indicatorWidth
	}

	// Initialize all columns to default state
	colStates := make([]colState, len(columns))
	for i := range colStates {
		colStates[i] = colStateDefault
	}

	// Initialize search input
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 100
	ti.Width = 30

	m := tableModel{
		title:         title,
		ctrl:          ctrl,
		viewCfg:       cfg,
		columns:       columns,
		fullColWidths: fullColWidths,
		colStates:     colStates,
		mode:          tableModeNormal,
		searchInput:   ti,
		exitMode:      exitNormal,
	}
	if tokens := ctrl.Tokens(); len(tokens) > 0 {
		m.searchQuery = strings.Join(tokens, " ")
		m.searchInput.SetValue(m.searchQuery)
	}
	m.widenColumns(Cells(columns, ctrl.View().OrderedFiltered))
	m.refresh()
	return m
}

// widenColumns grows fullColWidths to fit cells.
func (m *tableModel) widenColumns(cells [][]string) {
	for _, row := range cells {
		for i, val := range row {
			if n := runewidth.StringWidth(val); i < len(m.fullColWidths) && n > m.fullColWidths[i] {
				m.fullColWidths[i] = n
			}
		}
	}
}

// refresh takes a new snapshot of the controller's view and keeps the
// cursor on the visible page.
func (m *tableModel) refresh() {
	m.view = m.ctrl.View()
	m.cells = Cells(m.columns, m.view.VisiblePage)
	m.widenColumns(m.cells)

	if m.cursor >= len(m.cells) {
		m.cursor = len(m.cells) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.scrollY > m.getMaxScrollY() {
		m.scrollY = m.getMaxScrollY()
	}
	m.ensureRowVisible()
}

// resetRows moves the cursor to the top after the rows were replaced by a
// new page, sort or filter.
func (m *tableModel) resetRows() {
	m.cursor = 0
	m.scrollY = 0
	m.refresh()
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) Init() tea.Cmd {
	return nil
}

func (m tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.ensureRowVisible()

	case animTickMsg:
		// Handle animation frame
		cmd := m.updateAnimation()
		return m, cmd

	case statusClearMsg:
		// Clear the flash message if it has expired
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case tea.KeyMsg:
		// Cancel any ongoing animation when user presses a key
		m.cancelAnimation()

		// Handle search mode
		if m.mode == tableModeSearch {
			return m.updateSearch(msg)
		}

		// Normal mode
		switch {
		case key.Matches(msg, tableKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, tableKeys.Search):
			m.mode = tableModeSearch
			m.searchInput.Focus()
			return m, textinput.Blink

		case key.Matches(msg, tableKeys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.ensureRowVisible()
			}

		case key.Matches(msg, tableKeys.Down):
			if m.cursor < m.displayRowCount()-1 {
				m.cursor++
				m.ensureRowVisible()
			}

		case key.Matches(msg, tableKeys.Left):
			colStartX := m.getColStartX(m.colCursor)

			if colStartX < m.scrollX {
				m.scrollX -= 3
				if m.scrollX < colStartX {
					m.scrollX = colStartX
				}
				if m.scrollX < 0 {
					m.scrollX = 0
				}
			} else if m.colCursor > 0 {
				m.colCursor--
				m.ensureColVisibleFromRight()
			}

		case key.Matches(msg, tableKeys.Right):
			colEndX := m.getColEndX(m.colCursor)
			viewportEndX := m.scrollX + m.width - 2

			if colEndX > viewportEndX {
				m.scrollX += 3
				maxX := m.getMaxScrollX()
				if m.scrollX > maxX {
					m.scrollX = maxX
				}
			} else if m.colCursor < len(m.columns)-1 {
				m.colCursor++
				m.ensureColVisibleFromLeft()
			}

		case key.Matches(msg, tableKeys.ShiftLeft):
			halfWidth := max(m.width/2, 1)
			cmd := m.startAnimation(m.scrollX-halfWidth, m.scrollY)
			return m, cmd

		case key.Matches(msg, tableKeys.ShiftRight):
			halfWidth := max(m.width/2, 1)
			cmd := m.startAnimation(m.scrollX+halfWidth, m.scrollY)
			return m, cmd

		case key.Matches(msg, tableKeys.ShiftUp):
			halfPage := max(m.visibleRowCount()/2, 1)
			m.cursor = max(m.cursor-halfPage, 0)
			cmd := m.startAnimation(m.scrollX, m.scrollY-halfPage)
			return m, cmd

		case key.Matches(msg, tableKeys.ShiftDown):
			halfPage := max(m.visibleRowCount()/2, 1)
			m.cursor = max(min(m.cursor+halfPage, m.displayRowCount()-1), 0)
			cmd := m.startAnimation(m.scrollX, m.scrollY+halfPage)
			return m, cmd

		case key.Matches(msg, tableKeys.NextPage):
			m.ctrl.NextPage()
			m.resetRows()

		case key.Matches(msg, tableKeys.PrevPage):
			m.ctrl.PreviousPage()
			m.resetRows()

		case key.Matches(msg, tableKeys.FirstPage):
			m.ctrl.GoToPage(1)
			m.resetRows()

		case key.Matches(msg, tableKeys.LastPage):
			m.ctrl.GoToPage(m.view.PageCount)
			m.resetRows()

		case key.Matches(msg, tableKeys.JumpPage):
			m.ctrl.GoToPage(int(msg.String()[0] - '0'))
			m.resetRows()

		case key.Matches(msg, tableKeys.PageSizeUp), key.Matches(msg, tableKeys.PageSizeDown):
			step := 1
			if key.Matches(msg, tableKeys.PageSizeDown) {
				step = -1
			}
			size := m.viewCfg.StepPageSize(m.ctrl.PageSize(), step)
			if err := m.ctrl.SetPageSize(size); err != nil {
				cmd := m.setStatus(err.Error(), styles.ErrorStyle)
				return m, cmd
			}
			m.refresh()
			cmd := m.setStatus(fmt.Sprintf("%d rows per page", size), styles.SuccessStyle)
			return m, cmd

		case key.Matches(msg, tableKeys.Home):
			m.cursor = 0
			m.scrollY = 0
			m.scrollX = 0

		case key.Matches(msg, tableKeys.End):
			if n := m.displayRowCount(); n > 0 {
				m.cursor = n - 1
				m.ensureRowVisible()
			}

		case key.Matches(msg, tableKeys.Sort):
			if m.colCursor >= len(m.columns) {
				break
			}
			col := m.columns[m.colCursor]
			if err := m.ctrl.HeaderClick(col.Key); err != nil {
				cmd := m.setStatus(err.Error(), styles.ErrorStyle)
				return m, cmd
			}
			m.resetRows()

		case key.Matches(msg, tableKeys.Expand):
			if m.colCursor < len(m.colStates) {
				if m.colStates[m.colCursor] == colStateExpanded {
					m.colStates[m.colCursor] = colStateDefault
				} else {
					m.colStates[m.colCursor] = colStateExpanded
				}
				m.ensureColVisible()
			}

		case key.Matches(msg, tableKeys.Hide):
			if m.colCursor < len(m.colStates) {
				if m.colStates[m.colCursor] == colStateHidden {
					m.colStates[m.colCursor] = colStateDefault
				} else {
					m.colStates[m.colCursor] = colStateHidden
				}
				m.ensureColVisible()
			}

		case key.Matches(msg, tableKeys.Edit):
			cmd := m.requestIntent("Edit", m.ctrl.Edit, styles.ColorEdit)
			return m, cmd

		case key.Matches(msg, tableKeys.Delete):
			cmd := m.requestIntent("Delete", m.ctrl.Delete, styles.ColorDelete)
			return m, cmd

		case key.Matches(msg, tableKeys.YankCell):
			cmd := m.yankCell()
			return m, cmd

		case key.Matches(msg, tableKeys.YankRow):
			cmd := m.yankRow()
			return m, cmd

		case key.Matches(msg, tableKeys.ExportJSON):
			m.exitMode = exitJSON
			return m, tea.Quit

		case key.Matches(msg, tableKeys.ExportRaw):
			m.exitMode = exitRaw
			return m, tea.Quit

		case key.Matches(msg, tableKeys.ExportPlain):
			m.exitMode = exitPlain
			return m, tea.Quit
		}
	}

	return m, nil
}

// requestIntent forwards an edit or delete intent for the selected row.
func (m *tableModel) requestIntent(name string, forward func(int) error, color lipgloss.Color) tea.Cmd {
	if m.cursor >= len(m.view.VisiblePage) {
		return nil
	}
	row := m.view.VisiblePage[m.cursor]
	if err := forward(m.cursor); err != nil {
		return m.setStatus(err.Error(), styles.ErrorStyle)
	}
	return m.setStatus(fmt.Sprintf("%s requested: row %d", name, row.Index+1), lipgloss.NewStyle().Foreground(color))
}

// ═══════════════════════════════════════════════════════════════════════════
// Search
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = tableModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.ctrl.SetFilterText("")
		m.resetRows()
		return m, nil
	case tea.KeyEnter:
		m.mode = tableModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Live filter as user types
	if q := m.searchInput.Value(); q != m.searchQuery {
		m.searchQuery = q
		m.ctrl.SetFilterText(q)
		m.resetRows()
	}

	return m, cmd
}

// matchesToken reports whether val contains any active filter token.
func (m tableModel) matchesToken(val string) bool {
	return val != "" && view.ContainsAny(val, m.view.Tokens)
}

// ═══════════════════════════════════════════════════════════════════════════
// Row / Column Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) displayRowCount() int {
	return len(m.cells)
}

func (m tableModel) getDisplayRow(displayIdx int) []string {
	if displayIdx >= 0 && displayIdx < len(m.cells) {
		return m.cells[displayIdx]
	}
	return nil
}

func (m tableModel) getColDisplayWidth(colIdx int) int {
	if colIdx >= len(m.colStates) {
		return defaultColWidth
	}

	switch m.colStates[colIdx] {
	case colStateExpanded:
		return max(m.fullColWidths[colIdx], minColWidth)
	case colStateHidden:
		return hiddenColWidth
	default:
		return max(min(m.fullColWidths[colIdx], defaultColWidth), minColWidth)
	}
}

func (m tableModel) getColStartX(colIdx int) int {
	x := 0
	for i := 0; i < colIdx && i < len(m.columns); i++ {
		x += m.getColDisplayWidth(i) + 2 // +2 for column separator spacing
	}
	return x
}

func (m tableModel) getColEndX(colIdx int) int {
	return m.getColStartX(colIdx) + m.getColDisplayWidth(colIdx)
}

func (m tableModel) getTotalWidth() int {
	total := 0
	for i := range m.columns {
		total += m.getColDisplayWidth(i) + 2
	}
	return total
}

func (m tableModel) getMaxScrollX() int {
	maxX := m.getTotalWidth() - m.width + 2 // +2 for some padding
	if maxX < 0 {
		return 0
	}
	return maxX
}

func (m tableModel) getMaxScrollY() int {
	maxY := m.displayRowCount() - m.visibleRowCount()
	if maxY < 0 {
		return 0
	}
	return maxY
}

// ═══════════════════════════════════════════════════════════════════════════
// Animation
// ═══════════════════════════════════════════════════════════════════════════

type animTickMsg time.Time

const animationFrameInterval = 16 * time.Millisecond
const animationFraction = 0.25
const animationSnapThreshold = 1

func animTick() tea.Cmd {
	return tea.Tick(animationFrameInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

func (m *tableModel) startAnimation(targetX, targetY int) tea.Cmd {
	maxX := m.getMaxScrollX()
	if targetX < 0 {
		targetX = 0
	} else if targetX > maxX {
		targetX = maxX
	}

	maxY := m.getMaxScrollY()
	if targetY < 0 {
		targetY = 0
	} else if targetY > maxY {
		targetY = maxY
	}

	m.animTargetX = targetX
	m.animTargetY = targetY

	// Accessible mode jumps straight to the target
	if styles.IsAccessible() {
		m.scrollX, m.scrollY = targetX, targetY
		m.animating = false
		return nil
	}

	if targetX == m.scrollX && targetY == m.scrollY {
		m.animating = false
		return nil
	}

	if !m.animating {
		m.animating = true
		return animTick()
	}

	return nil
}

func (m *tableModel) updateAnimation() tea.Cmd {
	if !m.animating {
		return nil
	}

	remainingX := m.animTargetX - m.scrollX
	remainingY := m.animTargetY - m.scrollY

	if abs(remainingX) <= animationSnapThreshold && abs(remainingY) <= animationSnapThreshold {
		m.scrollX = m.animTargetX
		m.scrollY = m.animTargetY
		m.animating = false
		return nil
	}

	if remainingX != 0 {
		deltaX := int(float64(remainingX) * animationFraction)
		if deltaX == 0 {
			if remainingX > 0 {
				deltaX = 1
			} else {
				deltaX = -1
			}
		}
		m.scrollX += deltaX
	}

	if remainingY != 0 {
		deltaY := int(float64(remainingY) * animationFraction)
		if deltaY == 0 {
			if remainingY > 0 {
				deltaY = 1
			} else {
				deltaY = -1
			}
		}
		m.scrollY += deltaY
	}

	return animTick()
}

func (m *tableModel) cancelAnimation() {
	m.animating = false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ═══════════════════════════════════════════════════════════════════════════
// Status Message (flash notification)
// ═══════════════════════════════════════════════════════════════════════════

type statusClearMsg struct{}

const statusDuration = 2 * time.Second

// setStatus sets a temporary status message that auto-clears.
func (m *tableModel) setStatus(msg string, style lipgloss.Style) tea.Cmd {
	m.statusMsg = msg
	m.statusStyle = style
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(t time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// ═══════════════════════════════════════════════════════════════════════════
// Clipboard (yank)
// ═══════════════════════════════════════════════════════════════════════════

// yankCell copies the selected cell value to the system clipboard.
func (m *tableModel) yankCell() tea.Cmd {
	row := m.getDisplayRow(m.cursor)
	if row == nil {
		return nil
	}
	var val string
	if m.colCursor < len(row) {
		val = row[m.colCursor]
	}
	if err := clipboard.WriteAll(val); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err), styles.ErrorStyle)
	}
	return m.setStatus(fmt.Sprintf("Copied: %s", Truncate(val, 40)), styles.SuccessStyle)
}

// yankRow copies the entire selected row (tab-separated) to the clipboard.
func (m *tableModel) yankRow() tea.Cmd {
	row := m.getDisplayRow(m.cursor)
	if row == nil {
		return nil
	}
	val := strings.Join(row, "\t")
	if err := clipboard.WriteAll(val); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err), styles.ErrorStyle)
	}
	return m.setStatus(fmt.Sprintf("Copied row (%d columns)", len(row)), styles.SuccessStyle)
}

// ═══════════════════════════════════════════════════════════════════════════
// ANSI-aware Viewport Slicing
// ═══════════════════════════════════════════════════════════════════════════

// applyViewport extracts a horizontal slice of a string, handling ANSI escape
// codes properly. It returns the portion of the string from visual column
// startX with the given width.
func applyViewport(s string, startX, width int) string {
	if width <= 0 {
		return ""
	}
	if startX < 0 {
		startX = 0
	}

	var result strings.Builder
	result.Grow(width + 64)

	visualPos := 0
	outputChars := 0
	stylesApplied := false
	inEscape := false
	escapeSeq := strings.Builder{}

	var activeStyles []string

	runes := []rune(s)
	i := 0

	for i < len(runes) && outputChars < width {
		r := runes[i]

		if r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[' {
			inEscape = true
			escapeSeq.Reset()
			escapeSeq.WriteRune(r)
			i++
			continue
		}

		if inEscape {
			escapeSeq.WriteRune(r)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
				seq := escapeSeq.String()

				if r == 'm' {
					if seq == "\x1b[0m" || seq == "\x1b[m" {
						activeStyles = nil
					} else {
						activeStyles = append(activeStyles, seq)
					}
				}

				if visualPos >= startX {
					result.WriteString(seq)
				}
			}
			i++
			continue
		}

		if visualPos >= startX {
			if !stylesApplied && len(activeStyles) > 0 {
				for _, style := range activeStyles {
					result.WriteString(style)
				}
				stylesApplied = true
			}
			result.WriteRune(r)
			outputChars++
		}

		visualPos++
		i++
	}

	if len(activeStyles) > 0 && outputChars > 0 {
		result.WriteString("\x1b[0m")
	}

	if outputChars < width {
		result.WriteString(strings.Repeat(" ", width-outputChars))
	}

	return result.String()
}

// ═══════════════════════════════════════════════════════════════════════════
// Scroll Helpers
// ═══════════════════════════════════════════════════════════════════════════

func (m *tableModel) ensureRowVisible() {
	visibleRows := m.visibleRowCount()
	if visibleRows <= 0 {
		visibleRows = 1
	}
	if m.cursor < m.scrollY {
		m.scrollY = m.cursor
	} else if m.cursor >= m.scrollY+visibleRows {
		m.scrollY = m.cursor - visibleRows + 1
	}
}

func (m *tableModel) ensureColVisible() {
	colStartX := m.getColStartX(m.colCursor)
	colEndX := m.getColEndX(m.colCursor)
	colWidth := colEndX - colStartX
	viewportWidth := m.width - 2

	if colStartX < m.scrollX {
		m.scrollX = colStartX
	} else if colEndX > m.scrollX+viewportWidth {
		if colWidth <= viewportWidth {
			m.scrollX = colEndX - viewportWidth
		} else {
			m.scrollX = colStartX
		}
	}

	maxX := m.getMaxScrollX()
	if m.scrollX < 0 {
		m.scrollX = 0
	} else if m.scrollX > maxX {
		m.scrollX = maxX
	}
}

func (m *tableModel) ensureColVisibleFromLeft() {
	colStartX := m.getColStartX(m.colCursor)
	m.scrollX = colStartX

	maxX := m.getMaxScrollX()
	if m.scrollX < 0 {
		m.scrollX = 0
	} else if m.scrollX > maxX {
		m.scrollX = maxX
	}
}

func (m *tableModel) ensureColVisibleFromRight() {
	colStartX := m.getColStartX(m.colCursor)
	colEndX := m.getColEndX(m.colCursor)
	colWidth := colEndX - colStartX
	viewportWidth := m.width - 2

	if colWidth <= viewportWidth {
		m.scrollX = colEndX - viewportWidth
		if m.scrollX < colStartX {
			m.scrollX = colStartX
		}
	} else {
		m.scrollX = colEndX - viewportWidth
	}

	maxX := m.getMaxScrollX()
	if m.scrollX < 0 {
		m.scrollX = 0
	} else if m.scrollX > maxX {
		m.scrollX = maxX
	}
}

func (m tableModel) visibleRowCount() int {
	count := m.height - 7 // title, filter, header, separator; indicators, summary, help
	if count < 1 {
		count = 1
	}
	return count
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sb strings.Builder

	// Header with title info
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	if m.view.Total != m.view.SourceTotal {
		sb.WriteString(styles.Render(headerStyle, fmt.Sprintf("%s: %d/%d rows, %d columns", m.title, m.view.Total, m.view.SourceTotal, len(m.columns))))
	} else {
		sb.WriteString(styles.Render(headerStyle, fmt.Sprintf("%s: %d rows, %d columns", m.title, m.view.SourceTotal, len(m.columns))))
	}

	// Show sort and state indicators for modified columns
	var stateInfo []string
	if s := m.view.Sort; s.Active() {
		stateInfo = append(stateInfo, fmt.Sprintf("sorted by %s %s", m.labelOf(s.Key), styles.SortIndicator(true, s.Ascending)))
	}
	for i, state := range m.colStates {
		if state == colStateExpanded {
			stateInfo = append(stateInfo, fmt.Sprintf("%s+", m.columns[i].Label))
		} else if state == colStateHidden {
			stateInfo = append(stateInfo, fmt.Sprintf("%s-", m.columns[i].Label))
		}
	}
	if len(stateInfo) > 0 {
		sb.WriteString(styles.MutedMsg(fmt.Sprintf("  [%s]", strings.Join(stateInfo, ", "))))
	}
	sb.WriteString("\n")

	// Search bar
	if m.mode == tableModeSearch {
		sb.WriteString(fmt.Sprintf("/%s\n", m.searchInput.View()))
	} else if m.searchQuery != "" {
		sb.WriteString(styles.MutedMsg(fmt.Sprintf("filter: %s", m.searchQuery)))
		sb.WriteString("\n")
	} else {
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderTable())

	// Footer: position, then status or help
	sb.WriteString("\n")
	sb.WriteString(styles.MutedMsg(m.view.Summary()))
	if m.view.PageCount > 1 {
		sb.WriteString("  ")
		sb.WriteString(styles.PageList(m.view.Page, m.view.PageCount))
	}
	sb.WriteString(styles.MutedMsg(fmt.Sprintf("  %d/page", m.view.PageSize)))
	sb.WriteString("\n")
	if m.statusMsg != "" && time.Now().Before(m.statusUntil) {
		sb.WriteString(styles.Render(m.statusStyle, m.statusMsg))
	} else if m.mode == tableModeSearch {
		sb.WriteString(styles.MutedMsg("type to filter  enter confirm  esc clear"))
	} else {
		sb.WriteString(styles.MutedMsg("↑↓←→ nav  s sort  / filter  n/p page  +/- size  e edit  d delete  x expand  H hide  y copy  J json  R raw  P table  q quit"))
	}

	return sb.String()
}

func (m tableModel) labelOf(key string) string {
	for _, c := range m.columns {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}

// ═══════════════════════════════════════════════════════════════════════════
// Render Table
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) renderTable() string {
	var sb strings.Builder

	if len(m.columns) == 0 {
		return "No columns"
	}

	viewportWidth := m.width - 2

	separatorStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	selectedSepStyle := lipgloss.NewStyle().Foreground(styles.Accent)
	selectedRowStyle := styles.SelectedStyle
	selectedCellStyle := lipgloss.NewStyle().Background(styles.Accent).Foreground(lipgloss.Color("#000000"))
	normalStyle := lipgloss.NewStyle()

	headerLine := m.buildFullHeaderLine(styles.HeaderStyle, styles.SortedHeaderStyle)
	separatorLine := m.buildFullSeparatorLine(separatorStyle, selectedSepStyle)

	sb.WriteString(applyViewport(headerLine, m.scrollX, viewportWidth))
	sb.WriteString("\n")
	sb.WriteString(applyViewport(separatorLine, m.scrollX, viewportWidth))
	sb.WriteString("\n")

	if len(m.cells) == 0 {
		sb.WriteString(styles.MutedMsg("No matching entries"))
		sb.WriteString("\n")
	}

	visibleRows := m.visibleRowCount()
	displayCount := m.displayRowCount()
	endRow := min(m.scrollY+visibleRows, displayCount)

	for displayIdx := m.scrollY; displayIdx < endRow; displayIdx++ {
		row := m.getDisplayRow(displayIdx)
		if row == nil {
			continue
		}
		isSelectedRow := displayIdx == m.cursor

		rowLine := m.buildFullRowLine(row, isSelectedRow, normalStyle, selectedRowStyle, selectedCellStyle, styles.MatchStyle)
		sb.WriteString(applyViewport(rowLine, m.scrollX, viewportWidth))
		sb.WriteString("\n")
	}

	// Scroll indicators
	var indicators []string
	if m.scrollX > 0 {
		indicators = append(indicators, "◀")
	}
	if m.scrollX+viewportWidth < m.getTotalWidth() {
		indicators = append(indicators, "▶")
	}
	if m.scrollY > 0 {
		indicators = append(indicators, "▲")
	}
	if m.scrollY+visibleRows < displayCount {
		indicators = append(indicators, "▼")
	}
	if len(indicators) > 0 {
		sb.WriteString(styles.MutedMsg(strings.Join(indicators, " ")))
	}

	return sb.String()
}

func (m tableModel) buildFullHeaderLine(normalStyle, sortedStyle lipgloss.Style) string {
	var sb strings.Builder

	for i, col := range m.columns {
		colWidth := m.getColDisplayWidth(i)
		sorted := m.view.Sort.Key == col.Key

		var displayName string
		if m.colStates[i] == colStateHidden {
			displayName = PadOrTruncate("...", colWidth)
		} else {
			label := Truncate(col.Label, max(colWidth-indicatorWidth, 1))
			displayName = PadOrTruncate(label+" "+styles.SortIndicator(sorted, m.view.Sort.Ascending), colWidth)
		}

		style := normalStyle
		if sorted {
			style = sortedStyle
		}
		if i == m.colCursor {
			style = style.Underline(true)
		}
		sb.WriteString(styles.Render(style, displayName))
		sb.WriteString("  ")
	}

	return sb.String()
}

func (m tableModel) buildFullSeparatorLine(normalStyle, selectedStyle lipgloss.Style) string {
	var sb strings.Builder

	for i := range m.columns {
		sep := strings.Repeat("─", m.getColDisplayWidth(i))

		if i == m.colCursor {
			sb.WriteString(styles.Render(selectedStyle, sep))
		} else {
			sb.WriteString(styles.Render(normalStyle, sep))
		}
		sb.WriteString("  ")
	}

	return sb.String()
}

func (m tableModel) buildFullRowLine(row []string, isSelectedRow bool, normalStyle, selectedRowStyle, selectedCellStyle, highlightStyle lipgloss.Style) string {
	var sb strings.Builder

	for i := range m.columns {
		colWidth := m.getColDisplayWidth(i)

		var val string
		if i < len(row) {
			val = row[i]
		}

		var displayVal string
		if m.colStates[i] == colStateHidden {
			displayVal = PadOrTruncate("...", colWidth)
		} else {
			displayVal = PadOrTruncate(val, colWidth)
		}

		isSelectedCol := i == m.colCursor

		switch {
		case isSelectedRow && isSelectedCol:
			sb.WriteString(styles.Render(selectedCellStyle, displayVal))
		case isSelectedRow:
			sb.WriteString(styles.Render(selectedRowStyle, displayVal))
		case m.matchesToken(val):
			sb.WriteString(styles.Render(highlightStyle, displayVal))
		default:
			sb.WriteString(styles.Render(normalStyle, displayVal))
		}
		sb.WriteString("  ")
	}

	return sb.String()
}
