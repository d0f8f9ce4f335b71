package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
// Dark mode optimized, semantic colors
var (
	// Primary semantic colors
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - highlights, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - success
	Warning = lipgloss.Color("#F59E0B") // amber-500 - warnings, search matches
	Error   = lipgloss.Color("#EF4444") // red-500 - errors, delete intents
	Info    = lipgloss.Color("#3B82F6") // blue-500 - info, column headers
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	// Text colors
	TextPrimary = lipgloss.Color("#F9FAFB") // gray-50 - main text

	// Background colors
	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - selected row
)

// Semantic color aliases for clarity
var (
	// Table colors
	ColorHeader       = Info    // Column headers
	ColorSortedHeader = Accent  // Header of the sorted column
	ColorMatch        = Warning // Cells containing a filter token
	ColorPageCurrent  = Accent  // Current page in the page list
	ColorPageOther    = Muted   // Other pages

	// Intent colors
	ColorEdit   = Info  // Edit intent flash
	ColorDelete = Error // Delete intent flash
)
