package styles

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
	SymbolAsc     = "▲"
	SymbolDesc    = "▼"
	SymbolUnsort  = "⇅"
)

var forceNoColor bool

// SetNoColor disables colors regardless of the environment
func SetNoColor(v bool) {
	forceNoColor = v
}

// NoColor checks if colors should be disabled
func NoColor() bool {
	return forceNoColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TABVIEW_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: no animations, no spinner, simplified output
func IsAccessible() bool {
	return os.Getenv("TABVIEW_ACCESSIBLE") == "1" || os.Getenv("TABVIEW_ACCESSIBLE") == "true"
}

// Semantic styles - use these instead of raw colors
var (
	// Message types
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// Table display
	HeaderStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	SortedHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSortedHeader)
	MatchStyle        = lipgloss.NewStyle().Foreground(ColorMatch)
	PageCurrentStyle  = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).Background(ColorPageCurrent)
	PageOtherStyle    = lipgloss.NewStyle().Foreground(ColorPageOther)

	// Interactive TUI
	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)
)

// ═══════════════════════════════════════════════════════════════════════════
// Render functions - centralized formatting with NoColor support
// ═══════════════════════════════════════════════════════════════════════════

// render applies a style if colors are enabled
func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// Render applies s unless colors are disabled
func Render(s lipgloss.Style, text string) string {
	return render(s, text)
}

// SortIndicator returns the header arrow for a column
func SortIndicator(sorted, ascending bool) string {
	switch {
	case !sorted:
		return SymbolUnsort
	case ascending:
		return SymbolAsc
	default:
		return SymbolDesc
	}
}

// PageList renders "1 2 [3] 4" style page navigation, eliding the middle
// of long lists around the current page.
func PageList(current, count int) string {
	var parts []string
	for p := 1; p <= count; p++ {
		near := p == 1 || p == count || (p >= current-2 && p <= current+2)
		if !near {
			if len(parts) > 0 && parts[len(parts)-1] != "…" {
				parts = append(parts, "…")
			}
			continue
		}
		label := fmt.Sprintf(" %d ", p)
		if p == current {
			if NoColor() {
				label = fmt.Sprintf("[%d]", p)
			}
			parts = append(parts, render(PageCurrentStyle, label))
		} else {
			parts = append(parts, render(PageOtherStyle, label))
		}
	}
	return strings.Join(parts, "")
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", render(WarningStyle, symbol), msg)
}

// InfoMsg formats an info message
func InfoMsg(msg string) string {
	return render(InfoStyle, msg)
}

// MutedMsg formats muted/secondary text
func MutedMsg(msg string) string {
	return render(MutedStyle, msg)
}
