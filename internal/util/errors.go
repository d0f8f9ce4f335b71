package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout tabview
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	ErrNoColumns         = errors.New("no columns to display")
	ErrSourceNotFound    = errors.New("source not found")
)

// TabError is a structured error with context and suggestions
type TabError struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *TabError) Error() string {
	return e.Title
}

func (e *TabError) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *TabError) Format() string {
	var sb strings.Builder

	// Title
	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))

	// Context/message
	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Context))
	}

	// Causes
	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}

	// Suggestions
	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}

	return sb.String()
}

// NewError creates a new TabError
func NewError(title string) *TabError {
	return &TabError{Title: title}
}

// WithMessage adds a detailed message
func (e *TabError) WithMessage(msg string) *TabError {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *TabError) WithContext(ctx string) *TabError {
	e.Context = ctx
	return e
}

// WithCause adds a possible cause
func (e *TabError) WithCause(cause string) *TabError {
	e.Causes = append(e.Causes, cause)
	return e
}

// WithCauses adds multiple possible causes
func (e *TabError) WithCauses(causes ...string) *TabError {
	e.Causes = append(e.Causes, causes...)
	return e
}

// WithSuggestion adds an actionable suggestion
func (e *TabError) WithSuggestion(sug string) *TabError {
	e.Suggestions = append(e.Suggestions, sug)
	return e
}

// WithSuggestions adds multiple suggestions
func (e *TabError) WithSuggestions(sugs ...string) *TabError {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

// Wrap wraps an underlying error
func (e *TabError) Wrap(err error) *TabError {
	e.Err = err
	return e
}

// ══════════════════════════════════════════════════════════════════════════
// Pre-built error constructors for common cases
// ══════════════════════════════════════════════════════════════════════════

// KeyCollisionError returns a structured error for column labels that
// derive the same key
func KeyCollisionError(err error) *TabError {
	return NewError("Column labels collide").
		WithMessage(err.Error()).
		WithCause("Two labels differ only in case or spacing").
		WithSuggestions(
			"tabview columns \"First Name\" \"Last Name\"   # Preview derived keys",
		).
		Wrap(err)
}

// UnsupportedFormatError returns a structured error for unknown input files
func UnsupportedFormatError(path string) *TabError {
	return NewError(fmt.Sprintf("Cannot read '%s'", path)).
		WithMessage("Only JSON and CSV files are supported").
		WithSuggestions(
			fmt.Sprintf("tabview show --format json %s", path),
			fmt.Sprintf("tabview show --format csv %s", path),
		).
		Wrap(ErrUnsupportedFormat)
}

// DatabaseConnectionError returns a structured error for DB connection issues
func DatabaseConnectionError(driver, dsn string, err error) *TabError {
	return NewError("Cannot connect to database").
		WithContext(fmt.Sprintf("%s: %s", driver, dsn)).
		WithCauses(
			"Database server is not running",
			"Invalid connection credentials",
			"Database file does not exist",
		).
		Wrap(err)
}

// SourceNotFoundError returns a structured error for unknown named sources
func SourceNotFoundError(name string) *TabError {
	return NewError(fmt.Sprintf("Source '%s' not found", name)).
		WithMessage("Named sources are defined in the [source.<name>] tables of the config file").
		WithSuggestions(
			"tabview sql --driver sqlite --dsn data.db \"SELECT * FROM t\"",
		).
		Wrap(ErrSourceNotFound)
}

// MissingArgumentError returns an error for missing required argument
func MissingArgumentError(argName, example string) *TabError {
	e := NewError(fmt.Sprintf("Missing required argument: <%s>", argName))
	if example != "" {
		e.WithSuggestion(example)
	}
	return e
}
