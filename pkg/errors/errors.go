package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeIngest represents tabular load/join errors, including the
	// graph build pass over the joined rows
	ErrorTypeIngest ErrorType = "ingest"
	// ErrorTypeVector represents vector index errors
	ErrorTypeVector ErrorType = "vector"
	// ErrorTypeTool represents tool execution errors
	ErrorTypeTool ErrorType = "tool"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Ingest Errors

// ErrMalformedRow is returned when a nested column of a joined row cannot
// be decoded during the graph build. This is fatal for the build: the row
// indicates upstream data corruption, not a recoverable condition.
type ErrMalformedRow struct {
	*BaseError
	MovieID int
	Column  string
}

func NewMalformedRow(movieID int, column string, err error) *ErrMalformedRow {
	return &ErrMalformedRow{
		BaseError: NewBaseError(ErrorTypeIngest,
			fmt.Sprintf("malformed %s column on movie %d", column, movieID), err),
		MovieID: movieID,
		Column:  column,
	}
}

// ErrMissingColumn is returned when a source CSV lacks a required column
type ErrMissingColumn struct {
	*BaseError
	Source string
	Column string
}

func NewMissingColumn(source, column string) *ErrMissingColumn {
	return &ErrMissingColumn{
		BaseError: NewBaseError(ErrorTypeIngest,
			fmt.Sprintf("source %s is missing required column %q", source, column), nil),
		Source: source,
		Column: column,
	}
}

// Vector Errors

// ErrIndexUnavailable is returned when the persisted index artifacts are
// absent; search degrades to empty results rather than failing.
var ErrIndexUnavailable = NewBaseError(ErrorTypeVector, "vector index not loaded", nil)

// ErrDimensionMismatch is returned when a vector does not match the index dimension
type ErrDimensionMismatch struct {
	*BaseError
	Want int
	Got  int
}

func NewDimensionMismatch(want, got int) *ErrDimensionMismatch {
	return &ErrDimensionMismatch{
		BaseError: NewBaseError(ErrorTypeVector,
			fmt.Sprintf("vector dimension mismatch: expected %d, got %d", want, got), nil),
		Want: want,
		Got:  got,
	}
}

// Tool Errors

// ErrToolFailure wraps an unexpected failure inside a tool operation. The
// executor converts these into structured error records so the orchestrator
// always receives a well-formed response shape.
type ErrToolFailure struct {
	*BaseError
	Tool string
}

func NewToolFailure(tool string, err error) *ErrToolFailure {
	return &ErrToolFailure{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("tool %s failed", tool), err),
		Tool:      tool,
	}
}

// ErrUnknownTool is returned when a tool call names a tool that does not exist
type ErrUnknownTool struct {
	*BaseError
	Tool string
}

func NewUnknownTool(tool string) *ErrUnknownTool {
	return &ErrUnknownTool{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("unknown tool: %s", tool), nil),
		Tool:      tool,
	}
}
