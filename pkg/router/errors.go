package router

import (
	"errors"
	"fmt"
)

// ErrConfig matches every *ConfigError via errors.Is.
var ErrConfig = errors.New("invalid route table")

// Route configuration error codes. They double as diagnostic codes in the CLI.
const (
	CodeMissingWildcard   = "R001"
	CodeDuplicateWildcard = "R002"
	CodeWildcardNotLast   = "R003"
	CodeWildcardSegment   = "R004"
	CodeMultipleDynamic   = "R005"
	CodeEmptyParamName    = "R006"
	CodeRelativePattern   = "R007"
	CodeEmptyView         = "R008"
	CodeUnregisteredView  = "R009"
)

// ConfigError reports a route table that cannot be used. It is detected when the
// table is constructed and is fatal to startup.
type ConfigError struct {
	// Code is the diagnostic code (e.g., "R001")
	Code string

	// Index is the position of the offending entry, or -1 for table-wide problems
	Index int

	// Pattern is the offending pattern, if any
	Pattern string

	// Reason is a short human-readable explanation
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("router: %s: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("router: %s: entry %d (%q): %s", e.Code, e.Index, e.Pattern, e.Reason)
}

// Is makes errors.Is(err, ErrConfig) succeed for any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErr(code string, index int, pattern, format string, args ...any) *ConfigError {
	return &ConfigError{
		Code:    code,
		Index:   index,
		Pattern: pattern,
		Reason:  fmt.Sprintf(format, args...),
	}
}
