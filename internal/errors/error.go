package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/resource"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

// Category represents the type of error.
type Category string

const (
	CategoryRoute  Category = "route"
	CategoryConfig Category = "config"
	CategoryFetch  Category = "fetch"
	CategoryCLI    Category = "cli"
)

// Diagnostic is a structured error with a code, an explanation and a hint.
type Diagnostic struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Source names where the problem is (a pattern, a config key, a URL).
	Source string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Diagnostic) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Diagnostic) Unwrap() error {
	return e.Wrapped
}

// WithSource records where the problem is.
func (e *Diagnostic) WithSource(s string) *Diagnostic {
	e.Source = s
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Diagnostic) WithSuggestion(s string) *Diagnostic {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Diagnostic) WithDetail(d string) *Diagnostic {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Diagnostic) Wrap(err error) *Diagnostic {
	e.Wrapped = err
	return e
}

// New creates a Diagnostic from a registered error code.
func New(code string) *Diagnostic {
	template, ok := registry[code]
	if !ok {
		return &Diagnostic{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Diagnostic{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Hint,
	}
}

// Newf creates a new Diagnostic with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// From converts err into a Diagnostic. Route configuration errors and fetch
// errors get their registered code; anything else is wrapped without one.
func From(err error) *Diagnostic {
	if err == nil {
		return nil
	}

	var d *Diagnostic
	if stderrors.As(err, &d) {
		return d
	}

	var cfgErr *router.ConfigError
	if stderrors.As(err, &cfgErr) {
		return New(cfgErr.Code).WithSource(cfgErr.Pattern).Wrap(err)
	}

	var fetchErr *resource.FetchError
	if stderrors.As(err, &fetchErr) {
		return New(CodeFetchFailed).WithSource(fetchErr.URL).Wrap(err)
	}

	return &Diagnostic{Category: CategoryCLI, Message: err.Error(), Wrapped: err}
}
