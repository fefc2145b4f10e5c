package diagnostics

import (
	"fmt"

	"github.com/calyx-lang/calyx/internal/token"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "diagnostic"
	}
}

// Code is a stable diagnostic identifier. Codes never change meaning once
// shipped; tooling keys off them.
type Code string

const (
	// ErrR001: a module declares the same name twice.
	ErrR001 Code = "R001"
	// ErrR002: a name mentioned by a declaration cannot be resolved.
	ErrR002 Code = "R002"
	// ErrR003: a declared refinement parent cannot be found.
	ErrR003 Code = "R003"
	// ErrR004: a fuel annotation is inconsistent.
	ErrR004 Code = "R004"
	// ErrR005: an exported declaration's public signature is not
	// reconstructable from exported-or-system names.
	ErrR005 Code = "R005"
	// ErrR006: an export clause names a declaration the module lacks.
	ErrR006 Code = "R006"
	// ErrL001: a module outline could not be loaded.
	ErrL001 Code = "L001"

	// WarnW001: a recursive callable was given a default decreases metric.
	WarnW001 Code = "W001"
	// WarnW002: a fuel annotation on a declaration kind it cannot affect.
	WarnW002 Code = "W002"

	// InfoI001: a module contains an iterator-shaped declaration.
	InfoI001 Code = "I001"
)

// Diagnostic is a single categorized message tied to a source location.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Tok      token.Token
	Message  string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[%s] %s: %s: %s", d.Code, d.Severity, d.Tok, d.Message)
}

// NewError builds an error diagnostic without reporting it.
func NewError(code Code, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Tok:      tok,
		Message:  fmt.Sprintf(format, args...),
	}
}
