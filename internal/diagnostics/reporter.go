package diagnostics

import (
	"fmt"

	"github.com/calyx-lang/calyx/internal/token"
)

// Reporter accumulates diagnostics for a whole program run. Resolution
// continues past errors so a single run surfaces everything it can; callers
// gate later stages on ErrorCount deltas rather than on returned errors.
//
// The reporter is not safe for concurrent use; resolution is
// single-threaded by design.
type Reporter struct {
	diags        []*Diagnostic
	errorCount   int
	warningCount int
	errorsOnly   bool
}

func NewReporter() *Reporter {
	return &Reporter{}
}

// Report records a prebuilt diagnostic, honoring errors-only mode.
func (r *Reporter) Report(d *Diagnostic) {
	switch d.Severity {
	case SeverityError:
		r.errorCount++
	case SeverityWarning, SeverityInfo:
		if r.errorsOnly {
			return
		}
		if d.Severity == SeverityWarning {
			r.warningCount++
		}
	}
	r.diags = append(r.diags, d)
}

func (r *Reporter) Errorf(code Code, tok token.Token, format string, args ...interface{}) {
	r.Report(NewError(code, tok, format, args...))
}

func (r *Reporter) Warningf(code Code, tok token.Token, format string, args ...interface{}) {
	r.Report(&Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Tok:      tok,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Reporter) Infof(code Code, tok token.Token, format string, args ...interface{}) {
	r.Report(&Diagnostic{
		Code:     code,
		Severity: SeverityInfo,
		Tok:      tok,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Reporter) ErrorCount() int {
	return r.errorCount
}

func (r *Reporter) WarningCount() int {
	return r.warningCount
}

// SetErrorsOnly toggles suppression of warning- and info-level diagnostics
// and returns the previous setting, so scoped callers can restore it.
func (r *Reporter) SetErrorsOnly(on bool) bool {
	prev := r.errorsOnly
	r.errorsOnly = on
	return prev
}

// Diagnostics returns everything reported so far, in report order.
func (r *Reporter) Diagnostics() []*Diagnostic {
	return r.diags
}
