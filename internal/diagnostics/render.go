package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// useColor reports whether w is a terminal that wants color, honoring the
// NO_COLOR convention (https://no-color.org/) and TERM=dumb.
func useColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func severityColor(s Severity) string {
	switch s {
	case SeverityError:
		return ansiRed
	case SeverityWarning:
		return ansiYellow
	default:
		return ansiCyan
	}
}

// Render writes every accumulated diagnostic to w, one per line, followed
// by an error/warning summary when anything was reported.
func (r *Reporter) Render(w io.Writer) {
	color := useColor(w)
	for _, d := range r.diags {
		label := fmt.Sprintf("%s[%s]", d.Severity, d.Code)
		if color {
			label = severityColor(d.Severity) + label + ansiReset
		}
		fmt.Fprintf(w, "%s: %s: %s\n", d.Tok, label, d.Message)
	}
	if r.errorCount > 0 || r.warningCount > 0 {
		var parts []string
		if r.errorCount > 0 {
			parts = append(parts, fmt.Sprintf("%d error(s)", r.errorCount))
		}
		if r.warningCount > 0 {
			parts = append(parts, fmt.Sprintf("%d warning(s)", r.warningCount))
		}
		fmt.Fprintf(w, "%s\n", strings.Join(parts, ", "))
	}
}
