package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/calyx-lang/calyx/internal/token"
)

func TestReporterCounts(t *testing.T) {
	rep := NewReporter()
	rep.Errorf(ErrR002, token.NoToken, "no such name")
	rep.Warningf(WarnW001, token.NoToken, "assumed decreases")
	rep.Infof(InfoI001, token.NoToken, "iterator note")

	if got := rep.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount = %d, want 1", got)
	}
	if got := rep.WarningCount(); got != 1 {
		t.Errorf("WarningCount = %d, want 1", got)
	}
	if got := len(rep.Diagnostics()); got != 3 {
		t.Errorf("diagnostics = %d, want 3", got)
	}
}

func TestErrorsOnlySuppressesWarningsAndInfo(t *testing.T) {
	rep := NewReporter()
	prev := rep.SetErrorsOnly(true)
	if prev {
		t.Error("errors-only must start off")
	}
	rep.Warningf(WarnW002, token.NoToken, "suppressed")
	rep.Infof(InfoI001, token.NoToken, "suppressed")
	rep.Errorf(ErrR001, token.NoToken, "still reported")
	rep.SetErrorsOnly(prev)
	rep.Warningf(WarnW001, token.NoToken, "reported again")

	if got := len(rep.Diagnostics()); got != 2 {
		t.Errorf("diagnostics = %d, want 2", got)
	}
	if got := rep.WarningCount(); got != 1 {
		t.Errorf("WarningCount = %d, want 1", got)
	}
}

func TestRenderPlain(t *testing.T) {
	rep := NewReporter()
	rep.Errorf(ErrR003, token.Token{File: "a.cxo", Line: 1, Col: 1}, "module B cannot be found")
	rep.Warningf(WarnW001, token.Token{File: "a.cxo", Line: 4, Col: 1}, "assumed decreases")

	var buf bytes.Buffer
	rep.Render(&buf)
	out := buf.String()

	if !strings.Contains(out, "a.cxo:1:1: error[R003]: module B cannot be found") {
		t.Errorf("missing error line in output:\n%s", out)
	}
	if !strings.Contains(out, "warning[W001]") {
		t.Errorf("missing warning line in output:\n%s", out)
	}
	if !strings.Contains(out, "1 error(s), 1 warning(s)") {
		t.Errorf("missing summary in output:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal writer must not receive color codes")
	}
}

func TestDiagnosticError(t *testing.T) {
	d := NewError(ErrR001, token.Token{File: "m.cxo", Line: 2}, "duplicate %q", "f")
	want := `[R001] error: m.cxo:2: duplicate "f"`
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
