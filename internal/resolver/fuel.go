package resolver

import (
	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
)

// checkFuel validates proof-automation unrolling annotations: the low fuel
// must be non-negative and the high fuel at least the low one. Fuel on
// anything but a function cannot influence automation and is flagged.
func (r *Resolver) checkFuel(m *ast.Module) {
	for _, d := range m.Decls {
		if d.Fuel == nil {
			continue
		}
		if d.Fuel.Low < 0 || d.Fuel.High < d.Fuel.Low {
			r.ctx.Reporter.Errorf(diagnostics.ErrR004, d.Tok,
				"%s %q has an inconsistent fuel annotation (%d, %d)",
				d.Kind, d.Name, d.Fuel.Low, d.Fuel.High)
			continue
		}
		if d.Kind != ast.KindFunction {
			r.ctx.Reporter.Warningf(diagnostics.WarnW002, d.Tok,
				"fuel has no effect on %s %q", d.Kind, d.Name)
		}
	}
}
