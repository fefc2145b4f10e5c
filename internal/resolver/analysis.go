package resolver

import (
	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
)

// markRecursion sets the is-recursive bit on every callable that can reach
// itself through the module-local call graph. Later termination analysis
// only inspects marked callables.
func markRecursion(m *ast.Module) {
	callables := make(map[string]*ast.Decl)
	for _, d := range m.Decls {
		if d.Kind.IsCallable() {
			callables[d.Name] = d
		}
	}
	for _, d := range m.Decls {
		if d.Kind.IsCallable() {
			d.IsRecursive = reaches(callables, d.Name, d, make(map[string]bool))
		}
	}
}

func reaches(callables map[string]*ast.Decl, target string, from *ast.Decl, seen map[string]bool) bool {
	for _, callee := range from.Calls {
		if callee == target {
			return true
		}
		if seen[callee] {
			continue
		}
		seen[callee] = true
		if next, ok := callables[callee]; ok && reaches(callables, target, next, seen) {
			return true
		}
	}
	return false
}

// fillDefaultDecreases gives every recursive callable that lacks an
// explicit termination metric a default one: the callable's parameter
// list, in declaration order.
func (r *Resolver) fillDefaultDecreases(m *ast.Module) {
	for _, d := range m.Decls {
		if !d.Kind.IsCallable() || !d.IsRecursive || len(d.Decreases) > 0 {
			continue
		}
		d.Decreases = append([]string(nil), d.Params...)
		d.DefaultDecreases = true
		r.ctx.Reporter.Warningf(diagnostics.WarnW001, d.Tok,
			"%s %q is recursive and has no decreases clause; assuming decreases over its parameters",
			d.Kind, d.Name)
	}
}

// emitIteratorInfo notes each iterator-shaped declaration; iterators get
// implicit enumeration members and per-yield termination checks later in
// the toolchain.
func (r *Resolver) emitIteratorInfo(m *ast.Module) {
	for _, d := range m.Decls {
		if d.Kind != ast.KindIterator {
			continue
		}
		r.ctx.Reporter.Infof(diagnostics.InfoI001, d.Tok,
			"iterator %q: implicit enumeration members were generated", d.Name)
	}
}
