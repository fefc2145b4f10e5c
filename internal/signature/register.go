package signature

import (
	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
	"github.com/calyx-lang/calyx/internal/scope"
)

// RegisterDeclarations binds every top-level declaration of m into a fresh
// signature. When parent is non-nil the module refines it: inherited names
// are merged in first and the new scope subsumes the parent's, so inherited
// declarations stay visible while resolving m. A refining declaration may
// override an inherited name; binding the same name twice within m itself
// is an error, reported per collision without aborting the remaining names.
func RegisterDeclarations(rep *diagnostics.Reporter, m *ast.Module, parent *ModuleSignature) *ModuleSignature {
	sig := &ModuleSignature{
		ModuleName: m.Name,
		Names:      make(map[string]*ast.Decl, len(m.Decls)),
		ExportSets: make(map[string]*ExportSet),
		Scope:      scope.NewVisibility(),
	}

	if parent != nil {
		sig.Scope.Augment(parent.Scope)
		for name, decl := range parent.Names {
			sig.Names[name] = decl
		}
	}

	own := make(map[string]bool, len(m.Decls))
	for _, decl := range m.Decls {
		if own[decl.Name] {
			rep.Errorf(diagnostics.ErrR001, decl.Tok,
				"duplicate declaration %q in module %s", decl.Name, m.Name)
			continue
		}
		own[decl.Name] = true
		decl.Visibility = scope.NewVisibility().Augment(sig.Scope)
		sig.Names[decl.Name] = decl
	}

	return sig
}

// CloneForCompile rebuilds the export sets of orig so their nested
// signatures point at the compile signature's declarations instead of the
// verification ones. The returned map has exactly the same key set as
// orig.ExportSets.
func CloneForCompile(orig, compile *ModuleSignature) map[string]*ExportSet {
	rebound := make(map[string]*ExportSet, len(orig.ExportSets))
	for name, set := range orig.ExportSets {
		nested := &ModuleSignature{
			ModuleName: compile.ModuleName,
			Names:      make(map[string]*ast.Decl, len(set.Decls)),
			Refines:    compile.Refines,
			Scope:      scope.NewVisibility().Augment(compile.Scope),
		}
		cloneSet := &ExportSet{Name: name, Signature: nested}
		for _, decl := range set.Decls {
			compiled, ok := compile.Names[decl.Name]
			if !ok {
				// Proof-only members can be absent from the compiled side.
				continue
			}
			nested.Names[compiled.Name] = compiled
			cloneSet.Decls = append(cloneSet.Decls, compiled)
		}
		rebound[name] = cloneSet
	}
	return rebound
}
