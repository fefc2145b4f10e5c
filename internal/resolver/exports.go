package resolver

import (
	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
	"github.com/calyx-lang/calyx/internal/scope"
	"github.com/calyx-lang/calyx/internal/signature"
)

// ExportResolver computes a module's named export sets and checks that the
// exported interface is self-contained.
type ExportResolver struct {
	rep *diagnostics.Reporter
}

func NewExportResolver(rep *diagnostics.Reporter) *ExportResolver {
	return &ExportResolver{rep: rep}
}

// ResolveExports collects the declarations referenced by each export clause
// into a named set backed by a nested signature restricted to those names.
// A module with no export clauses gets a nil default export, so its
// accessible signature falls back to the fixed empty one.
func (e *ExportResolver) ResolveExports(m *ast.Module, sig *signature.ModuleSignature) (map[string]*signature.ExportSet, *signature.ExportSet) {
	sets := make(map[string]*signature.ExportSet)
	var defaultExport *signature.ExportSet

	for _, clause := range m.Exports {
		nested := &signature.ModuleSignature{
			ModuleName: m.Name,
			Names:      make(map[string]*ast.Decl, len(clause.Provides)),
			Refines:    sig.Refines,
			Scope:      scope.NewVisibility(),
		}
		set := &signature.ExportSet{Name: clause.Name, Signature: nested}

		for _, name := range clause.Provides {
			decl, ok := sig.Lookup(name)
			if !ok {
				e.rep.Errorf(diagnostics.ErrR006, clause.Tok,
					"export set %s of module %s provides %q, which the module does not declare",
					exportSetLabel(clause.Name), m.Name, name)
				continue
			}
			if _, dup := nested.Names[name]; dup {
				continue
			}
			nested.Names[name] = decl
			set.Decls = append(set.Decls, decl)
			// Importers resolve against the export set's scope, so each
			// exported declaration's defining scope must subsume it.
			decl.Visibility.Augment(nested.Scope)
		}

		sets[clause.Name] = set
		if clause.Name == "" {
			defaultExport = set
		}
	}

	return sets, defaultExport
}

// CheckConsistency verifies, for every declaration reachable from any
// export set, that each name its public signature depends on is itself
// exported in the same set or built in. One diagnostic is reported per
// offending declaration; siblings keep being checked, and a violation
// flags the module's export interface unsound rather than halting the
// program.
func (e *ExportResolver) CheckConsistency(m *ast.Module, sig *signature.ModuleSignature, system *signature.ModuleSignature) {
	for _, name := range sig.SortedExportSets() {
		set := sig.ExportSets[name]
		for _, decl := range set.Decls {
			if missing := e.firstUncoveredDep(decl, set, system); missing != "" {
				e.rep.Errorf(diagnostics.ErrR005, decl.Tok,
					"%s %q in export set %s of module %s depends on %q, which is not exported",
					decl.Kind, decl.Name, exportSetLabel(set.Name), m.Name, missing)
				sig.ExportUnsound = true
			}
		}
	}
}

func (e *ExportResolver) firstUncoveredDep(decl *ast.Decl, set *signature.ExportSet, system *signature.ModuleSignature) string {
	for _, dep := range decl.TypeDeps {
		if isQualified(dep) {
			// Cross-module dependencies were checked during body
			// resolution against the target's accessible signature.
			continue
		}
		if _, ok := set.Signature.Names[dep]; ok {
			continue
		}
		if _, ok := system.Names[dep]; ok {
			continue
		}
		return dep
	}
	return ""
}

func exportSetLabel(name string) string {
	if name == "" {
		return "(default)"
	}
	return name
}
