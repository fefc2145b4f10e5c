package resolver

import (
	"strings"

	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
	"github.com/calyx-lang/calyx/internal/signature"
)

func isQualified(name string) bool {
	return strings.Contains(name, ".")
}

// resolveMemberBodies resolves every name each declaration mentions, both
// in its public signature and in its body. Unresolved names are reported
// per occurrence; a failure in one declaration never stops resolution of
// its siblings.
func (r *Resolver) resolveMemberBodies(m *ast.Module, sig *signature.ModuleSignature) {
	imports := r.resolveImports(m)
	for _, decl := range m.Decls {
		params := make(map[string]bool, len(decl.Params))
		for _, p := range decl.Params {
			params[p] = true
		}
		for _, dep := range decl.TypeDeps {
			r.resolveName(m, sig, imports, decl, dep, params)
		}
		for _, dep := range decl.BodyDeps {
			r.resolveName(m, sig, imports, decl, dep, params)
		}
		for _, dep := range decl.Decreases {
			r.resolveName(m, sig, imports, decl, dep, params)
		}
	}
}

// resolveImports maps each import's local name to the imported module's
// registered name. Unknown imports are reported once per clause.
func (r *Resolver) resolveImports(m *ast.Module) map[string]string {
	imports := make(map[string]string, len(m.Imports))
	for _, qn := range m.Imports {
		local := qn[len(qn)-1]
		target := r.linker.lookup(m, qn)
		if target == nil {
			r.ctx.Reporter.Errorf(diagnostics.ErrR002, m.Tok,
				"module %s imports %s, which cannot be found", m.Name, qn)
			continue
		}
		imports[local] = target.Name
	}
	return imports
}

// resolveName performs the two-level lookup: a qualified name resolves
// through an imported module's signature, an unqualified one through the
// module's own signature (refinement included) and then the built-in
// system names. Visibility is gated by the active scope stack.
func (r *Resolver) resolveName(m *ast.Module, sig *signature.ModuleSignature, imports map[string]string, decl *ast.Decl, name string, params map[string]bool) {
	if params[name] {
		return
	}

	if isQualified(name) {
		parts := strings.SplitN(name, ".", 2)
		alias, member := parts[0], parts[1]
		target, ok := imports[alias]
		if !ok {
			r.ctx.Reporter.Errorf(diagnostics.ErrR002, decl.Tok,
				"%s %q in module %s mentions %q, but %s is not an imported module",
				decl.Kind, decl.Name, m.Name, name, alias)
			return
		}
		if !r.lookupExternal(target, member) {
			r.ctx.Reporter.Errorf(diagnostics.ErrR002, decl.Tok,
				"%s %q in module %s mentions %q, which module %s does not expose",
				decl.Kind, decl.Name, m.Name, name, target)
		}
		return
	}

	if found, ok := sig.Lookup(name); ok {
		if r.ctx.Scopes.IsVisible(found.Visibility) {
			return
		}
	}
	if _, ok := r.system.Lookup(name); ok {
		return
	}
	r.ctx.Reporter.Errorf(diagnostics.ErrR002, decl.Tok,
		"%s %q in module %s mentions %q, which cannot be resolved",
		decl.Kind, decl.Name, m.Name, name)
}

// lookupExternal looks a member up in another module's signature. In
// compile-signature mode the target's compile signature is preferred
// wherever one exists, so cross-module references in a clone land on
// compiled counterparts. With export filtering suspended the full internal
// namespace is searched; otherwise only the accessible signature is.
func (r *Resolver) lookupExternal(moduleName, member string) bool {
	sig, ok := r.sigs.Get(moduleName)
	if !ok {
		return false
	}
	if r.ctx.CompileMode() && sig.CompileSignature != nil {
		sig = sig.CompileSignature
	}
	if r.ctx.Scopes.FilteringDisabled() {
		_, found := sig.Lookup(member)
		return found
	}
	_, found := sig.AccessibleSignature().Lookup(member)
	return found
}
