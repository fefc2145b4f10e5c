package resolver

import (
	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/signature"
)

// CompiledModuleSuffix is appended to a module's name to form its compile
// clone's name. The code-generation backend reads only clones carrying it.
const CompiledModuleSuffix = "_Compile"

// compileClone produces, for a verified concrete module, an independently
// resolved deep copy suitable for code generation, insulated from
// proof-only constructs. An abstract or error-bearing module yields no
// clone; that is not itself an error, such modules are simply absent from
// the compiled-artifact set.
func (r *Resolver) compileClone(m *ast.Module, sig *signature.ModuleSignature, startErrs int) *ast.Module {
	if m.Abstract || r.ctx.Reporter.ErrorCount() != startErrs {
		return nil
	}

	clone := m.Clone(m.Name + CompiledModuleSuffix)
	clone.ResolvedRefines = m.ResolvedRefines
	stripGhostDecls(clone)

	// Compile-signature mode, warning suppression, and the export-filter
	// bypass are all released on every exit path, including panics in a
	// rewriter hook.
	release := r.ctx.EnterCompileMode()
	defer release()

	var parentSig *signature.ModuleSignature
	if m.ResolvedRefines != "" {
		if ps, ok := r.sigs.Get(m.ResolvedRefines); ok {
			parentSig = ps
		}
	}

	csig := signature.RegisterDeclarations(r.ctx.Reporter, clone, parentSig)
	csig.Refines = sig.Refines
	sig.AttachCompileSignature(csig)

	csig.ExportSets = signature.CloneForCompile(sig, csig)
	if sig.DefaultExport != nil {
		csig.DefaultExport = csig.ExportSets[sig.DefaultExport.Name]
	}

	r.resolveMemberBodies(clone, csig)
	r.pipeline.PostCompileCloneAndResolve(clone)
	r.prog.RecordArtifact(clone)
	return clone
}

// stripGhostDecls removes proof-only members: they have no executable form
// and must not reach the backend. Lemmas are proof-only by nature.
func stripGhostDecls(m *ast.Module) {
	kept := m.Decls[:0]
	for _, d := range m.Decls {
		if d.Ghost || d.Kind == ast.KindLemma {
			continue
		}
		kept = append(kept, d)
	}
	m.Decls = kept
}
