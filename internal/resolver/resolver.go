// Package resolver implements the per-module resolution pipeline: binding
// declared entities into a signature, honoring refinement, computing the
// exported interface, and producing an independently resolved compile
// clone for modules that will reach the backend.
package resolver

import (
	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
	"github.com/calyx-lang/calyx/internal/rewriters"
	"github.com/calyx-lang/calyx/internal/scope"
	"github.com/calyx-lang/calyx/internal/signature"
)

// Resolver orchestrates resolution of one program. Modules are resolved
// one at a time, synchronously, in the dependency order the loader
// established.
type Resolver struct {
	prog     *ast.Program
	ctx      *Context
	pipeline *rewriters.Pipeline
	sigs     *signature.Registry
	linker   *RefinementLinker
	exports  *ExportResolver
	system   *signature.ModuleSignature

	baseline    int
	baselineSet bool
}

func New(prog *ast.Program, rep *diagnostics.Reporter, pipeline *rewriters.Pipeline) *Resolver {
	if pipeline == nil {
		pipeline = rewriters.NewPipeline()
	}
	return &Resolver{
		prog:     prog,
		ctx:      NewContext(rep),
		pipeline: pipeline,
		sigs:     signature.NewRegistry(),
		linker:   NewRefinementLinker(prog, rep),
		exports:  NewExportResolver(rep),
		system:   newSystemSignature(),
	}
}

// Context exposes the run's resolution context, mainly for the cloner's
// reentrancy contract in tests.
func (r *Resolver) Context() *Context {
	return r.ctx
}

// Signatures returns the registry of resolved signatures.
func (r *Resolver) Signatures() *signature.Registry {
	return r.sigs
}

// ResolveProgram resolves every top-level module in program order, which
// the loader has already arranged dependency-first. The program-wide error
// baseline is taken before any module resolves. Submodules resolve before
// their enclosing module, so a sibling refining a nested module finds its
// parent's signature registered.
func (r *Resolver) ResolveProgram() {
	r.baseline = r.ctx.Reporter.ErrorCount()
	r.baselineSet = true
	for _, m := range r.prog.Modules {
		r.resolveTree(m)
	}
}

func (r *Resolver) resolveTree(m *ast.Module) {
	for _, sub := range m.Submodules {
		r.resolveTree(sub)
	}
	r.Resolve(m)
}

// Resolve runs the fixed resolution pipeline on one module. It always
// returns control to its caller, even for an unsound module; all
// user-facing conditions route through the shared reporter.
func (r *Resolver) Resolve(m *ast.Module) {
	if !r.baselineSet {
		r.baseline = r.ctx.Reporter.ErrorCount()
		r.baselineSet = true
	}
	if r.ctx.CompileMode() {
		panic(ErrReentrantCompileMode)
	}

	rep := r.ctx.Reporter
	startDepth := r.ctx.Scopes.Depth()
	defer func() {
		if r.ctx.Scopes.Depth() != startDepth {
			panic(ErrScopeImbalance)
		}
	}()

	// Refinement linking and pre-resolution rewriting come before any
	// name is bound. A failed link degrades to no-refinement and does not
	// count against this module's own soundness, so the per-module error
	// baseline is taken after it. A parent that linked but was never
	// resolved (a dependency cycle kept the loader's original order)
	// degrades the same way, with its own diagnostic.
	parent := r.linker.Link(m)
	var parentSig *signature.ModuleSignature
	if parent != nil {
		var ok bool
		parentSig, ok = r.sigs.Get(parent.Name)
		if !ok {
			rep.Errorf(diagnostics.ErrR003, m.Tok,
				"module %s refines %s, which has not been resolved", m.Name, parent.Name)
			parent = nil
			m.ResolvedRefines = ""
		}
	}
	startErrs := rep.ErrorCount()
	r.pipeline.PreResolve(m)

	sig := signature.RegisterDeclarations(rep, m, parentSig)
	if parent != nil {
		sig.Refines = parent.Name
	}
	r.sigs.Add(sig)

	sig.ExportSets, sig.DefaultExport = r.exports.ResolveExports(m, sig)

	// Member bodies resolve under the module's own scope combined with
	// the built-in system scope.
	combined := scope.NewVisibility().Augment(sig.Scope).Augment(r.system.Scope)
	r.resolveMemberPhase(m, sig, combined, startErrs)

	// Whole-program gate: once any module anywhere has errored, the
	// remaining analyses are skipped for every module that has not yet
	// reached this point. Deliberately coarse; see DESIGN.md.
	if rep.ErrorCount() > r.baseline {
		return
	}

	if !m.Abstract {
		r.cloneUnderScope(m, sig, combined, startErrs)
	}

	markRecursion(m)
	r.fillDefaultDecreases(m)
	r.emitIteratorInfo(m)
	r.pipeline.PostDecreasesResolve(m)
	r.checkFuel(m)
}

// resolveMemberPhase brackets the whole member phase in one scope frame,
// from body resolution through the resolved-flag decision. The pop is
// deferred so a panicking rewriter hook still unwinds the stack.
func (r *Resolver) resolveMemberPhase(m *ast.Module, sig *signature.ModuleSignature, combined *scope.Visibility, startErrs int) {
	rep := r.ctx.Reporter
	r.ctx.Scopes.Push(combined)
	defer r.ctx.Scopes.Pop(combined)

	bodyStart := rep.ErrorCount()
	r.resolveMemberBodies(m, sig)

	if rep.ErrorCount() == startErrs {
		r.exports.CheckConsistency(m, sig, r.system)
	}

	r.pipeline.PostResolveIntermediate(m, func() bool {
		return rep.ErrorCount() == bodyStart
	})

	if rep.ErrorCount() == startErrs {
		m.SuccessfullyResolved = true
	}
}

func (r *Resolver) cloneUnderScope(m *ast.Module, sig *signature.ModuleSignature, combined *scope.Visibility, startErrs int) {
	r.ctx.Scopes.Push(combined)
	defer r.ctx.Scopes.Pop(combined)
	r.compileClone(m, sig, startErrs)
}
