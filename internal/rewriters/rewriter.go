// Package rewriters holds the extension-pass protocol of the resolution
// pipeline. Hosts register rewriters before resolution of any module
// begins; the resolver invokes each registered rewriter's hooks, in
// registration order, at four fixed pipeline points.
package rewriters

import "github.com/calyx-lang/calyx/internal/ast"

// Rewriter is an extension pass. Embed Base to implement only the hooks a
// pass cares about.
type Rewriter interface {
	// Name identifies the pass in configuration and traces.
	Name() string

	// PreResolve runs after refinement linking, before any name is bound.
	PreResolve(m *ast.Module)

	// PostResolveIntermediate runs after member bodies resolved, while the
	// module is still error-free.
	PostResolveIntermediate(m *ast.Module)

	// PostCompileCloneAndResolve runs on the compile clone after it has
	// been re-resolved against its compile signature.
	PostCompileCloneAndResolve(clone *ast.Module)

	// PostDecreasesResolve runs after termination metrics are filled in.
	PostDecreasesResolve(m *ast.Module)
}

// Base is a no-op Rewriter suitable for embedding.
type Base struct{}

func (Base) Name() string                           { return "base" }
func (Base) PreResolve(*ast.Module)                 {}
func (Base) PostResolveIntermediate(*ast.Module)    {}
func (Base) PostCompileCloneAndResolve(*ast.Module) {}
func (Base) PostDecreasesResolve(*ast.Module)       {}
