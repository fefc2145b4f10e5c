package rewriters

import "github.com/calyx-lang/calyx/internal/ast"

// Pipeline is an ordered list of registered rewriters.
type Pipeline struct {
	rewriters []Rewriter
}

func NewPipeline(rs ...Rewriter) *Pipeline {
	return &Pipeline{rewriters: rs}
}

// Register appends r; rewriters run in registration order.
func (p *Pipeline) Register(r Rewriter) {
	p.rewriters = append(p.rewriters, r)
}

// Rewriters returns the registered passes in order.
func (p *Pipeline) Rewriters() []Rewriter {
	return p.rewriters
}

func (p *Pipeline) PreResolve(m *ast.Module) {
	for _, r := range p.rewriters {
		r.PreResolve(m)
	}
}

// PostResolveIntermediate invokes the hook on each rewriter while clean
// still reports true. Once an error appears, remaining rewriters are
// skipped for this module; earlier ones have already run.
func (p *Pipeline) PostResolveIntermediate(m *ast.Module, clean func() bool) {
	for _, r := range p.rewriters {
		if !clean() {
			return
		}
		r.PostResolveIntermediate(m)
	}
}

func (p *Pipeline) PostCompileCloneAndResolve(clone *ast.Module) {
	for _, r := range p.rewriters {
		r.PostCompileCloneAndResolve(clone)
	}
}

func (p *Pipeline) PostDecreasesResolve(m *ast.Module) {
	for _, r := range p.rewriters {
		r.PostDecreasesResolve(m)
	}
}
