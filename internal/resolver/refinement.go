package resolver

import (
	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
)

// RefinementLinker resolves a module's declared refinement-parent reference
// against the enclosing namespace chain.
type RefinementLinker struct {
	prog   *ast.Program
	rep    *diagnostics.Reporter
	owners map[*ast.Module]*ast.Module
}

func NewRefinementLinker(prog *ast.Program, rep *diagnostics.Reporter) *RefinementLinker {
	l := &RefinementLinker{
		prog:   prog,
		rep:    rep,
		owners: make(map[*ast.Module]*ast.Module),
	}
	for _, m := range prog.Modules {
		l.indexOwners(m)
	}
	return l
}

func (l *RefinementLinker) indexOwners(m *ast.Module) {
	for _, sub := range m.Submodules {
		l.owners[sub] = m
		l.indexOwners(sub)
	}
}

// Link resolves m's refinement parent. On success it records the parent's
// name on the module (identifier, not a shared pointer) and returns the
// parent. On failure it reports a single diagnostic and returns nil;
// resolution then proceeds as if m had no refinement parent.
func (l *RefinementLinker) Link(m *ast.Module) *ast.Module {
	if m.RefinesName.IsEmpty() {
		return nil
	}
	parent := l.lookup(m, m.RefinesName)
	if parent == nil {
		l.rep.Errorf(diagnostics.ErrR003, m.Tok,
			"module %s refines %s, which cannot be found", m.Name, m.RefinesName)
		m.ResolvedRefines = ""
		return nil
	}
	m.ResolvedRefines = parent.Name
	return parent
}

// lookup walks the enclosing namespace chain outward from m: first the
// siblings at each enclosing level, finally the program root. Each step of
// a qualified name descends through submodules.
func (l *RefinementLinker) lookup(from *ast.Module, qn ast.QualifiedName) *ast.Module {
	for enclosing := l.owners[from]; ; enclosing = l.owners[enclosing] {
		var candidates []*ast.Module
		if enclosing == nil {
			candidates = l.prog.Modules
		} else {
			candidates = enclosing.Submodules
		}
		if found := descend(candidates, qn, from); found != nil {
			return found
		}
		if enclosing == nil {
			return nil
		}
	}
}

func descend(candidates []*ast.Module, qn ast.QualifiedName, self *ast.Module) *ast.Module {
	var current *ast.Module
	for _, c := range candidates {
		if c.Name == qn[0] && c != self {
			current = c
			break
		}
	}
	if current == nil {
		return nil
	}
	for _, part := range qn[1:] {
		current = current.SubmoduleByName(part)
		if current == nil {
			return nil
		}
	}
	return current
}
