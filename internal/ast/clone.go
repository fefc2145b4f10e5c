package ast

// Clone deep-copies the module under a new name. The copy shares no mutable
// state with the original: slices are reallocated, declarations are copied,
// resolution results (visibility scopes, recursion bits, resolved flags) are
// cleared so the copy can be re-resolved independently.
func (m *Module) Clone(newName string) *Module {
	clone := &Module{
		Tok:         m.Tok,
		Name:        newName,
		RefinesName: append(QualifiedName(nil), m.RefinesName...),
		Abstract:    m.Abstract,
		ClonedFrom:  m.Name,
	}
	for _, imp := range m.Imports {
		clone.Imports = append(clone.Imports, append(QualifiedName(nil), imp...))
	}
	for _, exp := range m.Exports {
		clone.Exports = append(clone.Exports, &ExportClause{
			Tok:      exp.Tok,
			Name:     exp.Name,
			Provides: append([]string(nil), exp.Provides...),
		})
	}
	for _, d := range m.Decls {
		clone.Decls = append(clone.Decls, d.clone())
	}
	for _, sub := range m.Submodules {
		clone.Submodules = append(clone.Submodules, sub.Clone(sub.Name))
	}
	return clone
}

func (d *Decl) clone() *Decl {
	cp := &Decl{
		Tok:       d.Tok,
		Name:      d.Name,
		Kind:      d.Kind,
		Ghost:     d.Ghost,
		Params:    append([]string(nil), d.Params...),
		TypeDeps:  append([]string(nil), d.TypeDeps...),
		BodyDeps:  append([]string(nil), d.BodyDeps...),
		Calls:     append([]string(nil), d.Calls...),
		Decreases: append([]string(nil), d.Decreases...),
	}
	if d.Fuel != nil {
		fuel := *d.Fuel
		cp.Fuel = &fuel
	}
	return cp
}
