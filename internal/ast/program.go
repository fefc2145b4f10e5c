package ast

// Program is the root container of top-level modules plus the compiled
// artifacts produced by resolution.
type Program struct {
	Modules []*Module

	artifacts []*Module
}

// ModuleByName returns the top-level module with the given name.
func (p *Program) ModuleByName(name string) *Module {
	for _, m := range p.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// RecordArtifact registers a compile clone as a compiled artifact. A clone
// recorded under an already-present name replaces the earlier entry, so
// re-resolving a module never duplicates artifacts.
func (p *Program) RecordArtifact(clone *Module) {
	for i, existing := range p.artifacts {
		if existing.Name == clone.Name {
			p.artifacts[i] = clone
			return
		}
	}
	p.artifacts = append(p.artifacts, clone)
}

// Artifacts returns the compiled clones recorded so far, in the order their
// originals first resolved.
func (p *Program) Artifacts() []*Module {
	return p.artifacts
}

// ArtifactByName returns the compiled clone with the given name.
func (p *Program) ArtifactByName(name string) *Module {
	for _, a := range p.artifacts {
		if a.Name == name {
			return a
		}
	}
	return nil
}
