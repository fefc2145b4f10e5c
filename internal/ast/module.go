package ast

import (
	"strings"

	"github.com/calyx-lang/calyx/internal/token"
)

// QualifiedName is a dotted module reference such as Collections.Sets.
type QualifiedName []string

func (q QualifiedName) String() string {
	return strings.Join(q, ".")
}

func (q QualifiedName) IsEmpty() bool {
	return len(q) == 0
}

// ExportClause is a user-declared export set. A clause with an empty Name
// is the module's default export.
type ExportClause struct {
	Tok      token.Token
	Name     string // "" for the default export
	Provides []string
}

// Module is a named container of declarations, the unit of refinement and
// export.
type Module struct {
	Tok  token.Token
	Name string

	// RefinesName is the declared refinement-parent reference, empty when
	// the module refines nothing. ResolvedRefines is filled in by the
	// refinement linker with the parent's registered name; it stays empty
	// when linking fails, and resolution then proceeds without refinement.
	RefinesName     QualifiedName
	ResolvedRefines string

	Abstract bool

	Imports []QualifiedName
	Exports []*ExportClause
	Decls   []*Decl

	Submodules []*Module

	// SuccessfullyResolved is set once, when the module's own resolution
	// produced no errors, and never cleared.
	SuccessfullyResolved bool

	// ClonedFrom names the original module when this module is a compile
	// clone.
	ClonedFrom string
}

// DeclByName returns the first declaration with the given name.
func (m *Module) DeclByName(name string) *Decl {
	for _, d := range m.Decls {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// SubmoduleByName returns the nested module with the given name.
func (m *Module) SubmoduleByName(name string) *Module {
	for _, sub := range m.Submodules {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// IsCompiledClone reports whether the module was produced by the compile
// cloner rather than declared by the user.
func (m *Module) IsCompiledClone() bool {
	return m.ClonedFrom != ""
}
