package signature

import (
	"errors"
	"sort"

	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/scope"
)

// ErrCompileSignatureReattach is the panic value raised when a compile
// signature is attached to a signature that already has one. The slot is
// written at most once per resolution attempt; a second write is an
// orchestrator bug.
var ErrCompileSignatureReattach = errors.New("signature: compile signature already attached")

// ExportSet is a user-named subset of a module's declarations, backed by a
// nested signature restricted to the set's names.
type ExportSet struct {
	Name      string
	Decls     []*ast.Decl
	Signature *ModuleSignature
}

// ModuleSignature is the resolved name → declaration environment of one
// module. One is created per resolution attempt; the CompileSignature slot
// is filled at most once, after a successful compile clone.
type ModuleSignature struct {
	ModuleName string

	Names map[string]*ast.Decl

	// Refines names the refinement parent's signature; lookups go through
	// the registry rather than a shared alias.
	Refines string

	CompileSignature *ModuleSignature

	ExportSets    map[string]*ExportSet
	DefaultExport *ExportSet

	// ExportUnsound is set when CheckConsistency finds an exported
	// declaration whose public signature mentions unexported names. The
	// module still resolves; downstream consumers must not trust the
	// export interface.
	ExportUnsound bool

	// Scope is the signature's own visibility scope. Declarations
	// registered here carry scopes augmented with it.
	Scope *scope.Visibility
}

// Empty is the fixed signature exposed to importers of a module that
// declares no exports. It never gains names.
var Empty = &ModuleSignature{
	ModuleName: "",
	Names:      map[string]*ast.Decl{},
	Scope:      scope.NewVisibility(),
}

// AccessibleSignature is what external callers may resolve against: the
// default export when the module declares one, the fixed empty signature
// otherwise. The raw internal signature is never handed out.
func (s *ModuleSignature) AccessibleSignature() *ModuleSignature {
	if s.DefaultExport != nil {
		return s.DefaultExport.Signature
	}
	return Empty
}

// AttachCompileSignature fills the compile-signature slot.
func (s *ModuleSignature) AttachCompileSignature(compile *ModuleSignature) {
	if s.CompileSignature != nil {
		panic(ErrCompileSignatureReattach)
	}
	s.CompileSignature = compile
}

// Lookup returns the declaration bound to name, including names inherited
// through refinement.
func (s *ModuleSignature) Lookup(name string) (*ast.Decl, bool) {
	d, ok := s.Names[name]
	return d, ok
}

// SortedNames returns the bound names in lexical order, for deterministic
// output.
func (s *ModuleSignature) SortedNames() []string {
	names := make([]string, 0, len(s.Names))
	for name := range s.Names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedExportSets returns export set names in lexical order.
func (s *ModuleSignature) SortedExportSets() []string {
	names := make([]string, 0, len(s.ExportSets))
	for name := range s.ExportSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
