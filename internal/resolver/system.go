package resolver

import (
	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/scope"
	"github.com/calyx-lang/calyx/internal/signature"
)

// systemNames are the built-in types every module can mention without
// importing or exporting anything.
var systemNames = []string{
	"bool", "int", "nat", "real", "char", "string",
	"seq", "set", "multiset", "map", "array", "object",
}

// newSystemSignature builds the program's built-in signature. Its scope is
// combined with every module's own scope before member bodies resolve, so
// system names are always visible.
func newSystemSignature() *signature.ModuleSignature {
	sig := &signature.ModuleSignature{
		ModuleName: "_System",
		Names:      make(map[string]*ast.Decl, len(systemNames)),
		Scope:      scope.NewVisibility(),
	}
	for _, name := range systemNames {
		decl := &ast.Decl{
			Name:       name,
			Kind:       ast.KindType,
			Visibility: scope.NewVisibility().Augment(sig.Scope),
		}
		sig.Names[name] = decl
	}
	return sig
}
