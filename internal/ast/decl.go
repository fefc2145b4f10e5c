package ast

import (
	"github.com/calyx-lang/calyx/internal/scope"
	"github.com/calyx-lang/calyx/internal/token"
)

type DeclKind int

const (
	KindFunction DeclKind = iota
	KindMethod
	KindLemma
	KindType
	KindConst
	KindIterator
)

func (k DeclKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindLemma:
		return "lemma"
	case KindType:
		return "type"
	case KindConst:
		return "const"
	case KindIterator:
		return "iterator"
	default:
		return "declaration"
	}
}

// IsCallable reports whether the kind participates in the call graph and
// termination analysis.
func (k DeclKind) IsCallable() bool {
	switch k {
	case KindFunction, KindMethod, KindLemma, KindIterator:
		return true
	}
	return false
}

// Fuel is a proof-automation unrolling annotation: Low is the default
// unrolling depth, High the depth available once a proof gets stuck.
type Fuel struct {
	Low  int
	High int
}

// Decl is a single top-level declaration inside a module. The parser (out
// of scope here) reduces each body to the name sets resolution needs:
// TypeDeps are the names the declaration's public signature mentions,
// BodyDeps the names its body mentions (possibly qualified), Calls the
// locally-named callees used for recursion marking.
type Decl struct {
	Tok    token.Token
	Name   string
	Kind   DeclKind
	Ghost  bool // proof-only, no executable form
	Params []string

	TypeDeps []string
	BodyDeps []string
	Calls    []string

	// Decreases is the declared termination metric. Resolution fills in a
	// default for recursive callables that lack one.
	Decreases        []string
	DefaultDecreases bool

	Fuel *Fuel

	// IsRecursive is set by resolution for self- or mutually-recursive
	// callables.
	IsRecursive bool

	// Visibility is the declaration's defining scope, assigned when the
	// declaration is registered into a signature.
	Visibility *scope.Visibility
}
