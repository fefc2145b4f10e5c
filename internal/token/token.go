package token

import "fmt"

// Token identifies a location in a module outline file. Declarations carry
// their defining token so diagnostics can point back at the source.
type Token struct {
	File string
	Line int
	Col  int
}

// NoToken is used for diagnostics that have no source location, such as
// whole-module conditions discovered during analysis.
var NoToken = Token{}

func (t Token) IsZero() bool {
	return t.File == "" && t.Line == 0 && t.Col == 0
}

func (t Token) String() string {
	if t.IsZero() {
		return "<unknown>"
	}
	if t.Col == 0 {
		return fmt.Sprintf("%s:%d", t.File, t.Line)
	}
	return fmt.Sprintf("%s:%d:%d", t.File, t.Line, t.Col)
}
