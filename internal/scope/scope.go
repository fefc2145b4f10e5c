package scope

import "github.com/google/uuid"

// Visibility is an opaque set of scope tokens. A declaration is resolvable
// at a point iff its defining scope shares at least one token with a scope
// currently active on the stack. Scopes compose by union via Augment.
type Visibility struct {
	tokens map[string]struct{}
}

// NewVisibility returns a scope containing one fresh token.
func NewVisibility() *Visibility {
	return &Visibility{tokens: map[string]struct{}{uuid.NewString(): {}}}
}

// Augment unions other's tokens into v and returns v.
func (v *Visibility) Augment(other *Visibility) *Visibility {
	if other == nil {
		return v
	}
	for tok := range other.tokens {
		v.tokens[tok] = struct{}{}
	}
	return v
}

// Intersects reports whether v and other share at least one token.
func (v *Visibility) Intersects(other *Visibility) bool {
	if v == nil || other == nil {
		return false
	}
	a, b := v.tokens, other.tokens
	if len(b) < len(a) {
		a, b = b, a
	}
	for tok := range a {
		if _, ok := b[tok]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of tokens in the scope.
func (v *Visibility) Len() int {
	if v == nil {
		return 0
	}
	return len(v.tokens)
}
