package scope

import "errors"

// ErrPopMismatch is the panic value raised when Pop is handed a scope other
// than the most recently pushed one. Scope nesting is strictly LIFO; a
// mismatch is an orchestrator bug, not a user-input condition.
var ErrPopMismatch = errors.New("scope: pop does not match most recent push")

// Stack is the set of visibility scopes active during resolution. Name
// lookups consult it through IsVisible. Filtering can be suspended while a
// compile clone resolves, since generated code needs the full internal
// namespace rather than only what a module exports.
type Stack struct {
	frames   []*Visibility
	disabled int
}

func NewStack() *Stack {
	return &Stack{}
}

// Push activates v. Every Push must be paired with a Pop of the same scope.
func (s *Stack) Push(v *Visibility) {
	s.frames = append(s.frames, v)
}

// Pop deactivates v, which must be the scope most recently pushed.
func (s *Stack) Pop(v *Visibility) {
	if len(s.frames) == 0 || s.frames[len(s.frames)-1] != v {
		panic(ErrPopMismatch)
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the number of active scopes.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// DisableFiltering suspends visibility checks; every declaration becomes
// resolvable until the returned release function runs. Calls nest.
func (s *Stack) DisableFiltering() func() {
	s.disabled++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.disabled--
	}
}

// FilteringDisabled reports whether visibility checks are suspended.
func (s *Stack) FilteringDisabled() bool {
	return s.disabled > 0
}

// IsVisible reports whether a declaration defined under v is resolvable:
// either filtering is suspended or v intersects some active scope.
func (s *Stack) IsVisible(v *Visibility) bool {
	if s.disabled > 0 {
		return true
	}
	for _, frame := range s.frames {
		if frame.Intersects(v) {
			return true
		}
	}
	return false
}
