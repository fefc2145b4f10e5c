package resolver

import (
	"errors"

	"github.com/calyx-lang/calyx/internal/diagnostics"
	"github.com/calyx-lang/calyx/internal/scope"
)

// ErrReentrantCompileMode is the panic value raised when compile-signature
// mode is activated while already active. The cloner is never nested; a
// reentrant activation is an orchestrator bug, not a user-input condition.
var ErrReentrantCompileMode = errors.New("resolver: compile-signature mode is already active")

// ErrScopeImbalance is the panic value raised when a module's resolution
// returns with a different scope-stack depth than it started with.
var ErrScopeImbalance = errors.New("resolver: scope stack depth changed across module resolution")

// Context is the only process-wide mutable state resolution needs: the
// shared reporter, the active scope stack, and the compile-signature mode
// flag. It is threaded explicitly through every component that mutates it.
// One Context lives for one full program resolution run.
type Context struct {
	Reporter *diagnostics.Reporter
	Scopes   *scope.Stack

	compileMode bool
}

func NewContext(rep *diagnostics.Reporter) *Context {
	return &Context{
		Reporter: rep,
		Scopes:   scope.NewStack(),
	}
}

// CompileMode reports whether name lookups should prefer compile
// signatures over verification signatures.
func (c *Context) CompileMode() bool {
	return c.compileMode
}

// EnterCompileMode flips the mode flag on, suppresses warning-level
// diagnostics, and suspends export-scope filtering. It returns a release
// function that restores all three on every exit path; callers defer it
// immediately. Activating the mode while already active panics.
func (c *Context) EnterCompileMode() func() {
	if c.compileMode {
		panic(ErrReentrantCompileMode)
	}
	c.compileMode = true
	prevErrorsOnly := c.Reporter.SetErrorsOnly(true)
	releaseFilter := c.Scopes.DisableFiltering()
	released := false
	return func() {
		if released {
			return
		}
		released = true
		releaseFilter()
		c.Reporter.SetErrorsOnly(prevErrorsOnly)
		c.compileMode = false
	}
}
