package rewriters

import (
	"fmt"

	"github.com/calyx-lang/calyx/internal/ast"
)

// Trace records every hook invocation as "Hook(module)" strings. The CLI
// registers it in verbose mode; tests use it to pin down hook ordering.
type Trace struct {
	Events []string
}

func (t *Trace) Name() string { return "trace" }

func (t *Trace) record(hook string, m *ast.Module) {
	t.Events = append(t.Events, fmt.Sprintf("%s(%s)", hook, m.Name))
}

func (t *Trace) PreResolve(m *ast.Module) {
	t.record("PreResolve", m)
}

func (t *Trace) PostResolveIntermediate(m *ast.Module) {
	t.record("PostResolveIntermediate", m)
}

func (t *Trace) PostCompileCloneAndResolve(clone *ast.Module) {
	t.record("PostCompileCloneAndResolve", clone)
}

func (t *Trace) PostDecreasesResolve(m *ast.Module) {
	t.record("PostDecreasesResolve", m)
}
