// Package loader reads module outlines from a directory and arranges them
// dependency-first for resolution. An outline (.cxo file) is the parser
// front end's summary of one module: its name, refinement parent, imports,
// export clauses, and per-declaration name sets. Full-language parsing
// happens upstream and is out of scope here.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
)

// OutlineExt is the recognized module outline extension.
const OutlineExt = ".cxo"

// Loader loads module outlines and caches them by path.
type Loader struct {
	rep *diagnostics.Reporter

	loaded map[string]*ast.Module // by absolute file path
	byName map[string]*ast.Module // by module name
}

func New(rep *diagnostics.Reporter) *Loader {
	return &Loader{
		rep:    rep,
		loaded: make(map[string]*ast.Module),
		byName: make(map[string]*ast.Module),
	}
}

// ModuleByName returns an already-loaded module by name.
func (l *Loader) ModuleByName(name string) (*ast.Module, bool) {
	m, ok := l.byName[name]
	return m, ok
}

// LoadProgram loads every outline under dir (one module per file, sorted
// for deterministic processing) and returns a program whose modules are
// ordered dependency-first by refinement and import edges.
func (l *Loader) LoadProgram(dir string) (*ast.Program, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, f := range entries {
		if !f.IsDir() && strings.HasSuffix(f.Name(), OutlineExt) {
			files = append(files, filepath.Join(absDir, f.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", OutlineExt, absDir)
	}

	var modules []*ast.Module
	for _, file := range files {
		m, err := l.LoadFile(file)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}

	return &ast.Program{Modules: l.orderByDependencies(modules)}, nil
}

// LoadFile loads a single outline file, consulting the cache first.
func (l *Loader) LoadFile(path string) (*ast.Module, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if m, ok := l.loaded[absPath]; ok {
		return m, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	m, err := ParseOutline(string(content), absPath)
	if err != nil {
		return nil, err
	}

	l.loaded[absPath] = m
	l.byName[m.Name] = m
	return m, nil
}

// orderByDependencies topologically sorts modules so refinement parents
// and imports come before their dependents, breaking ties by original
// position. An edge cycle is reported and the original order kept, so a
// cyclic program still reaches resolution and produces ordinary
// diagnostics there.
func (l *Loader) orderByDependencies(modules []*ast.Module) []*ast.Module {
	index := make(map[string]int, len(modules))
	for i, m := range modules {
		index[m.Name] = i
	}

	edges := make([][]int, len(modules))
	inDegree := make([]int, len(modules))
	addEdge := func(depName string, to int) {
		from, ok := index[depName]
		if !ok || from == to {
			return
		}
		edges[from] = append(edges[from], to)
		inDegree[to]++
	}
	for i, m := range modules {
		if !m.RefinesName.IsEmpty() {
			addEdge(m.RefinesName[0], i)
		}
		for _, imp := range m.Imports {
			addEdge(imp[0], i)
		}
	}

	queue := make([]int, 0, len(modules))
	for i := range modules {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	sort.Ints(queue)

	ordered := make([]*ast.Module, 0, len(modules))
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		ordered = append(ordered, modules[idx])
		for _, next := range edges[idx] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
				sort.Ints(queue)
			}
		}
	}

	if len(ordered) != len(modules) {
		var stuck []string
		for i, deg := range inDegree {
			if deg > 0 {
				stuck = append(stuck, modules[i].Name)
			}
		}
		sort.Strings(stuck)
		l.rep.Errorf(diagnostics.ErrL001, modules[0].Tok,
			"dependency cycle involving modules: %s", strings.Join(stuck, ", "))
		return modules
	}
	return ordered
}
