package signature

import "sort"

// Registry owns the signatures of all modules resolved so far, keyed by
// module name. Back-references between signatures (refinement parents,
// cross-module lookups) go through it instead of shared aliases.
type Registry struct {
	sigs map[string]*ModuleSignature
}

func NewRegistry() *Registry {
	return &Registry{sigs: make(map[string]*ModuleSignature)}
}

// Add registers sig under its module name, replacing any signature from an
// earlier resolution attempt of the same module.
func (r *Registry) Add(sig *ModuleSignature) {
	r.sigs[sig.ModuleName] = sig
}

// Get returns the signature registered for the named module.
func (r *Registry) Get(moduleName string) (*ModuleSignature, bool) {
	sig, ok := r.sigs[moduleName]
	return sig, ok
}

// Len returns the number of registered signatures.
func (r *Registry) Len() int {
	return len(r.sigs)
}

// ModuleNames returns the registered module names in lexical order.
func (r *Registry) ModuleNames() []string {
	names := make([]string, 0, len(r.sigs))
	for name := range r.sigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
