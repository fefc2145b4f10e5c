package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/calyx-lang/calyx/internal/ast"
)

// Fingerprint computes a stable hash of a module's declared surface. Two
// structurally identical modules fingerprint identically regardless of
// resolution state.
func Fingerprint(m *ast.Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s refines %s abstract %t\n", m.Name, m.RefinesName, m.Abstract)
	for _, imp := range m.Imports {
		fmt.Fprintf(&b, "import %s\n", imp)
	}
	for _, exp := range m.Exports {
		fmt.Fprintf(&b, "export %s provides %s\n", exp.Name, strings.Join(exp.Provides, ","))
	}
	for _, d := range m.Decls {
		fmt.Fprintf(&b, "%s %s ghost %t params %s type %s uses %s calls %s decreases %s",
			d.Kind, d.Name, d.Ghost,
			strings.Join(d.Params, ","),
			strings.Join(d.TypeDeps, ","),
			strings.Join(d.BodyDeps, ","),
			strings.Join(d.Calls, ","),
			strings.Join(d.Decreases, ","))
		if d.Fuel != nil {
			fmt.Fprintf(&b, " fuel %d %d", d.Fuel.Low, d.Fuel.High)
		}
		b.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
