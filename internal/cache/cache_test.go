package cache

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
	"github.com/calyx-lang/calyx/internal/signature"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), ".calyx", "signatures.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func stackModule() *ast.Module {
	return &ast.Module{
		Name: "Stack",
		Decls: []*ast.Decl{
			{Name: "T", Kind: ast.KindType},
			{Name: "push", Kind: ast.KindFunction, Params: []string{"s", "x"}, TypeDeps: []string{"T"}},
		},
		Exports: []*ast.ExportClause{{Provides: []string{"push", "T"}}},
	}
}

func resolvedSignature(m *ast.Module) *signature.ModuleSignature {
	sig := signature.RegisterDeclarations(diagnostics.NewReporter(), m, nil)
	sig.ExportSets = map[string]*signature.ExportSet{
		"":       {Name: "", Signature: sig},
		"Public": {Name: "Public", Signature: sig},
	}
	return sig
}

func TestPutGetRoundtrip(t *testing.T) {
	c := openTestCache(t)
	m := stackModule()
	sig := resolvedSignature(m)

	if err := c.Put("Stack", Fingerprint(m), sig); err != nil {
		t.Fatalf("Put: %v", err)
	}

	e, ok, err := c.Get("Stack")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %t, %v", e, ok, err)
	}
	if e.Module != "Stack" {
		t.Errorf("Module = %q", e.Module)
	}
	if e.Fingerprint != Fingerprint(m) {
		t.Error("fingerprint mismatch")
	}
	if e.RunID != c.RunID() {
		t.Errorf("RunID = %q, want %q", e.RunID, c.RunID())
	}
	if got := strings.Join(e.ExportSets, ";"); got != ";Public" {
		t.Errorf("ExportSets = %v, want the sorted set names", e.ExportSets)
	}
	if e.ResolvedAt.IsZero() {
		t.Error("ResolvedAt not recorded")
	}
}

func TestDefaultOnlyExportSetRoundtrip(t *testing.T) {
	c := openTestCache(t)
	m := stackModule()
	sig := signature.RegisterDeclarations(diagnostics.NewReporter(), m, nil)
	sig.ExportSets = map[string]*signature.ExportSet{
		"": {Name: "", Signature: sig},
	}

	if err := c.Put("Stack", Fingerprint(m), sig); err != nil {
		t.Fatalf("Put: %v", err)
	}
	e, ok, err := c.Get("Stack")
	if err != nil || !ok {
		t.Fatalf("Get: %v, %t", err, ok)
	}
	// the default set's name is the empty string; it must survive the trip
	if len(e.ExportSets) != 1 || e.ExportSets[0] != "" {
		t.Errorf("ExportSets = %#v, want one default set", e.ExportSets)
	}
}

func TestNoExportSetsRoundtrip(t *testing.T) {
	c := openTestCache(t)
	m := stackModule()
	sig := signature.RegisterDeclarations(diagnostics.NewReporter(), m, nil)

	if err := c.Put("Stack", Fingerprint(m), sig); err != nil {
		t.Fatalf("Put: %v", err)
	}
	e, ok, err := c.Get("Stack")
	if err != nil || !ok {
		t.Fatalf("Get: %v, %t", err, ok)
	}
	if len(e.ExportSets) != 0 {
		t.Errorf("ExportSets = %#v, want none", e.ExportSets)
	}
}

func TestGetMissingModule(t *testing.T) {
	c := openTestCache(t)
	e, ok, err := c.Get("Nowhere")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || e != nil {
		t.Errorf("Get = %v, %t; want a clean miss", e, ok)
	}
}

func TestPutReplacesEarlierEntry(t *testing.T) {
	c := openTestCache(t)
	m := stackModule()
	sig := resolvedSignature(m)

	if err := c.Put("Stack", "aaaa", sig); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("Stack", "bbbb", sig); err != nil {
		t.Fatal(err)
	}

	e, ok, err := c.Get("Stack")
	if err != nil || !ok {
		t.Fatalf("Get: %v, %t", err, ok)
	}
	if e.Fingerprint != "bbbb" {
		t.Errorf("Fingerprint = %q, want the replacement", e.Fingerprint)
	}
}

func TestUnchanged(t *testing.T) {
	c := openTestCache(t)
	m := stackModule()
	fp := Fingerprint(m)
	if err := c.Put("Stack", fp, resolvedSignature(m)); err != nil {
		t.Fatal(err)
	}

	if same, err := c.Unchanged("Stack", fp); err != nil || !same {
		t.Errorf("Unchanged(same) = %t, %v; want true", same, err)
	}
	if same, err := c.Unchanged("Stack", "other"); err != nil || same {
		t.Errorf("Unchanged(other) = %t, %v; want false", same, err)
	}
	if same, err := c.Unchanged("Nowhere", fp); err != nil || same {
		t.Errorf("Unchanged(missing) = %t, %v; want false", same, err)
	}
}

func TestCachePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigs.db")
	m := stackModule()

	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Put("Stack", Fingerprint(m), resolvedSignature(m)); err != nil {
		t.Fatal(err)
	}
	firstRun := first.RunID()
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if second.RunID() == firstRun {
		t.Error("each cache instance must get its own run ID")
	}
	e, ok, err := second.Get("Stack")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: %v, %t", err, ok)
	}
	if e.RunID != firstRun {
		t.Errorf("entry RunID = %q, want the writing run %q", e.RunID, firstRun)
	}
}

func TestFingerprintIsStructural(t *testing.T) {
	a, b := stackModule(), stackModule()
	b.SuccessfullyResolved = true // resolution state must not matter
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("structurally identical modules must fingerprint identically")
	}

	b.Decls[1].Fuel = &ast.Fuel{Low: 1, High: 1}
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("a declaration change must change the fingerprint")
	}
}
