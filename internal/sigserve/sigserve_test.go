package sigserve

import (
	"context"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/diagnostics"
	"github.com/calyx-lang/calyx/internal/resolver"
)

// startService resolves a small program and serves its signatures on an
// ephemeral loopback port.
func startService(t *testing.T) *Client {
	t.Helper()

	a := &ast.Module{
		Name:    "A",
		Decls:   []*ast.Decl{{Name: "f", Kind: ast.KindFunction}},
		Exports: []*ast.ExportClause{{Provides: []string{"f"}}},
	}
	b := &ast.Module{Name: "B", Abstract: true}
	prog := &ast.Program{Modules: []*ast.Module{a, b}}
	res := resolver.New(prog, diagnostics.NewReporter(), nil)
	res.ResolveProgram()

	srv, err := NewServer(res.Signatures())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.ServeAsync("127.0.0.1:0"); err != nil {
		t.Fatalf("ServeAsync: %v", err)
	}
	t.Cleanup(srv.Stop)

	client, err := Dial(srv.Addr())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestGetSignature(t *testing.T) {
	client := startService(t)

	info, err := client.GetSignature(testContext(t), "A")
	if err != nil {
		t.Fatalf("GetSignature: %v", err)
	}
	if info.Module != "A" {
		t.Errorf("Module = %q, want A", info.Module)
	}
	if got := strings.Join(info.Names, ","); got != "f" {
		t.Errorf("Names = %v, want [f]", info.Names)
	}
	if len(info.ExportSets) != 1 || info.ExportSets[0] != "" {
		t.Errorf("ExportSets = %v, want the default set", info.ExportSets)
	}
	if !info.HasCompileSignature {
		t.Error("A is concrete and clean, so it carries a compile signature")
	}
	if info.ExportUnsound {
		t.Error("A's exports are sound")
	}
}

func TestGetSignatureAbstractModule(t *testing.T) {
	client := startService(t)

	info, err := client.GetSignature(testContext(t), "B")
	if err != nil {
		t.Fatalf("GetSignature: %v", err)
	}
	if info.HasCompileSignature {
		t.Error("abstract module must not report a compile signature")
	}
}

func TestGetSignatureUnknownModule(t *testing.T) {
	client := startService(t)

	_, err := client.GetSignature(testContext(t), "Nowhere")
	if err == nil {
		t.Fatal("expected an error for an unknown module")
	}
	if st, ok := status.FromError(err); !ok || st.Code() != codes.NotFound {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestListModules(t *testing.T) {
	client := startService(t)

	modules, err := client.ListModules(testContext(t))
	if err != nil {
		t.Fatalf("ListModules: %v", err)
	}
	joined := strings.Join(modules, ",")
	if !strings.Contains(joined, "A") || !strings.Contains(joined, "B") {
		t.Errorf("modules = %v, want A and B present", modules)
	}
	for i := 1; i < len(modules); i++ {
		if modules[i-1] >= modules[i] {
			t.Errorf("modules = %v, want a sorted listing", modules)
			break
		}
	}
}

func TestSchemaParses(t *testing.T) {
	fd, err := parseDescriptor()
	if err != nil {
		t.Fatalf("parseDescriptor: %v", err)
	}
	sd := fd.FindService(ServiceName)
	if sd == nil {
		t.Fatalf("service %s missing from schema", ServiceName)
	}
	for _, want := range []string{"GetSignature", "ListModules"} {
		if sd.FindMethodByName(want) == nil {
			t.Errorf("method %s missing from schema", want)
		}
	}
}
