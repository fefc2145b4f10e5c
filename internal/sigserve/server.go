// Package sigserve exposes resolved module signatures to editor tooling
// over gRPC. The service schema is parsed at runtime and served through
// dynamic messages, so no generated stubs are needed. The service is
// read-only: it reports what resolution produced and never mutates it.
package sigserve

import (
	"context"
	"fmt"
	"net"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/calyx-lang/calyx/internal/signature"
)

// Server serves signature lookups from a resolution run's registry.
type Server struct {
	sigs *signature.Registry
	sd   *desc.ServiceDescriptor
	grpc *grpc.Server
	addr string
}

func NewServer(sigs *signature.Registry) (*Server, error) {
	fd, err := parseDescriptor()
	if err != nil {
		return nil, fmt.Errorf("sigserve: parsing service schema: %w", err)
	}
	sd := fd.FindService(ServiceName)
	if sd == nil {
		return nil, fmt.Errorf("sigserve: service %s not found in schema", ServiceName)
	}

	s := &Server{sigs: sigs, sd: sd, grpc: grpc.NewServer()}
	s.grpc.RegisterService(s.serviceDesc(), s)
	return s, nil
}

// serviceDesc builds the gRPC service descriptor from the parsed schema,
// one unary handler per method.
func (s *Server) serviceDesc() *grpc.ServiceDesc {
	gd := &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*interface{})(nil),
		Metadata:    s.sd.GetFile().GetName(),
	}
	for _, method := range s.sd.GetMethods() {
		md := method
		gd.Methods = append(gd.Methods, grpc.MethodDesc{
			MethodName: md.GetName(),
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				return srv.(*Server).handleUnary(ctx, md, dec)
			},
		})
	}
	return gd
}

func (s *Server) handleUnary(_ context.Context, md *desc.MethodDescriptor, dec func(interface{}) error) (interface{}, error) {
	in := dynamic.NewMessage(md.GetInputType())
	if err := dec(in); err != nil {
		return nil, err
	}
	out := dynamic.NewMessage(md.GetOutputType())

	switch md.GetName() {
	case "GetSignature":
		name, _ := in.TryGetFieldByName("module")
		moduleName, _ := name.(string)
		if err := s.fillSignature(moduleName, out); err != nil {
			return nil, err
		}
	case "ListModules":
		for _, m := range s.sigs.ModuleNames() {
			out.AddRepeatedFieldByName("modules", m)
		}
	default:
		return nil, status.Errorf(codes.Unimplemented, "method %s", md.GetName())
	}
	return out, nil
}

func (s *Server) fillSignature(moduleName string, out *dynamic.Message) error {
	sig, ok := s.sigs.Get(moduleName)
	if !ok {
		return status.Errorf(codes.NotFound, "module %q has no resolved signature", moduleName)
	}
	out.SetFieldByName("module", sig.ModuleName)
	for _, n := range sig.SortedNames() {
		out.AddRepeatedFieldByName("names", n)
	}
	for _, n := range sig.SortedExportSets() {
		out.AddRepeatedFieldByName("export_sets", n)
	}
	out.SetFieldByName("has_compile_signature", sig.CompileSignature != nil)
	out.SetFieldByName("export_unsound", sig.ExportUnsound)
	return nil
}

// Serve listens on addr and serves until Stop. It returns the bound
// address through Addr, useful when addr requests an ephemeral port.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.addr = lis.Addr().String()
	return s.grpc.Serve(lis)
}

// ServeAsync is Serve on a background goroutine; it returns once the
// listener is bound.
func (s *Server) ServeAsync(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.addr = lis.Addr().String()
	go func() {
		_ = s.grpc.Serve(lis)
	}()
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Stop gracefully stops the server.
func (s *Server) Stop() {
	s.grpc.GracefulStop()
}
