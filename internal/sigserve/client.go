package sigserve

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// SignatureInfo is a client-side view of one module's resolved signature.
type SignatureInfo struct {
	Module              string
	Names               []string
	ExportSets          []string
	HasCompileSignature bool
	ExportUnsound       bool
}

// Client talks to a signature service using the same runtime-parsed schema
// the server registers.
type Client struct {
	conn *grpc.ClientConn
	sd   *desc.ServiceDescriptor
}

func Dial(target string) (*Client, error) {
	fd, err := parseDescriptor()
	if err != nil {
		return nil, err
	}
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, sd: fd.FindService(ServiceName)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, in *dynamic.Message) (*dynamic.Message, error) {
	md := c.sd.FindMethodByName(method)
	if md == nil {
		return nil, fmt.Errorf("sigserve: method %q not in schema", method)
	}
	out := dynamic.NewMessage(md.GetOutputType())
	fullMethod := fmt.Sprintf("/%s/%s", ServiceName, method)
	if err := c.conn.Invoke(ctx, fullMethod, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSignature fetches one module's signature summary.
func (c *Client) GetSignature(ctx context.Context, moduleName string) (*SignatureInfo, error) {
	md := c.sd.FindMethodByName("GetSignature")
	in := dynamic.NewMessage(md.GetInputType())
	in.SetFieldByName("module", moduleName)

	out, err := c.invoke(ctx, "GetSignature", in)
	if err != nil {
		return nil, err
	}
	info := &SignatureInfo{}
	if v, err := out.TryGetFieldByName("module"); err == nil {
		info.Module, _ = v.(string)
	}
	info.Names = repeatedStrings(out, "names")
	info.ExportSets = repeatedStrings(out, "export_sets")
	if v, err := out.TryGetFieldByName("has_compile_signature"); err == nil {
		info.HasCompileSignature, _ = v.(bool)
	}
	if v, err := out.TryGetFieldByName("export_unsound"); err == nil {
		info.ExportUnsound, _ = v.(bool)
	}
	return info, nil
}

// ListModules fetches every module name the service knows.
func (c *Client) ListModules(ctx context.Context) ([]string, error) {
	md := c.sd.FindMethodByName("ListModules")
	in := dynamic.NewMessage(md.GetInputType())
	out, err := c.invoke(ctx, "ListModules", in)
	if err != nil {
		return nil, err
	}
	return repeatedStrings(out, "modules"), nil
}

func repeatedStrings(msg *dynamic.Message, field string) []string {
	raw, err := msg.TryGetFieldByName(field)
	if err != nil {
		return nil
	}
	values, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
