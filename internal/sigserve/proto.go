package sigserve

import (
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

// protoFile is the service schema, parsed at startup. Keeping it as source
// avoids a protoc step and lets clients fetch the descriptor at runtime.
const protoFile = "calyx/sigserve.proto"

const protoSource = `syntax = "proto3";

package calyx;

message ModuleRequest {
  string module = 1;
}

message SignatureReply {
  string module = 1;
  repeated string names = 2;
  repeated string export_sets = 3;
  bool has_compile_signature = 4;
  bool export_unsound = 5;
}

message ListRequest {
}

message ListReply {
  repeated string modules = 1;
}

service SignatureService {
  rpc GetSignature (ModuleRequest) returns (SignatureReply);
  rpc ListModules (ListRequest) returns (ListReply);
}
`

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "calyx.SignatureService"

func parseDescriptor() (*desc.FileDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			protoFile: protoSource,
		}),
	}
	fds, err := parser.ParseFiles(protoFile)
	if err != nil {
		return nil, err
	}
	return fds[0], nil
}
