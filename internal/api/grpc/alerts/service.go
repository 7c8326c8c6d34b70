package alerts

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "medalert.v1.AlertService"

const (
	evaluateFullMethod  = "/" + ServiceName + "/Evaluate"
	getReportFullMethod = "/" + ServiceName + "/GetReport"
)

// AlertServiceServer is the server API for the alert service.
type AlertServiceServer interface {
	// Evaluate classifies the roster in the request and returns the report.
	Evaluate(ctx context.Context, roster *structpb.Struct) (*structpb.Struct, error)
	// GetReport returns the report of the last watched snapshot.
	GetReport(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// AlertServiceClient is the client API for the alert service.
type AlertServiceClient interface {
	Evaluate(ctx context.Context, roster *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetReport(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// ServiceDesc describes the alert service for grpc.Server registration.
//
//nolint:gochecknoglobals // gRPC service descriptors are package-level by convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlertServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
		{MethodName: "GetReport", Handler: getReportHandler},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterAlertServiceServer registers the implementation with a gRPC server.
func RegisterAlertServiceServer(registrar grpc.ServiceRegistrar, srv AlertServiceServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

//nolint:revive // Signature fixed by grpc.MethodDesc.
func evaluateHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(AlertServiceServer).Evaluate(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: evaluateFullMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AlertServiceServer).Evaluate(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

//nolint:revive // Signature fixed by grpc.MethodDesc.
func getReportHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(AlertServiceServer).GetReport(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getReportFullMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AlertServiceServer).GetReport(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}

// alertServiceClient invokes the alert service over a client connection.
type alertServiceClient struct {
	// cc is the underlying connection.
	cc grpc.ClientConnInterface
}

// NewAlertServiceClient wraps a connection in the alert service client.
//
//nolint:ireturn // Mirrors generated gRPC clients.
func NewAlertServiceClient(cc grpc.ClientConnInterface) AlertServiceClient {
	return &alertServiceClient{cc: cc}
}

// Evaluate implements AlertServiceClient.
func (c *alertServiceClient) Evaluate(
	ctx context.Context,
	roster *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, evaluateFullMethod, roster, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// GetReport implements AlertServiceClient.
func (c *alertServiceClient) GetReport(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getReportFullMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
