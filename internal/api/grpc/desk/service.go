package desk

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "desks.v1.DeskLayoutService"
	// CalculateDeskLayoutMethod is the full method name for arranging people.
	CalculateDeskLayoutMethod = "/" + ServiceName + "/CalculateDeskLayout"
	// CheckOrderMethod is the full method name for evaluating a row.
	CheckOrderMethod = "/" + ServiceName + "/CheckOrder"
)

// DeskLayoutServer is the server API of desks.v1.DeskLayoutService.
type DeskLayoutServer interface {
	CalculateDeskLayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CheckOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes desks.v1.DeskLayoutService for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by gRPC convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DeskLayoutServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CalculateDeskLayout",
			Handler:    calculateDeskLayoutHandler,
		},
		{
			MethodName: "CheckOrder",
			Handler:    checkOrderHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "desks/v1/desks.proto",
}

// RegisterDeskLayoutServer registers srv on the gRPC server.
func RegisterDeskLayoutServer(registrar grpc.ServiceRegistrar, srv DeskLayoutServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

//nolint:revive // Signature is fixed by grpc.MethodHandler.
func calculateDeskLayoutHandler(
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
		return srv.(DeskLayoutServer).CalculateDeskLayout(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalculateDeskLayoutMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeskLayoutServer).CalculateDeskLayout(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

//nolint:revive // Signature is fixed by grpc.MethodHandler.
func checkOrderHandler(
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
		return srv.(DeskLayoutServer).CheckOrder(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CheckOrderMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeskLayoutServer).CheckOrder(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

// DeskLayoutClient is the client API of desks.v1.DeskLayoutService.
type DeskLayoutClient struct {
	cc grpc.ClientConnInterface
}

// NewDeskLayoutClient wraps a client connection.
func NewDeskLayoutClient(cc grpc.ClientConnInterface) *DeskLayoutClient {
	return &DeskLayoutClient{
		cc: cc,
	}
}

// CalculateDeskLayout calls desks.v1.DeskLayoutService/CalculateDeskLayout.
func (c *DeskLayoutClient) CalculateDeskLayout(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CalculateDeskLayoutMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// CheckOrder calls desks.v1.DeskLayoutService/CheckOrder.
func (c *DeskLayoutClient) CheckOrder(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CheckOrderMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
