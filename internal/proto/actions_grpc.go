// Package proto holds the gRPC contract in actions.proto and its Go bindings.
// All messages are google.protobuf.Struct, so only the service binding is
// needed; keep this file in step with actions.proto.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ActionsService_CreateInvoice_FullMethodName  = "/invoicedash.v1.ActionsService/CreateInvoice"
	ActionsService_UpdateInvoice_FullMethodName  = "/invoicedash.v1.ActionsService/UpdateInvoice"
	ActionsService_DeleteInvoice_FullMethodName  = "/invoicedash.v1.ActionsService/DeleteInvoice"
	ActionsService_Register_FullMethodName       = "/invoicedash.v1.ActionsService/Register"
	ActionsService_Authenticate_FullMethodName   = "/invoicedash.v1.ActionsService/Authenticate"
	ActionsService_RefreshToken_FullMethodName   = "/invoicedash.v1.ActionsService/RefreshToken"
	ActionsService_CustomerAvatar_FullMethodName = "/invoicedash.v1.ActionsService/CustomerAvatar"
	ActionsService_Ping_FullMethodName           = "/invoicedash.v1.ActionsService/Ping"
)

// ActionsServiceClient is the client API for ActionsService.
type ActionsServiceClient interface {
	CreateInvoice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateInvoice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteInvoice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Authenticate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RefreshToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CustomerAvatar(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type actionsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewActionsServiceClient(cc grpc.ClientConnInterface) ActionsServiceClient {
	return &actionsServiceClient{cc}
}

func (c *actionsServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *actionsServiceClient) CreateInvoice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ActionsService_CreateInvoice_FullMethodName, in, opts)
}

func (c *actionsServiceClient) UpdateInvoice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ActionsService_UpdateInvoice_FullMethodName, in, opts)
}

func (c *actionsServiceClient) DeleteInvoice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ActionsService_DeleteInvoice_FullMethodName, in, opts)
}

func (c *actionsServiceClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ActionsService_Register_FullMethodName, in, opts)
}

func (c *actionsServiceClient) Authenticate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ActionsService_Authenticate_FullMethodName, in, opts)
}

func (c *actionsServiceClient) RefreshToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ActionsService_RefreshToken_FullMethodName, in, opts)
}

func (c *actionsServiceClient) CustomerAvatar(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ActionsService_CustomerAvatar_FullMethodName, in, opts)
}

func (c *actionsServiceClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ActionsService_Ping_FullMethodName, in, opts)
}

// ActionsServiceServer is the server API for ActionsService. Implementations
// must embed UnimplementedActionsServiceServer.
type ActionsServiceServer interface {
	CreateInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Authenticate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CustomerAvatar(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedActionsServiceServer()
}

// UnimplementedActionsServiceServer answers every method with codes.Unimplemented.
type UnimplementedActionsServiceServer struct{}

func (UnimplementedActionsServiceServer) CreateInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateInvoice not implemented")
}

func (UnimplementedActionsServiceServer) UpdateInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateInvoice not implemented")
}

func (UnimplementedActionsServiceServer) DeleteInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteInvoice not implemented")
}

func (UnimplementedActionsServiceServer) Register(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedActionsServiceServer) Authenticate(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Authenticate not implemented")
}

func (UnimplementedActionsServiceServer) RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}

func (UnimplementedActionsServiceServer) CustomerAvatar(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CustomerAvatar not implemented")
}

func (UnimplementedActionsServiceServer) Ping(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedActionsServiceServer) mustEmbedUnimplementedActionsServiceServer() {}

func RegisterActionsServiceServer(s grpc.ServiceRegistrar, srv ActionsServiceServer) {
	s.RegisterService(&ActionsService_ServiceDesc, srv)
}

type unaryMethod func(ActionsServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ActionsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ActionsServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ActionsService_ServiceDesc is the grpc.ServiceDesc for ActionsService.
var ActionsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "invoicedash.v1.ActionsService",
	HandlerType: (*ActionsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateInvoice", Handler: unaryHandler(ActionsService_CreateInvoice_FullMethodName, ActionsServiceServer.CreateInvoice)},
		{MethodName: "UpdateInvoice", Handler: unaryHandler(ActionsService_UpdateInvoice_FullMethodName, ActionsServiceServer.UpdateInvoice)},
		{MethodName: "DeleteInvoice", Handler: unaryHandler(ActionsService_DeleteInvoice_FullMethodName, ActionsServiceServer.DeleteInvoice)},
		{MethodName: "Register", Handler: unaryHandler(ActionsService_Register_FullMethodName, ActionsServiceServer.Register)},
		{MethodName: "Authenticate", Handler: unaryHandler(ActionsService_Authenticate_FullMethodName, ActionsServiceServer.Authenticate)},
		{MethodName: "RefreshToken", Handler: unaryHandler(ActionsService_RefreshToken_FullMethodName, ActionsServiceServer.RefreshToken)},
		{MethodName: "CustomerAvatar", Handler: unaryHandler(ActionsService_CustomerAvatar_FullMethodName, ActionsServiceServer.CustomerAvatar)},
		{MethodName: "Ping", Handler: unaryHandler(ActionsService_Ping_FullMethodName, ActionsServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "actions.proto",
}
