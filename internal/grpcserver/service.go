package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "fulfillment.v1.Tracking"

// TrackingServer is the fulfillment.v1.Tracking contract. Requests and responses are
// google.protobuf.Struct documents carrying the same JSON fields as the HTTP API.
type TrackingServer interface {
	ListOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListOwnOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetOwnOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	PatchOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func unaryHandler(method string, call func(TrackingServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TrackingServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TrackingServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var trackingServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*TrackingServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("ListOrders", TrackingServer.ListOrders),
		unaryHandler("ListOwnOrders", TrackingServer.ListOwnOrders),
		unaryHandler("GetOwnOrder", TrackingServer.GetOwnOrder),
		unaryHandler("PatchOrder", TrackingServer.PatchOrder),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fulfillment/v1/tracking.proto",
}

func RegisterTrackingServer(s grpc.ServiceRegistrar, srv TrackingServer) {
	s.RegisterService(&trackingServiceDesc, srv)
}

// Invoke calls a Tracking method on conn. It is the client half used by tools and tests.
func Invoke(ctx context.Context, conn grpc.ClientConnInterface, method string, req *structpb.Struct) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := conn.Invoke(ctx, "/"+serviceName+"/"+method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}
