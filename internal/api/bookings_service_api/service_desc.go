package bookings_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "skybook.v1.BookingsService"

	BookTicketMethod  = "/" + ServiceName + "/BookTicket"
	ListTicketsMethod = "/" + ServiceName + "/ListTickets"
	StatisticsMethod  = "/" + ServiceName + "/Statistics"
)

type BookingsServiceServer interface {
	BookTicket(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListTickets(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Statistics(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

var BookingsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "BookTicket", Handler: bookTicketHandler},
		{MethodName: "ListTickets", Handler: listTicketsHandler},
		{MethodName: "Statistics", Handler: statisticsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "skybook/v1/bookings.proto",
}

func RegisterBookingsServiceServer(s grpc.ServiceRegistrar, srv BookingsServiceServer) {
	s.RegisterService(&BookingsServiceDesc, srv)
}

func bookTicketHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookingsServiceServer).BookTicket(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BookTicketMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BookingsServiceServer).BookTicket(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listTicketsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookingsServiceServer).ListTickets(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListTicketsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BookingsServiceServer).ListTickets(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func statisticsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookingsServiceServer).Statistics(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StatisticsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BookingsServiceServer).Statistics(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
