package flights_service_api

import (
	"context"

	"github.com/Domenick1991/skybook/internal/api/bookings_service_api"
	"github.com/Domenick1991/skybook/internal/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "skybook.v1.FlightsService"

	SearchFlightsMethod = "/" + ServiceName + "/SearchFlights"
)

type FlightSearcher interface {
	SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error)
}

type FlightsServiceServer interface {
	SearchFlights(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var FlightsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FlightsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SearchFlights", Handler: searchFlightsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "skybook/v1/flights.proto",
}

func RegisterFlightsServiceServer(s grpc.ServiceRegistrar, srv FlightsServiceServer) {
	s.RegisterService(&FlightsServiceDesc, srv)
}

func searchFlightsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).SearchFlights(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SearchFlightsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).SearchFlights(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Server answers route searches. It needs no caller identity.
type Server struct {
	flights FlightSearcher
}

func NewServer(flights FlightSearcher) *Server {
	return &Server{flights: flights}
}

func (s *Server) SearchFlights(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	list, err := s.flights.SearchFlights(ctx, fields["origin"].GetStringValue(), fields["destination"].GetStringValue())
	if err != nil {
		return nil, status.Error(bookings_service_api.Code(err), err.Error())
	}

	out := make([]any, 0, len(list))
	for _, f := range list {
		out = append(out, bookings_service_api.FlightFields(f))
	}
	resp, err := structpb.NewStruct(map[string]any{"flights": out})
	if err != nil {
		return nil, status.Error(bookings_service_api.Code(err), err.Error())
	}
	return resp, nil
}

var _ FlightsServiceServer = (*Server)(nil)
