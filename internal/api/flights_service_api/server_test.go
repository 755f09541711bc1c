package flights_service_api

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/Domenick1991/skybook/internal/api/bookings_service_api"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type MockFlightSearcher struct {
	mock.Mock
}

func (m *MockFlightSearcher) SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

type denyAll struct{}

func (denyAll) Authenticate(string, string) (domain.Caller, error) {
	return domain.Caller{}, domain.ErrUnauthenticated
}

func dial(t *testing.T, searcher FlightSearcher) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(
		bookings_service_api.UnaryAuthInterceptor(denyAll{}, SearchFlightsMethod)))
	RegisterFlightsServiceServer(srv, NewServer(searcher))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func route(t *testing.T, origin, destination string) *structpb.Struct {
	t.Helper()
	req, err := structpb.NewStruct(map[string]any{"origin": origin, "destination": destination})
	require.NoError(t, err)
	return req
}

func TestServer_SearchFlights(t *testing.T) {
	searcher := &MockFlightSearcher{}
	conn := dial(t, searcher)

	searcher.On("SearchFlights", mock.Anything, "delhi", "mumbai").Return([]domain.Flight{
		{FlightNumber: "IA101", Origin: "Delhi", Destination: "Mumbai", DepartureTime: "8:00 AM"},
	}, nil).Once()

	resp := &structpb.Struct{}
	err := conn.Invoke(context.Background(), SearchFlightsMethod, route(t, "delhi", "mumbai"), resp)

	require.NoError(t, err)
	flights := resp.GetFields()["flights"].GetListValue().GetValues()
	require.Len(t, flights, 1)
	assert.Equal(t, "IA101", flights[0].GetStructValue().GetFields()["flight_number"].GetStringValue())
	searcher.AssertExpectations(t)
}

func TestServer_SearchFlights_NoRoute(t *testing.T) {
	searcher := &MockFlightSearcher{}
	conn := dial(t, searcher)

	searcher.On("SearchFlights", mock.Anything, "Delhi", "Goa").Return([]domain.Flight{}, nil).Once()

	resp := &structpb.Struct{}
	err := conn.Invoke(context.Background(), SearchFlightsMethod, route(t, "Delhi", "Goa"), resp)

	require.NoError(t, err)
	assert.Empty(t, resp.GetFields()["flights"].GetListValue().GetValues())
}

func TestServer_SearchFlights_InvalidInput(t *testing.T) {
	searcher := &MockFlightSearcher{}
	conn := dial(t, searcher)

	searcher.On("SearchFlights", mock.Anything, "", "Goa").
		Return(nil, fmt.Errorf("%w: origin and destination are required", domain.ErrInvalidInput)).Once()

	err := conn.Invoke(context.Background(), SearchFlightsMethod, route(t, "", "Goa"), &structpb.Struct{})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
