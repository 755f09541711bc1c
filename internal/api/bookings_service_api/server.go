package bookings_service_api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/service/booking"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type UserCounter interface {
	Count() int
}

// Server implements BookingsServiceServer on top of the booking service.
type Server struct {
	bookings booking.BookingUseCase
	users    UserCounter
}

func NewServer(bookings booking.BookingUseCase, users UserCounter) *Server {
	return &Server{bookings: bookings, users: users}
}

func (s *Server) BookTicket(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if _, ok := CallerFromContext(ctx); !ok {
		return nil, toStatus(domain.ErrUnauthenticated)
	}

	input, err := bookTicketInput(req)
	if err != nil {
		return nil, toStatus(err)
	}

	ticket, err := s.bookings.BookTicket(ctx, input)
	fields := map[string]any{}
	switch {
	case err == nil:
	case ticket != nil && errors.Is(err, domain.ErrPersistenceWarning):
		fields["warning"] = err.Error()
	default:
		return nil, toStatus(err)
	}
	fields["ticket"] = TicketFields(*ticket)

	return newStruct(fields)
}

func (s *Server) ListTickets(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return nil, toStatus(domain.ErrUnauthenticated)
	}

	tickets := s.bookings.ListTickets(ctx, caller)
	list := make([]any, 0, len(tickets))
	for _, t := range tickets {
		list = append(list, TicketFields(t))
	}
	return newStruct(map[string]any{"tickets": list})
}

func (s *Server) Statistics(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		return nil, toStatus(domain.ErrUnauthenticated)
	}
	if !caller.Privileged {
		return nil, toStatus(domain.ErrForbidden)
	}

	stats := s.bookings.Statistics(ctx, s.users.Count())
	return newStruct(map[string]any{
		"flight_count": stats.FlightCount,
		"ticket_count": stats.TicketCount,
		"user_count":   stats.UserCount,
	})
}

func bookTicketInput(req *structpb.Struct) (booking.BookTicketInput, error) {
	fields := req.GetFields()

	age, err := intField(fields["customer_age"])
	if err != nil {
		return booking.BookTicketInput{}, fmt.Errorf("%w: customer_age: %v", domain.ErrInvalidInput, err)
	}
	class, err := domain.ParseCabinClass(fields["cabin_class"].GetStringValue())
	if err != nil {
		return booking.BookTicketInput{}, err
	}

	return booking.BookTicketInput{
		FlightNumber:  fields["flight_number"].GetStringValue(),
		CustomerName:  fields["customer_name"].GetStringValue(),
		CustomerAge:   age,
		CustomerEmail: fields["customer_email"].GetStringValue(),
		CabinClass:    class,
		RequestKey:    fields["request_key"].GetStringValue(),
	}, nil
}

func intField(v *structpb.Value) (int, error) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, fmt.Errorf("out of range: %v", n)
		}
		return int(n), nil
	case *structpb.Value_StringValue:
		return strconv.Atoi(strings.TrimSpace(kind.StringValue))
	default:
		return 0, errors.New("missing")
	}
}

func FlightFields(f domain.Flight) map[string]any {
	return map[string]any{
		"flight_number":  f.FlightNumber,
		"origin":         f.Origin,
		"destination":    f.Destination,
		"departure_time": f.DepartureTime,
	}
}

func TicketFields(t domain.Ticket) map[string]any {
	return map[string]any{
		"id": t.ID,
		"customer": map[string]any{
			"name":  t.Customer.Name,
			"age":   t.Customer.Age,
			"email": t.Customer.Email,
		},
		"flight":      FlightFields(t.Flight),
		"cabin_class": string(t.CabinClass),
		"price":       t.Price,
		"issued_at":   t.IssuedAt.Format(time.RFC3339Nano),
	}
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, toStatus(fmt.Errorf("encode response: %w", err))
	}
	return out, nil
}

var _ BookingsServiceServer = (*Server)(nil)
