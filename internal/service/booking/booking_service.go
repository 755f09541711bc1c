package booking

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/skybook/internal/clock"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/fare"
	"github.com/Domenick1991/skybook/internal/kafka"
	"github.com/Domenick1991/skybook/internal/ledger"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	BookTicket(ctx context.Context, input BookTicketInput) (*domain.Ticket, error)
	ListTickets(ctx context.Context, caller domain.Caller) []domain.Ticket
	Statistics(ctx context.Context, userCount int) domain.Statistics
}

type FlightCatalog interface {
	Lookup(origin, destination string) iter.Seq[domain.Flight]
	Find(flightNumber string) (domain.Flight, bool)
	Len() int
}

type TicketLog interface {
	Append(ctx context.Context, ticket domain.Ticket) error
	ReplayAll(ctx context.Context) ([]domain.Ticket, error)
}

type RequestLock interface {
	AcquireRequestLock(ctx context.Context, requestKey string, ttl time.Duration) (bool, error)
	ReleaseRequestLock(ctx context.Context, requestKey string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookTicketInput struct {
	FlightNumber  string            `json:"flight_number"`
	CustomerName  string            `json:"customer_name"`
	CustomerAge   int               `json:"customer_age"`
	CustomerEmail string            `json:"customer_email"`
	CabinClass    domain.CabinClass `json:"cabin_class"`
	// RequestKey optionally identifies a client request so a retried
	// submission does not issue a second ticket.
	RequestKey string `json:"-"`
}

type BookingService struct {
	catalog FlightCatalog
	ledger  *ledger.Ledger
	log     TicketLog

	requestLock    RequestLock
	requestLockTTL time.Duration

	producer           Producer
	ticketTopic        string
	notificationsTopic string

	clock  clock.Clock
	newID  func() (string, error)
	logger *slog.Logger

	// commitMu orders id assignment, ledger insert and log append so the
	// log is written in issuance order.
	commitMu sync.Mutex
}

type BookingServiceOption func(*BookingService)

func WithRequestLock(lock RequestLock, ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.requestLock = lock
		s.requestLockTTL = ttl
	}
}

func WithEvents(producer Producer, ticketTopic, notificationsTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.ticketTopic = ticketTopic
		s.notificationsTopic = notificationsTopic
	}
}

func WithClock(c clock.Clock) BookingServiceOption {
	return func(s *BookingService) {
		s.clock = c
	}
}

func WithLogger(logger *slog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func NewBookingService(catalog FlightCatalog, ledger *ledger.Ledger, log TicketLog, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		catalog: catalog,
		ledger:  ledger,
		log:     log,
		clock:   clock.Real(),
		newID:   newTicketID,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func newTicketID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Restore loads every ticket from the log into the ledger. It must run
// before the service accepts bookings.
func (s *BookingService) Restore(ctx context.Context) (int, error) {
	tickets, err := s.log.ReplayAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("replay ticket log: %w", err)
	}

	restored := 0
	for _, t := range tickets {
		if err := s.ledger.Insert(t); err != nil {
			s.logger.Error("skipping replayed ticket", "ticket_id", t.ID, "error", err)
			continue
		}
		restored++
	}
	return restored, nil
}

func (s *BookingService) SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", domain.ErrInvalidInput)
	}

	flights := make([]domain.Flight, 0)
	for f := range s.catalog.Lookup(origin, destination) {
		flights = append(flights, f)
	}
	return flights, nil
}

// BookTicket issues a ticket. When the ticket is committed to the ledger but
// the log append fails, the ticket is returned together with an error
// wrapping domain.ErrPersistenceWarning.
func (s *BookingService) BookTicket(ctx context.Context, input BookTicketInput) (*domain.Ticket, error) {
	customer, err := validate(input)
	if err != nil {
		return nil, err
	}

	flight, ok := s.catalog.Find(strings.TrimSpace(input.FlightNumber))
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFlightNotFound, input.FlightNumber)
	}

	locked := false
	if s.requestLock != nil && input.RequestKey != "" {
		ok, err := s.requestLock.AcquireRequestLock(ctx, input.RequestKey, s.requestLockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire request lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: request %s was already submitted", domain.ErrDuplicateRequest, input.RequestKey)
		}
		locked = true
	}

	ticket, persistErr, err := s.commit(ctx, customer, flight, input.CabinClass)
	if err != nil {
		if locked {
			if releaseErr := s.requestLock.ReleaseRequestLock(ctx, input.RequestKey); releaseErr != nil {
				s.logger.Warn("failed to release request lock", "request_key", input.RequestKey, "error", releaseErr)
			}
		}
		return nil, err
	}

	s.logger.Info("ticket issued",
		"ticket_id", ticket.ID, "flight", flight.FlightNumber, "class", ticket.CabinClass, "price", ticket.Price)
	s.publish(ctx, ticket)

	if persistErr != nil {
		s.logger.Warn("ticket not persisted", "ticket_id", ticket.ID, "error", persistErr)
		return ticket, fmt.Errorf("%w: %w", domain.ErrPersistenceWarning, persistErr)
	}
	return ticket, nil
}

// commit returns the issued ticket, a non-fatal persistence error, and a
// fatal error. A fatal error means no ticket was issued.
func (s *BookingService) commit(ctx context.Context, customer domain.Customer, flight domain.Flight, class domain.CabinClass) (*domain.Ticket, error, error) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	id, err := s.newID()
	if err != nil {
		return nil, nil, fmt.Errorf("generate ticket id: %w", err)
	}

	ticket := domain.Ticket{
		ID:         id,
		Customer:   customer,
		Flight:     flight,
		CabinClass: class,
		Price:      fare.PriceFor(class),
		IssuedAt:   s.clock.Now().UTC(),
	}

	if err := s.ledger.Insert(ticket); err != nil {
		if errors.Is(err, domain.ErrInvariantViolation) {
			s.logger.Error("ledger rejected ticket", "ticket_id", ticket.ID, "error", err)
		}
		return nil, nil, err
	}

	persistErr := s.log.Append(ctx, ticket)
	return &ticket, persistErr, nil
}

func validate(input BookTicketInput) (domain.Customer, error) {
	customer := domain.Customer{
		Name:  strings.TrimSpace(input.CustomerName),
		Age:   input.CustomerAge,
		Email: strings.TrimSpace(input.CustomerEmail),
	}
	switch {
	case strings.TrimSpace(input.FlightNumber) == "":
		return domain.Customer{}, fmt.Errorf("%w: flight number is required", domain.ErrInvalidInput)
	case customer.Name == "":
		return domain.Customer{}, fmt.Errorf("%w: customer name is required", domain.ErrInvalidInput)
	case customer.Email == "":
		return domain.Customer{}, fmt.Errorf("%w: customer email is required", domain.ErrInvalidInput)
	case customer.Age <= 0:
		return domain.Customer{}, fmt.Errorf("%w: customer age must be positive", domain.ErrInvalidInput)
	case !input.CabinClass.Valid():
		return domain.Customer{}, fmt.Errorf("%w: unknown cabin class %q", domain.ErrInvalidInput, input.CabinClass)
	}
	return customer, nil
}

func (s *BookingService) ListTickets(ctx context.Context, caller domain.Caller) []domain.Ticket {
	return s.ledger.SnapshotFor(caller.Email, caller.Privileged)
}

// Statistics reports aggregate counts. Users are managed outside the
// service, so their count is supplied by the caller.
func (s *BookingService) Statistics(ctx context.Context, userCount int) domain.Statistics {
	return domain.Statistics{
		FlightCount: s.catalog.Len(),
		TicketCount: s.ledger.Len(),
		UserCount:   userCount,
	}
}

func (s *BookingService) publish(ctx context.Context, ticket *domain.Ticket) {
	if s.producer == nil || s.ticketTopic == "" {
		return
	}
	event := kafka.NewTicketEvent(kafka.EventTicketIssued, *ticket)
	if err := s.producer.Publish(ctx, s.ticketTopic, ticket.ID, event); err != nil {
		s.logger.Warn("failed to publish ticket event", "ticket_id", ticket.ID, "topic", s.ticketTopic, "error", err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, ticket.ID, event); err != nil {
			s.logger.Warn("failed to publish ticket event", "ticket_id", ticket.ID, "topic", s.notificationsTopic, "error", err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
