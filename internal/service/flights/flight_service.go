package flights

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/skybook/internal/catalog"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

// FlightService loads catalog rows from a source, with an optional cache in
// front of it. The catalog it builds is fixed for the life of the process.
type FlightService struct {
	repo   repository.FlightRepository
	cache  FlightCache
	logger *slog.Logger
}

// NewFlightService accepts a nil cache.
func NewFlightService(repo repository.FlightRepository, cache FlightCache, logger *slog.Logger) *FlightService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FlightService{repo: repo, cache: cache, logger: logger}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			s.logger.Warn("catalog cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.logger.Warn("catalog cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	flights, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	c, err := catalog.New(flights)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	s.logger.Info("flight catalog loaded", "flights", c.Len())
	return c, nil
}

var _ FlightUseCase = (*FlightService)(nil)
