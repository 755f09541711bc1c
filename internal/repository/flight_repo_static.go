package repository

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
)

// StaticFlightRepository serves a fixed list, for the built-in seed routes
// and catalog files.
type StaticFlightRepository struct {
	flights []domain.Flight
}

func NewStaticFlightRepository(flights []domain.Flight) *StaticFlightRepository {
	return &StaticFlightRepository{flights: append([]domain.Flight(nil), flights...)}
}

func (r *StaticFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Flight(nil), r.flights...), nil
}

var _ FlightRepository = (*StaticFlightRepository)(nil)
