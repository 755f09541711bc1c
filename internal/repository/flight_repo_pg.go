package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/jackc/pgx/v5"
)

// DBConn is the subset of *pgxpool.Pool the repository needs.
type DBConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
}

// PGFlightRepository reads catalog rows. The table is curated outside this
// service; rows are only ever read.
type PGFlightRepository struct {
	db DBConn
}

func NewFlightRepository(db DBConn) *PGFlightRepository {
	return &PGFlightRepository{db: db}
}

const listFlightsQuery = `SELECT flight_number, origin, destination, departure_time FROM catalog_flights ORDER BY position, flight_number`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, listFlightsQuery)
	if err != nil {
		return nil, fmt.Errorf("query catalog flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime); err != nil {
			return nil, fmt.Errorf("scan catalog flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
