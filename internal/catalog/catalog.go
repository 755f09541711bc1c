package catalog

import (
	"fmt"
	"iter"
	"strings"

	"github.com/Domenick1991/skybook/internal/domain"
)

// Catalog is an immutable, ordered set of flights. It is never mutated after
// New returns, so any number of goroutines may read it without locking.
type Catalog struct {
	flights  []domain.Flight
	byNumber map[string]int
}

// New copies flights into a catalog, preserving order. Flight numbers must be
// non-empty and unique.
func New(flights []domain.Flight) (*Catalog, error) {
	c := &Catalog{
		flights:  make([]domain.Flight, 0, len(flights)),
		byNumber: make(map[string]int, len(flights)),
	}
	for i, f := range flights {
		if strings.TrimSpace(f.FlightNumber) == "" {
			return nil, fmt.Errorf("flight #%d: empty flight number", i)
		}
		if _, dup := c.byNumber[f.FlightNumber]; dup {
			return nil, fmt.Errorf("flight #%d: duplicate flight number %s", i, f.FlightNumber)
		}
		c.byNumber[f.FlightNumber] = len(c.flights)
		c.flights = append(c.flights, f)
	}
	return c, nil
}

// Lookup yields flights whose origin and destination both match,
// ignoring case, in catalog order.
func (c *Catalog) Lookup(origin, destination string) iter.Seq[domain.Flight] {
	return func(yield func(domain.Flight) bool) {
		for _, f := range c.flights {
			if !strings.EqualFold(f.Origin, origin) || !strings.EqualFold(f.Destination, destination) {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

func (c *Catalog) Find(flightNumber string) (domain.Flight, bool) {
	i, ok := c.byNumber[flightNumber]
	if !ok {
		return domain.Flight{}, false
	}
	return c.flights[i], true
}

func (c *Catalog) Len() int {
	return len(c.flights)
}

// All returns a copy of every flight in catalog order.
func (c *Catalog) All() []domain.Flight {
	out := make([]domain.Flight, len(c.flights))
	copy(out, c.flights)
	return out
}
