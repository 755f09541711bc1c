package domain

import (
	"fmt"
	"strings"
	"time"
)

type CabinClass string

const (
	CabinEconomy  CabinClass = "ECONOMY"
	CabinBusiness CabinClass = "BUSINESS"
	CabinFirst    CabinClass = "FIRST"
)

// Rank orders cabin classes by priority: Economy < Business < First.
// Unknown classes rank below Economy.
func (c CabinClass) Rank() int {
	switch c {
	case CabinEconomy:
		return 1
	case CabinBusiness:
		return 2
	case CabinFirst:
		return 3
	default:
		return 0
	}
}

func (c CabinClass) Valid() bool {
	return c.Rank() > 0
}

// ParseCabinClass accepts any letter case ("first", "First", "FIRST").
func ParseCabinClass(s string) (CabinClass, error) {
	c := CabinClass(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown cabin class %q", ErrInvalidInput, s)
	}
	return c, nil
}

type Customer struct {
	Name  string `json:"name" cbor:"name"`
	Age   int    `json:"age" cbor:"age"`
	Email string `json:"email" cbor:"email"`
}

// Ticket is immutable once issued. Price is frozen at issuance.
type Ticket struct {
	ID         string     `json:"id" cbor:"id"`
	Customer   Customer   `json:"customer" cbor:"customer"`
	Flight     Flight     `json:"flight" cbor:"flight"`
	CabinClass CabinClass `json:"cabin_class" cbor:"cabin_class"`
	Price      float64    `json:"price" cbor:"price"`
	IssuedAt   time.Time  `json:"issued_at" cbor:"issued_at"`
}

// VisibleTo reports whether the caller may see this ticket.
func (t Ticket) VisibleTo(callerEmail string, privileged bool) bool {
	return privileged || t.Customer.Email == callerEmail
}

// Caller is an identity already resolved by an authentication collaborator.
type Caller struct {
	Email      string
	Privileged bool
}

type Statistics struct {
	FlightCount int `json:"flight_count"`
	TicketCount int `json:"ticket_count"`
	UserCount   int `json:"user_count"`
}
