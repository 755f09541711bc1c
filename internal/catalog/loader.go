package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/tidwall/jsonc"
)

// Seed returns the built-in route list.
func Seed() []domain.Flight {
	return []domain.Flight{
		{FlightNumber: "IA101", Origin: "Delhi", Destination: "Mumbai", DepartureTime: "8:00 AM"},
		{FlightNumber: "IA102", Origin: "Mumbai", Destination: "Bangalore", DepartureTime: "9:30 AM"},
		{FlightNumber: "IA103", Origin: "Chennai", Destination: "Hyderabad", DepartureTime: "11:00 AM"},
		{FlightNumber: "IA104", Origin: "Delhi", Destination: "Kolkata", DepartureTime: "1:00 PM"},
		{FlightNumber: "IA105", Origin: "Pune", Destination: "Delhi", DepartureTime: "2:45 PM"},
		{FlightNumber: "IA106", Origin: "Kolkata", Destination: "Mumbai", DepartureTime: "4:15 PM"},
		{FlightNumber: "IA107", Origin: "Bangalore", Destination: "Chennai", DepartureTime: "6:30 PM"},
		{FlightNumber: "IA108", Origin: "Hyderabad", Destination: "Delhi", DepartureTime: "7:45 PM"},
		{FlightNumber: "IA109", Origin: "Ahmedabad", Destination: "Pune", DepartureTime: "9:00 PM"},
		{FlightNumber: "IA110", Origin: "Goa", Destination: "Bangalore", DepartureTime: "10:30 PM"},
	}
}

// ParseFlights decodes a JSON array of flights. Comments and trailing
// commas are allowed.
func ParseFlights(data []byte) ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := json.Unmarshal(jsonc.ToJSON(data), &flights); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return flights, nil
}

// LoadFile reads a JSONC catalog file.
func LoadFile(path string) ([]domain.Flight, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseFlights(data)
}
