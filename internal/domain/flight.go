package domain

// Flight is a catalog entry. DepartureTime is a display string only.
type Flight struct {
	FlightNumber  string `json:"flight_number" cbor:"flight_number"`
	Origin        string `json:"origin" cbor:"origin"`
	Destination   string `json:"destination" cbor:"destination"`
	DepartureTime string `json:"departure_time" cbor:"departure_time"`
}

func (f Flight) String() string {
	return "Flight " + f.FlightNumber + " | " + f.DepartureTime
}
