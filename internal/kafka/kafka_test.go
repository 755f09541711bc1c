package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketEvent(t *testing.T) {
	issued := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{
		ID:         "t-1",
		Customer:   domain.Customer{Name: "Asha", Age: 29, Email: "asha@example.com"},
		Flight:     domain.Flight{FlightNumber: "IA101", Origin: "Delhi", Destination: "Mumbai"},
		CabinClass: domain.CabinFirst,
		Price:      1000,
		IssuedAt:   issued,
	}

	event := NewTicketEvent(EventTicketIssued, ticket)

	assert.Equal(t, TicketEvent{
		Type:         "ticket_issued",
		TicketID:     "t-1",
		FlightNumber: "IA101",
		Origin:       "Delhi",
		Destination:  "Mumbai",
		CabinClass:   "FIRST",
		Price:        1000,
		CustomerName: "Asha",
		Email:        "asha@example.com",
		IssuedAt:     issued,
	}, event)
}

func TestDecodeTicketEvent(t *testing.T) {
	value, err := json.Marshal(TicketEvent{Type: EventTicketIssued, TicketID: "t-2", Email: "ravi@example.com"})
	require.NoError(t, err)

	event, err := DecodeTicketEvent(kafka.Message{Value: value})

	require.NoError(t, err)
	assert.Equal(t, "t-2", event.TicketID)
	assert.Equal(t, "ravi@example.com", event.Email)

	_, err = DecodeTicketEvent(kafka.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, nil)
	defer p.Close()

	assert.NotNil(t, p.writer)
	assert.Equal(t, []string{"localhost:9092"}, p.brokers)
}
