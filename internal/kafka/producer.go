package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/segmentio/kafka-go"
)

const EventTicketIssued = "ticket_issued"

type TicketEvent struct {
	Type         string    `json:"type"`
	TicketID     string    `json:"ticket_id"`
	FlightNumber string    `json:"flight_number"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	CabinClass   string    `json:"cabin_class"`
	Price        float64   `json:"price"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	IssuedAt     time.Time `json:"issued_at"`
}

func NewTicketEvent(eventType string, t domain.Ticket) TicketEvent {
	return TicketEvent{
		Type:         eventType,
		TicketID:     t.ID,
		FlightNumber: t.Flight.FlightNumber,
		Origin:       t.Flight.Origin,
		Destination:  t.Flight.Destination,
		CabinClass:   string(t.CabinClass),
		Price:        t.Price,
		CustomerName: t.Customer.Name,
		Email:        t.Customer.Email,
		IssuedAt:     t.IssuedAt,
	}
}

type Producer struct {
	brokers []string
	writer  *kafka.Writer
	logger  *slog.Logger
}

func NewProducer(brokers []string, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
		logger:  logger,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	p.logger.Debug("published to kafka", "topic", topic, "key", key)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and lists partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	p.logger.Info("connected to kafka", "partitions", len(partitions))
	return nil
}
