package email

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Domenick1991/skybook/internal/kafka"
)

// Sender renders booking confirmations. Delivery is a write to out until an
// SMTP relay is configured.
type Sender struct {
	out    io.Writer
	logger *slog.Logger
}

func NewSender(out io.Writer, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sender{out: out, logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.Email == "" {
		s.logger.Warn("ticket event without recipient", "ticket_id", event.TicketID)
		return nil
	}
	_, err := fmt.Fprintf(s.out, "send email to %s about %s: ticket %s, flight %s %s->%s, %s class, %.2f\n",
		event.Email, event.Type, event.TicketID, event.FlightNumber, event.Origin, event.Destination, event.CabinClass, event.Price)
	return err
}
