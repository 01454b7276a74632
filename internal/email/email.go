package email

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/travelagency/internal/kafka"
)

// Sender stands in for a mail gateway; it logs the message it would send.
type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.AgencyEvent) error {
	subject, ok := Subject(event)
	if !ok {
		s.logger.DebugContext(ctx, "no mail for event", slog.String("type", event.Type))
		return nil
	}

	s.logger.InfoContext(ctx, "send email",
		slog.String("subject", subject),
		slog.Int64("customer_id", event.CustomerID),
		slog.String("to", event.Email),
		slog.Int64("order_id", event.OrderID),
		slog.Int64("staff_id", event.StaffID),
	)
	return nil
}

func Subject(event kafka.AgencyEvent) (string, bool) {
	switch event.Type {
	case kafka.EventCustomerCreated:
		return "Welcome to the agency, " + event.FirstName, true
	case kafka.EventOrderBooked:
		return "Flight booked: " + event.DepartureCity + " to " + event.DestinationCity + " on " + event.TravelDate, true
	default:
		return "", false
	}
}
