package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/travelplanner/internal/kafka"
)

// Sender renders booking notifications. Delivery goes to the log until a mail
// provider is configured.
type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		s.logger.WarnContext(ctx, "booking event without recipient", "type", event.Type, "token", event.Token)
		return nil
	}
	s.logger.InfoContext(ctx, "notification sent",
		"to", event.Email,
		"type", event.Type,
		"token", event.Token,
		"subject", Subject(event),
	)
	return nil
}

func Subject(event kafka.BookingEvent) string {
	route := event.Route
	if route == "" {
		route = "offer " + event.OfferID
	}
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("Your booking for %s is on hold until %s", route, event.ExpiresAt.Format("2006-01-02 15:04 MST"))
	case kafka.EventBookingConfirmed:
		return fmt.Sprintf("Booking confirmed: %s (%s %s)", route, event.TotalPrice, event.Currency)
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("Booking cancelled: %s", route)
	case kafka.EventBookingExpired:
		return fmt.Sprintf("Your hold on %s has expired", route)
	default:
		return fmt.Sprintf("Booking update: %s", route)
	}
}
