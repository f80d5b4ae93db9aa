package kitchen

import (
	"context"
	"fmt"
	"strings"

	"restorder/internal/logger"
	"restorder/internal/messaging"
	"restorder/internal/models"
)

// Display consumes order-created events and prints kitchen tickets to the
// console. It is a separate run mode of the same binary.
type Display struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewDisplay creates a kitchen display.
func NewDisplay(consumer *messaging.Consumer, log *logger.Logger) *Display {
	return &Display{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes kitchen queue messages until the context is canceled.
func (d *Display) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	d.logger.Info("service_started", "Kitchen display started", requestID, nil)

	return d.consumer.StartConsuming(ctx, d.handleOrder)
}

// handleOrder renders one order-created event as a ticket.
func (d *Display) handleOrder(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var msg models.OrderCreatedMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		d.logger.Error("message_parsing_failed", "Failed to parse order message", requestID, err, nil)
		return fmt.Errorf("failed to parse order message: %w", err)
	}

	d.logger.Debug("order_received", "Received order for the kitchen", requestID, map[string]interface{}{
		"order_id":   msg.OrderID,
		"item_count": len(msg.Items),
	})

	fmt.Println(formatTicket(&msg))
	return nil
}

// formatTicket renders a human-readable kitchen ticket.
func formatTicket(msg *models.OrderCreatedMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== ORDER #%d (%s) ===\n", msg.OrderID, msg.CreatedAt.Format("15:04:05"))
	for _, item := range msg.Items {
		fmt.Fprintf(&b, "  %dx %s\n", item.Quantity, item.Name)
	}
	if msg.Note != "" {
		fmt.Fprintf(&b, "  Note: %s\n", msg.Note)
	}
	fmt.Fprintf(&b, "  Total: %.2f", msg.Total)

	return b.String()
}
