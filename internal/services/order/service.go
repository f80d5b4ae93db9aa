package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restorder/internal/logger"
	"restorder/internal/models"
)

// Service converts finalized carts into persisted orders and serves the
// order lifecycle: details, listing and completion.
type Service struct {
	store     Store
	publisher Publisher
	logger    *logger.Logger
}

// NewService creates an order service. publisher may be nil when the
// service runs without a broker.
func NewService(store Store, publisher Publisher, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

// Create persists the cart as one order plus its lines in a single
// transaction and returns the new order id. The caller clears the cart only
// after a successful return; on failure nothing is persisted.
func (s *Service) Create(ctx context.Context, note string, cart *models.Cart, requestID string) (int64, error) {
	if cart.Count() == 0 {
		return 0, models.ErrEmptyCart
	}

	total := cart.Total()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return 0, &models.PersistenceError{Op: "begin order transaction", Err: err}
	}
	defer tx.Rollback(ctx)

	orderID, createdAt, err := s.store.InsertOrder(ctx, tx, total, note)
	if err != nil {
		return 0, &models.PersistenceError{Op: "insert order", Err: err}
	}

	for _, line := range cart.Lines {
		if err := s.store.InsertOrderLine(ctx, tx, orderID, line); err != nil {
			return 0, &models.PersistenceError{Op: "insert order line", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &models.PersistenceError{Op: "commit order", Err: err}
	}

	s.logger.Info("order_created", fmt.Sprintf("Order %d created", orderID), requestID, map[string]interface{}{
		"order_id":   orderID,
		"total":      total,
		"line_count": cart.Count(),
	})

	if s.publisher != nil {
		msg := models.NewOrderCreatedMessage(orderID, note, cart, createdAt)
		if err := s.publisher.PublishOrderCreated(ctx, msg); err != nil {
			s.logger.Error("event_publish_failed", "Failed to publish order-created event", requestID, err, map[string]interface{}{
				"order_id": orderID,
			})
		}
	}

	return orderID, nil
}

// Details returns an order with its lines enriched with current menu
// display fields. Returns models.ErrNotFound for an unknown id. An order
// with no lines yields an empty, non-nil line list.
func (s *Service) Details(ctx context.Context, orderID int64) (*models.OrderDetails, error) {
	o, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, models.ErrNotFound)
		}
		return nil, &models.PersistenceError{Op: "get order", Err: err}
	}

	lines, err := s.store.GetOrderLines(ctx, orderID)
	if err != nil {
		return nil, &models.PersistenceError{Op: "get order lines", Err: err}
	}
	if lines == nil {
		lines = []models.OrderDetailLine{}
	}

	return &models.OrderDetails{Order: *o, Lines: lines}, nil
}

// Complete stamps the order's completed_at with the current time. There is
// no guard against re-completing or completing an unknown id; the update
// simply affects zero rows in the latter case.
func (s *Service) Complete(ctx context.Context, orderID int64, completedBy, requestID string) error {
	if err := s.store.CompleteOrder(ctx, orderID); err != nil {
		return &models.PersistenceError{Op: "complete order", Err: err}
	}

	s.logger.Info("order_completed", fmt.Sprintf("Order %d completed", orderID), requestID, map[string]interface{}{
		"order_id":     orderID,
		"completed_by": completedBy,
	})

	if s.publisher != nil {
		msg := &models.OrderCompletedMessage{
			OrderID:     orderID,
			CompletedBy: completedBy,
			CompletedAt: time.Now().UTC(),
		}
		if err := s.publisher.PublishOrderCompleted(ctx, msg); err != nil {
			s.logger.Error("event_publish_failed", "Failed to publish order-completed event", requestID, err, map[string]interface{}{
				"order_id": orderID,
			})
		}
	}

	return nil
}

// List returns all orders with their line counts, newest first. A storage
// failure degrades to an empty list; the failure is logged.
func (s *Service) List(ctx context.Context, requestID string) []models.OrderSummary {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to list orders", requestID, err, nil)
		return []models.OrderSummary{}
	}
	if orders == nil {
		orders = []models.OrderSummary{}
	}
	return orders
}

// HealthCheck reports whether the storage dependency is reachable.
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "Database ping failed", "", err, nil)
		return false
	}
	return true
}
