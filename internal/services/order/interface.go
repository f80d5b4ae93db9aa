package order

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"restorder/internal/models"
)

// Store is the storage surface the order service needs. Order creation is
// split into Begin/InsertOrder/InsertOrderLine so the service controls the
// transaction boundary: all rows commit together or none do.
type Store interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	InsertOrder(ctx context.Context, tx pgx.Tx, total float64, note string) (int64, time.Time, error)
	InsertOrderLine(ctx context.Context, tx pgx.Tx, orderID int64, line models.CartLine) error

	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	GetOrderLines(ctx context.Context, id int64) ([]models.OrderDetailLine, error)
	CompleteOrder(ctx context.Context, id int64) error
	ListOrders(ctx context.Context) ([]models.OrderSummary, error)

	Ping(ctx context.Context) error
}

// Publisher emits order lifecycle events. Publishing is best-effort; a
// failed publish never fails the order operation.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, msg *models.OrderCreatedMessage) error
	PublishOrderCompleted(ctx context.Context, msg *models.OrderCompletedMessage) error
}
