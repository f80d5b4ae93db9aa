package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"restorder/internal/database"
	"restorder/internal/models"
)

// Repository is the pgx-backed order store.
type Repository struct {
	db *database.DB
}

// NewRepository creates an order repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Begin starts a transaction on the pool.
func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.Begin(ctx)
}

// InsertOrder inserts the order header within the transaction and returns
// the generated id and creation timestamp.
func (r *Repository) InsertOrder(ctx context.Context, tx pgx.Tx, total float64, note string) (int64, time.Time, error) {
	var id int64
	var createdAt time.Time
	err := tx.QueryRow(ctx, database.InsertOrderSQL, total, note).Scan(&id, &createdAt)
	if err != nil {
		return 0, time.Time{}, err
	}
	return id, createdAt, nil
}

// InsertOrderLine inserts one order line within the transaction.
func (r *Repository) InsertOrderLine(ctx context.Context, tx pgx.Tx, orderID int64, line models.CartLine) error {
	_, err := tx.Exec(ctx, database.InsertOrderLineSQL, orderID, line.MenuItemID, line.Quantity, line.Subtotal)
	return err
}

// GetOrder fetches an order header, or models.ErrNotFound.
func (r *Repository) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := r.db.QueryRow(ctx, database.GetOrderSQL, id).
		Scan(&o.ID, &o.Total, &o.Note, &o.CreatedAt, &o.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// GetOrderLines fetches an order's lines joined with current menu display
// fields.
func (r *Repository) GetOrderLines(ctx context.Context, id int64) ([]models.OrderDetailLine, error) {
	rows, err := r.db.Query(ctx, database.GetOrderLinesSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.OrderDetailLine
	for rows.Next() {
		var line models.OrderDetailLine
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.MenuItemID,
			&line.Quantity,
			&line.Subtotal,
			&line.Name,
			&line.Price,
			&line.Photo,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// CompleteOrder stamps completed_at. An unknown id updates zero rows and
// passes silently; a re-completion overwrites the timestamp.
func (r *Repository) CompleteOrder(ctx context.Context, id int64) error {
	return r.db.Exec(ctx, database.CompleteOrderSQL, id)
}

// ListOrders returns all orders with their line counts, newest first.
func (r *Repository) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	rows, err := r.db.Query(ctx, database.ListOrdersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OrderSummary
	for rows.Next() {
		var o models.OrderSummary
		err := rows.Scan(&o.ID, &o.Total, &o.Note, &o.CreatedAt, &o.CompletedAt, &o.ItemCount)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Ping tests the underlying connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
