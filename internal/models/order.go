package models

import "time"

// Order is a persisted purchase record. It is immutable once created except
// for the single pending -> completed transition on CompletedAt.
type Order struct {
	ID          int64      `json:"id" db:"id"`
	Total       float64    `json:"total" db:"total"`
	Note        string     `json:"note" db:"note"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
}

// OrderLine ties an order to a menu item and quantity. Lines are written
// atomically with their parent order and never modified afterwards.
type OrderLine struct {
	ID         int64   `json:"id" db:"id"`
	OrderID    int64   `json:"order_id" db:"order_id"`
	MenuItemID int64   `json:"menu_id" db:"menu_item_id"`
	Quantity   int     `json:"quantity" db:"quantity"`
	Subtotal   float64 `json:"subtotal" db:"subtotal"`
}

// OrderDetailLine is an order line enriched with current menu display fields
// for rendering.
type OrderDetailLine struct {
	OrderLine
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Photo string  `json:"photo"`
}

// OrderDetails is an order header together with its enriched lines. Lines is
// never nil; an order with no lines carries an empty slice.
type OrderDetails struct {
	Order
	Lines []OrderDetailLine `json:"order_items"`
}

// OrderSummary is a listing row: an order header plus the count of its lines.
type OrderSummary struct {
	Order
	ItemCount int `json:"item_count"`
}
