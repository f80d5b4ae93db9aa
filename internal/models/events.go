package models

import "time"

// OrderCreatedMessage is published to the kitchen after an order commits.
type OrderCreatedMessage struct {
	OrderID   int64              `json:"order_id"`
	Total     float64            `json:"total"`
	Note      string             `json:"note"`
	Items     []OrderMessageItem `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

// OrderMessageItem is one line of an order event.
type OrderMessageItem struct {
	MenuItemID int64   `json:"menu_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

// OrderCompletedMessage is fanned out to notification consumers when an
// employee marks an order complete.
type OrderCompletedMessage struct {
	OrderID     int64     `json:"order_id"`
	CompletedBy string    `json:"completed_by"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewOrderCreatedMessage builds the kitchen event for a just-committed order.
func NewOrderCreatedMessage(orderID int64, note string, cart *Cart, createdAt time.Time) *OrderCreatedMessage {
	items := make([]OrderMessageItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, OrderMessageItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			Subtotal:   line.Subtotal,
		})
	}
	return &OrderCreatedMessage{
		OrderID:   orderID,
		Total:     cart.Total(),
		Note:      note,
		Items:     items,
		CreatedAt: createdAt,
	}
}
