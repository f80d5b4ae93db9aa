package database

// Menu queries
const (
	ListMenuSQL = `
		SELECT id, name, description, price, photo
		FROM menu
		ORDER BY id`

	GetMenuItemSQL = `
		SELECT id, name, description, price, photo
		FROM menu WHERE id = $1`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (total, note)
		VALUES ($1, $2)
		RETURNING id, created_at`

	InsertOrderLineSQL = `
		INSERT INTO order_lines (order_id, menu_item_id, quantity, subtotal)
		VALUES ($1, $2, $3, $4)`

	GetOrderSQL = `
		SELECT id, total, note, created_at, completed_at
		FROM orders WHERE id = $1`

	GetOrderLinesSQL = `
		SELECT l.id, l.order_id, l.menu_item_id, l.quantity, l.subtotal,
			   m.name, m.price, m.photo
		FROM order_lines l
		JOIN menu m ON l.menu_item_id = m.id
		WHERE l.order_id = $1
		ORDER BY l.id`

	CompleteOrderSQL = `
		UPDATE orders SET completed_at = NOW()
		WHERE id = $1`

	ListOrdersSQL = `
		SELECT o.id, o.total, o.note, o.created_at, o.completed_at,
			   COUNT(l.id) AS item_count
		FROM orders o
		LEFT JOIN order_lines l ON o.id = l.order_id
		GROUP BY o.id
		ORDER BY o.created_at DESC`
)

// User queries
const (
	GetUserByUsernameSQL = `
		SELECT id, username, password_hash
		FROM users WHERE username = $1
		LIMIT 1`
)
