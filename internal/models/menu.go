package models

// MenuItem is a sellable catalog item. The application treats the catalog
// as read-only; rows are maintained by an external process.
type MenuItem struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price" db:"price"`
	Photo       string  `json:"photo" db:"photo"`
}
