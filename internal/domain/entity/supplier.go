package entity

import "time"

// Supplier representa un proveedor (nombre único).
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
